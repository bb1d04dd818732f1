// Package payload decodes the settlement API's payee response and maps it
// into the form state the engine operates on. Decoding is strict about JSON
// shape but lenient about values: the mapper is total and never fails on a
// missing row, missing files, or malformed leaf values.
package payload

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// File is a stored document descriptor from the API's files map.
type File struct {
	URL  string `json:"url"`
	Name string `json:"name"`
	Ext  string `json:"ext"`
}

// Row is the flat payee row. Legacy backends serialize booleans as Y/N
// strings or 0/1 numbers, so flags decode through Flag.
type Row struct {
	BizType            string           `json:"biz_type"`
	IsOverseas         Flag             `json:"is_overseas"`
	IsMinor            Flag             `json:"is_minor"`
	IsForeigner        Flag             `json:"is_foreigner"`
	IsSimpleTaxpayer   Flag             `json:"is_simple_taxpayer"`
	UserName           string           `json:"user_name"`
	Tel                string           `json:"tel"`
	Email              string           `json:"email"`
	SSN                string           `json:"ssn"`
	IdentificationType string           `json:"identification_type"`
	GuardianName       string           `json:"guardian_name"`
	GuardianTel        string           `json:"guardian_tel"`
	BizName            string           `json:"biz_name"`
	BizRegNo           string           `json:"biz_reg_no"`
	CorpName           string           `json:"corp_name"`
	CorpRegNo          string           `json:"corp_reg_no"`
	BankName           string           `json:"bank_name"`
	AccountHolder      string           `json:"account_holder"`
	AccountNumber      string           `json:"account_number"`
	SwiftCode          string           `json:"swift_code"`
	BankAddress        string           `json:"bank_address"`
	InvoiceType        string           `json:"invoice_type"`
	ConsentType        string           `json:"consent_type"`
	Tax                *decimal.Decimal `json:"tax"`
}

// Payload is the full API response: an optional row plus stored documents
// keyed by logical field name (id_document, business_document, ...).
type Payload struct {
	PayeeData *Row            `json:"payeeData"`
	Files     map[string]File `json:"files"`
}

// Decode reads a payee payload from r. An empty body decodes to the zero
// payload so first-time registrations need no special casing upstream.
func Decode(r io.Reader) (Payload, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Payload{}, fmt.Errorf("payload: read: %w", err)
	}
	return DecodeBytes(data)
}

// DecodeBytes parses a payee payload from raw JSON.
func DecodeBytes(data []byte) (Payload, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return Payload{}, nil
	}
	var p Payload
	if err := json.Unmarshal(trimmed, &p); err != nil {
		return Payload{}, fmt.Errorf("payload: decode: %w", err)
	}
	return p, nil
}

// Flag is a bool that tolerates the encodings payee rows arrive with:
// JSON booleans, "Y"/"N", "true"/"false", and 0/1. Unknown values are false.
type Flag bool

// Bool unwraps the flag.
func (f Flag) Bool() bool { return bool(f) }

// MarshalJSON emits a plain JSON boolean.
func (f Flag) MarshalJSON() ([]byte, error) {
	return json.Marshal(bool(f))
}

// UnmarshalJSON accepts bool, string, and numeric encodings.
func (f *Flag) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*f = false
		return nil
	}

	var b bool
	if err := json.Unmarshal(trimmed, &b); err == nil {
		*f = Flag(b)
		return nil
	}

	var s string
	if err := json.Unmarshal(trimmed, &s); err == nil {
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "y", "yes", "true", "1":
			*f = true
		default:
			*f = false
		}
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(trimmed, &n); err == nil {
		parsed, err := strconv.ParseFloat(n.String(), 64)
		*f = Flag(err == nil && parsed != 0)
		return nil
	}

	*f = false
	return nil
}
