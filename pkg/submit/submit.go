// Package submit flattens a form state into the multipart payload the
// settlement API accepts. Encoding is a best-effort field flattener:
// validation happens upstream and the encoder never rejects a state.
package submit

import (
	"fmt"
	"io"
	"mime/multipart"

	"github.com/goliatone/go-payeeform/pkg/model"
	"github.com/goliatone/go-payeeform/pkg/payload"
)

// Field is one text value in the outgoing payload. Order is submission order.
type Field struct {
	Name  string
	Value string
}

// FilePart is one binary attachment keyed by its logical field name.
type FilePart struct {
	Field    string
	Filename string
	Data     []byte
}

// Form is the flattened submission: ordered text fields plus any newly
// selected files. Stored references without a pending upload contribute no
// file part.
type Form struct {
	Fields []Field
	Files  []FilePart
}

// Value returns the first field with the given name.
func (f Form) Value(name string) (string, bool) {
	for _, field := range f.Fields {
		if field.Name == name {
			return field.Value, true
		}
	}
	return "", false
}

// BuildForm encodes the form state. Always present: biz_type, invoice_type,
// tax, bank_name, account_holder, account_number, consent_type. Individuals
// add the boolean flags and identity fields, businesses add registration
// fields, overseas states add the international bank fields.
func BuildForm(state model.FormState) Form {
	var form Form

	form.set("biz_type", string(state.BizType.BizType))
	form.set("invoice_type", state.BizType.InvoiceType)
	form.set("tax", state.BizType.Tax.String())

	if state.BizType.BizType == model.BizTypeIndividual {
		form.set("is_overseas", formatBool(state.BizType.IsOverseas))
		form.set("is_minor", formatBool(state.BizType.IsMinor))
		form.set("is_foreigner", formatBool(state.BizType.IsForeigner))
		form.set("user_name", state.PersonalInfo.UserName)
		form.set("ssn", state.PersonalInfo.SSN)
		form.set("identification_type", identificationType(state))
		if state.BizType.IsMinor {
			form.set("guardian_name", state.PersonalInfo.GuardianName)
			form.set("guardian_tel", state.PersonalInfo.GuardianTel)
		}
	} else {
		form.set("biz_name", state.BizInfo.BizName)
		form.set("biz_reg_no", state.BizInfo.BizRegNo)
	}

	form.set("bank_name", state.AccountInfo.BankName)
	form.set("account_holder", state.AccountInfo.AccountHolder)
	form.set("account_number", state.AccountInfo.AccountNumber)
	if state.BizType.IsOverseas {
		form.set("swift_code", state.AccountInfo.SwiftCode)
		form.set("bank_address", state.AccountInfo.BankAddress)
	}
	form.set("consent_type", string(state.BasicInfo.ConsentType))

	form.attach(payload.FileFieldIDDocument, state.PersonalInfo.IDDocument)
	form.attach(payload.FileFieldFamilyCertificate, state.PersonalInfo.FamilyRelationCertificate)
	form.attach(payload.FileFieldBusinessDocument, state.BizInfo.BusinessDocument)
	form.attach(payload.FileFieldBankDocument, state.AccountInfo.BankDocument)

	return form
}

// Multipart writes the form as a multipart/form-data body and returns the
// content type carrying the boundary.
func (f Form) Multipart(w io.Writer) (contentType string, err error) {
	writer := multipart.NewWriter(w)
	for _, field := range f.Fields {
		if err := writer.WriteField(field.Name, field.Value); err != nil {
			return "", fmt.Errorf("submit: write field %q: %w", field.Name, err)
		}
	}
	for _, file := range f.Files {
		part, err := writer.CreateFormFile(file.Field, file.Filename)
		if err != nil {
			return "", fmt.Errorf("submit: create part %q: %w", file.Field, err)
		}
		if _, err := part.Write(file.Data); err != nil {
			return "", fmt.Errorf("submit: write part %q: %w", file.Field, err)
		}
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("submit: close multipart writer: %w", err)
	}
	return writer.FormDataContentType(), nil
}

func (f *Form) set(name, value string) {
	f.Fields = append(f.Fields, Field{Name: name, Value: value})
}

func (f *Form) attach(field string, ref model.FileRef) {
	if !ref.HasUpload() {
		return
	}
	f.Files = append(f.Files, FilePart{
		Field:    field,
		Filename: ref.Name(),
		Data:     ref.Data(),
	})
}

func identificationType(state model.FormState) string {
	if state.BizType.IsForeigner {
		return model.IdentificationForeignerCard
	}
	return state.PersonalInfo.IdentificationType
}

func formatBool(v bool) string {
	if v {
		return "true"
	}
	return "false"
}
