package model

import "github.com/shopspring/decimal"

// BizType enumerates the registration categories a payee can settle under.
type BizType string

const (
	BizTypeIndividual        BizType = "individual"
	BizTypeSoleProprietor    BizType = "sole_proprietor"
	BizTypeSimpleTaxpayer    BizType = "simple_taxpayer"
	BizTypeTaxFreeBusiness   BizType = "tax_free_business"
	BizTypeCorporateBusiness BizType = "corporate_business"
)

// BizTypes lists every business type in display order.
func BizTypes() []BizType {
	return []BizType{
		BizTypeIndividual,
		BizTypeSoleProprietor,
		BizTypeSimpleTaxpayer,
		BizTypeTaxFreeBusiness,
		BizTypeCorporateBusiness,
	}
}

// IsBusiness reports whether the type uses the business-info block instead of
// the individual-only personal fields.
func (b BizType) IsBusiness() bool {
	switch b {
	case BizTypeSoleProprietor, BizTypeSimpleTaxpayer, BizTypeTaxFreeBusiness, BizTypeCorporateBusiness:
		return true
	default:
		return false
	}
}

// ConsentType covers the personal-data collection consent choices.
type ConsentType string

const (
	ConsentThirtyDays ConsentType = "30days"
	ConsentOnce       ConsentType = "once"
)

// IdentificationForeignerCard is the identification_type sentinel forced when
// is_foreigner is set. Toggling the flag back off clears it again.
const IdentificationForeignerCard = "foreigner_card"

// BasicInfo holds the consent block.
type BasicInfo struct {
	ConsentType ConsentType `json:"consent_type"`
}

// BizTypeInfo holds the business-type selection, the invoice/issue type it
// implies, and the flags that are only meaningful for individuals. Tax is
// derived from the selected invoice type and is never user-settable.
type BizTypeInfo struct {
	BizType     BizType         `json:"biz_type"`
	InvoiceType string          `json:"invoice_type"`
	Tax         decimal.Decimal `json:"tax"`
	IsOverseas  bool            `json:"is_overseas"`
	IsMinor     bool            `json:"is_minor"`
	IsForeigner bool            `json:"is_foreigner"`
}

// PersonalInfo holds identity fields. Name, phone, and email are read-only
// echoes of the account profile; the rest only applies to individuals.
type PersonalInfo struct {
	UserName                  string  `json:"user_name"`
	Tel                       string  `json:"tel"`
	Email                     string  `json:"email"`
	SSN                       string  `json:"ssn"`
	IdentificationType        string  `json:"identification_type"`
	IDDocument                FileRef `json:"id_document"`
	GuardianName              string  `json:"guardian_name"`
	GuardianTel               string  `json:"guardian_tel"`
	FamilyRelationCertificate FileRef `json:"family_relation_certificate"`
}

// BizInfo holds the registration fields shared by every non-individual
// business type.
type BizInfo struct {
	BizName          string  `json:"biz_name"`
	BizRegNo         string  `json:"biz_reg_no"`
	BusinessDocument FileRef `json:"business_document"`
}

// AccountInfo holds the payout bank account. Swift code and bank address only
// apply to overseas accounts.
type AccountInfo struct {
	BankName      string  `json:"bank_name"`
	AccountHolder string  `json:"account_holder"`
	AccountNumber string  `json:"account_number"`
	SwiftCode     string  `json:"swift_code"`
	BankAddress   string  `json:"bank_address"`
	BankDocument  FileRef `json:"bank_document"`
}

// FormState is the complete payee form. It is always fully shaped: every
// block is present and leaves default to zero values, so consumers only
// null-check leaf values, never structure.
type FormState struct {
	BasicInfo    BasicInfo    `json:"basic_info"`
	BizType      BizTypeInfo  `json:"biz_type"`
	PersonalInfo PersonalInfo `json:"personal_info"`
	BizInfo      BizInfo      `json:"biz_info"`
	AccountInfo  AccountInfo  `json:"account_info"`
}

// Values flattens the state into dotted paths ("biz_type.is_minor") for
// visibility rules and renderer prefills. File refs surface as their remote
// URL so templates can link previously stored documents.
func (s FormState) Values() map[string]any {
	return map[string]any{
		"basic_info.consent_type":                   string(s.BasicInfo.ConsentType),
		"biz_type.biz_type":                         string(s.BizType.BizType),
		"biz_type.invoice_type":                     s.BizType.InvoiceType,
		"biz_type.tax":                              s.BizType.Tax.String(),
		"biz_type.is_overseas":                      s.BizType.IsOverseas,
		"biz_type.is_minor":                         s.BizType.IsMinor,
		"biz_type.is_foreigner":                     s.BizType.IsForeigner,
		"personal_info.user_name":                   s.PersonalInfo.UserName,
		"personal_info.tel":                         s.PersonalInfo.Tel,
		"personal_info.email":                       s.PersonalInfo.Email,
		"personal_info.ssn":                         s.PersonalInfo.SSN,
		"personal_info.identification_type":         s.PersonalInfo.IdentificationType,
		"personal_info.id_document":                 s.PersonalInfo.IDDocument.URL(),
		"personal_info.guardian_name":               s.PersonalInfo.GuardianName,
		"personal_info.guardian_tel":                s.PersonalInfo.GuardianTel,
		"personal_info.family_relation_certificate": s.PersonalInfo.FamilyRelationCertificate.URL(),
		"biz_info.biz_name":                         s.BizInfo.BizName,
		"biz_info.biz_reg_no":                       s.BizInfo.BizRegNo,
		"biz_info.business_document":                s.BizInfo.BusinessDocument.URL(),
		"account_info.bank_name":                    s.AccountInfo.BankName,
		"account_info.account_holder":               s.AccountInfo.AccountHolder,
		"account_info.account_number":               s.AccountInfo.AccountNumber,
		"account_info.swift_code":                   s.AccountInfo.SwiftCode,
		"account_info.bank_address":                 s.AccountInfo.BankAddress,
		"account_info.bank_document":                s.AccountInfo.BankDocument.URL(),
	}
}
