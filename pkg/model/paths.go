package model

import "fmt"

// LensFor resolves the typed accessor pair for a dotted field path. The
// derived biz_type.tax leaf is deliberately absent: the normalizer owns it.
func LensFor(path string) (Lens, bool) {
	lens, ok := lensTable[path]
	return lens, ok
}

// Paths lists every settable field path.
func Paths() []string {
	out := make([]string, 0, len(lensTable))
	for _, p := range pathOrder {
		out = append(out, p)
	}
	return out
}

var pathOrder = []string{
	"basic_info.consent_type",
	"biz_type.biz_type",
	"biz_type.invoice_type",
	"biz_type.is_overseas",
	"biz_type.is_minor",
	"biz_type.is_foreigner",
	"personal_info.user_name",
	"personal_info.tel",
	"personal_info.email",
	"personal_info.ssn",
	"personal_info.identification_type",
	"personal_info.id_document",
	"personal_info.guardian_name",
	"personal_info.guardian_tel",
	"personal_info.family_relation_certificate",
	"biz_info.biz_name",
	"biz_info.biz_reg_no",
	"biz_info.business_document",
	"account_info.bank_name",
	"account_info.account_holder",
	"account_info.account_number",
	"account_info.swift_code",
	"account_info.bank_address",
	"account_info.bank_document",
}

var lensTable = map[string]Lens{
	"basic_info.consent_type": {
		Get: func(s FormState) any { return string(s.BasicInfo.ConsentType) },
		Set: func(s *FormState, v any) error {
			str, err := asString("basic_info.consent_type", v)
			if err != nil {
				return err
			}
			s.BasicInfo.ConsentType = ConsentType(str)
			return nil
		},
	},
	"biz_type.biz_type": {
		Get: func(s FormState) any { return string(s.BizType.BizType) },
		Set: func(s *FormState, v any) error {
			str, err := asString("biz_type.biz_type", v)
			if err != nil {
				return err
			}
			s.BizType.BizType = BizType(str)
			return nil
		},
	},
	"biz_type.invoice_type": stringLens("biz_type.invoice_type",
		func(s FormState) string { return s.BizType.InvoiceType },
		func(s *FormState, v string) { s.BizType.InvoiceType = v }),
	"biz_type.is_overseas": boolLens("biz_type.is_overseas",
		func(s FormState) bool { return s.BizType.IsOverseas },
		func(s *FormState, v bool) { s.BizType.IsOverseas = v }),
	"biz_type.is_minor": boolLens("biz_type.is_minor",
		func(s FormState) bool { return s.BizType.IsMinor },
		func(s *FormState, v bool) { s.BizType.IsMinor = v }),
	"biz_type.is_foreigner": boolLens("biz_type.is_foreigner",
		func(s FormState) bool { return s.BizType.IsForeigner },
		func(s *FormState, v bool) { s.BizType.IsForeigner = v }),
	"personal_info.user_name": stringLens("personal_info.user_name",
		func(s FormState) string { return s.PersonalInfo.UserName },
		func(s *FormState, v string) { s.PersonalInfo.UserName = v }),
	"personal_info.tel": stringLens("personal_info.tel",
		func(s FormState) string { return s.PersonalInfo.Tel },
		func(s *FormState, v string) { s.PersonalInfo.Tel = v }),
	"personal_info.email": stringLens("personal_info.email",
		func(s FormState) string { return s.PersonalInfo.Email },
		func(s *FormState, v string) { s.PersonalInfo.Email = v }),
	"personal_info.ssn": stringLens("personal_info.ssn",
		func(s FormState) string { return s.PersonalInfo.SSN },
		func(s *FormState, v string) { s.PersonalInfo.SSN = v }),
	"personal_info.identification_type": stringLens("personal_info.identification_type",
		func(s FormState) string { return s.PersonalInfo.IdentificationType },
		func(s *FormState, v string) { s.PersonalInfo.IdentificationType = v }),
	"personal_info.id_document": fileLens("personal_info.id_document",
		func(s FormState) FileRef { return s.PersonalInfo.IDDocument },
		func(s *FormState, v FileRef) { s.PersonalInfo.IDDocument = v }),
	"personal_info.guardian_name": stringLens("personal_info.guardian_name",
		func(s FormState) string { return s.PersonalInfo.GuardianName },
		func(s *FormState, v string) { s.PersonalInfo.GuardianName = v }),
	"personal_info.guardian_tel": stringLens("personal_info.guardian_tel",
		func(s FormState) string { return s.PersonalInfo.GuardianTel },
		func(s *FormState, v string) { s.PersonalInfo.GuardianTel = v }),
	"personal_info.family_relation_certificate": fileLens("personal_info.family_relation_certificate",
		func(s FormState) FileRef { return s.PersonalInfo.FamilyRelationCertificate },
		func(s *FormState, v FileRef) { s.PersonalInfo.FamilyRelationCertificate = v }),
	"biz_info.biz_name": stringLens("biz_info.biz_name",
		func(s FormState) string { return s.BizInfo.BizName },
		func(s *FormState, v string) { s.BizInfo.BizName = v }),
	"biz_info.biz_reg_no": stringLens("biz_info.biz_reg_no",
		func(s FormState) string { return s.BizInfo.BizRegNo },
		func(s *FormState, v string) { s.BizInfo.BizRegNo = v }),
	"biz_info.business_document": fileLens("biz_info.business_document",
		func(s FormState) FileRef { return s.BizInfo.BusinessDocument },
		func(s *FormState, v FileRef) { s.BizInfo.BusinessDocument = v }),
	"account_info.bank_name": stringLens("account_info.bank_name",
		func(s FormState) string { return s.AccountInfo.BankName },
		func(s *FormState, v string) { s.AccountInfo.BankName = v }),
	"account_info.account_holder": stringLens("account_info.account_holder",
		func(s FormState) string { return s.AccountInfo.AccountHolder },
		func(s *FormState, v string) { s.AccountInfo.AccountHolder = v }),
	"account_info.account_number": stringLens("account_info.account_number",
		func(s FormState) string { return s.AccountInfo.AccountNumber },
		func(s *FormState, v string) { s.AccountInfo.AccountNumber = v }),
	"account_info.swift_code": stringLens("account_info.swift_code",
		func(s FormState) string { return s.AccountInfo.SwiftCode },
		func(s *FormState, v string) { s.AccountInfo.SwiftCode = v }),
	"account_info.bank_address": stringLens("account_info.bank_address",
		func(s FormState) string { return s.AccountInfo.BankAddress },
		func(s *FormState, v string) { s.AccountInfo.BankAddress = v }),
	"account_info.bank_document": fileLens("account_info.bank_document",
		func(s FormState) FileRef { return s.AccountInfo.BankDocument },
		func(s *FormState, v FileRef) { s.AccountInfo.BankDocument = v }),
}

func stringLens(path string, get func(FormState) string, set func(*FormState, string)) Lens {
	return Lens{
		Get: func(s FormState) any { return get(s) },
		Set: func(s *FormState, v any) error {
			str, err := asString(path, v)
			if err != nil {
				return err
			}
			set(s, str)
			return nil
		},
	}
}

func boolLens(path string, get func(FormState) bool, set func(*FormState, bool)) Lens {
	return Lens{
		Get: func(s FormState) any { return get(s) },
		Set: func(s *FormState, v any) error {
			b, ok := v.(bool)
			if !ok {
				return fmt.Errorf("model: field %q expects a bool, got %T", path, v)
			}
			set(s, b)
			return nil
		},
	}
}

func fileLens(path string, get func(FormState) FileRef, set func(*FormState, FileRef)) Lens {
	return Lens{
		Get: func(s FormState) any { return get(s) },
		Set: func(s *FormState, v any) error {
			ref, ok := v.(FileRef)
			if !ok {
				return fmt.Errorf("model: field %q expects a FileRef, got %T", path, v)
			}
			set(s, ref)
			return nil
		},
	}
}

func asString(path string, v any) (string, error) {
	switch typed := v.(type) {
	case string:
		return typed, nil
	case BizType:
		return string(typed), nil
	case ConsentType:
		return string(typed), nil
	default:
		return "", fmt.Errorf("model: field %q expects a string, got %T", path, v)
	}
}
