package submit_test

import (
	"bytes"
	"io"
	"mime"
	"mime/multipart"
	"strings"
	"testing"

	"github.com/goliatone/go-payeeform/pkg/catalog"
	"github.com/goliatone/go-payeeform/pkg/model"
	"github.com/goliatone/go-payeeform/pkg/payload"
	"github.com/goliatone/go-payeeform/pkg/submit"
)

func individualState() model.FormState {
	state := payload.DefaultFormState(catalog.Default())
	state.PersonalInfo.UserName = "홍길동"
	state.PersonalInfo.SSN = "900101-1234567"
	state.AccountInfo.BankName = "국민은행"
	state.AccountInfo.AccountHolder = "홍길동"
	state.AccountInfo.AccountNumber = "1234567890"
	return state
}

func fieldNames(form submit.Form) []string {
	names := make([]string, 0, len(form.Fields))
	for _, field := range form.Fields {
		names = append(names, field.Name)
	}
	return names
}

func contains(names []string, want string) bool {
	for _, name := range names {
		if name == want {
			return true
		}
	}
	return false
}

func TestBuildFormIndividual(t *testing.T) {
	form := submit.BuildForm(individualState())
	names := fieldNames(form)

	for _, required := range []string{
		"biz_type", "invoice_type", "tax", "bank_name", "account_holder",
		"account_number", "consent_type", "is_overseas", "is_minor",
		"is_foreigner", "user_name", "ssn", "identification_type",
	} {
		if !contains(names, required) {
			t.Fatalf("missing field %q in %v", required, names)
		}
	}
	for _, absent := range []string{"biz_name", "biz_reg_no", "swift_code", "bank_address", "guardian_name"} {
		if contains(names, absent) {
			t.Fatalf("unexpected field %q in %v", absent, names)
		}
	}

	if got, _ := form.Value("tax"); got != "-3.3" {
		t.Fatalf("tax stringified: %q", got)
	}
	if got, _ := form.Value("is_minor"); got != "false" {
		t.Fatalf("flag stringified: %q", got)
	}
}

func TestBuildFormBusiness(t *testing.T) {
	state := individualState()
	state.BizType.BizType = model.BizTypeCorporateBusiness
	state.BizType.InvoiceType = "tax_invoice"
	state.BizInfo.BizName = "주식회사 예제"
	state.BizInfo.BizRegNo = "110111-1234567"

	form := submit.BuildForm(state)
	names := fieldNames(form)

	for _, required := range []string{"biz_name", "biz_reg_no"} {
		if !contains(names, required) {
			t.Fatalf("missing field %q in %v", required, names)
		}
	}
	for _, absent := range []string{"user_name", "ssn", "is_minor", "identification_type"} {
		if contains(names, absent) {
			t.Fatalf("unexpected field %q in %v", absent, names)
		}
	}
}

func TestBuildFormMinorAddsGuardianFields(t *testing.T) {
	state := individualState()
	state.BizType.IsMinor = true
	state.PersonalInfo.GuardianName = "홍판서"
	state.PersonalInfo.GuardianTel = "010-9999-8888"

	form := submit.BuildForm(state)
	if got, _ := form.Value("guardian_name"); got != "홍판서" {
		t.Fatalf("guardian_name: %q", got)
	}
	if got, _ := form.Value("guardian_tel"); got != "010-9999-8888" {
		t.Fatalf("guardian_tel: %q", got)
	}
}

func TestBuildFormOverseasAddsInternationalFields(t *testing.T) {
	state := individualState()
	state.BizType.IsOverseas = true
	state.AccountInfo.SwiftCode = "CHASUS33"
	state.AccountInfo.BankAddress = "New York"

	form := submit.BuildForm(state)
	if got, _ := form.Value("swift_code"); got != "CHASUS33" {
		t.Fatalf("swift_code: %q", got)
	}
	if got, _ := form.Value("bank_address"); got != "New York" {
		t.Fatalf("bank_address: %q", got)
	}
}

func TestBuildFormForeignerForcesSentinel(t *testing.T) {
	state := individualState()
	state.BizType.IsForeigner = true
	state.PersonalInfo.IdentificationType = "passport"

	form := submit.BuildForm(state)
	if got, _ := form.Value("identification_type"); got != model.IdentificationForeignerCard {
		t.Fatalf("identification_type: %q", got)
	}
}

func TestBuildFormAttachesOnlyPendingFiles(t *testing.T) {
	state := individualState()
	state.PersonalInfo.IDDocument = model.RemoteFile("https://cdn.example.com/id.png", "id.png", "png")
	state.AccountInfo.BankDocument = model.PendingFile("book.png", []byte("bin"))

	form := submit.BuildForm(state)
	if len(form.Files) != 1 {
		t.Fatalf("expected exactly one file part, got %d", len(form.Files))
	}
	part := form.Files[0]
	if part.Field != payload.FileFieldBankDocument || part.Filename != "book.png" {
		t.Fatalf("unexpected file part: %+v", part)
	}
}

func TestMultipartRoundTrip(t *testing.T) {
	state := individualState()
	state.AccountInfo.BankDocument = model.PendingFile("book.png", []byte("binary-data"))
	form := submit.BuildForm(state)

	var body bytes.Buffer
	contentType, err := form.Multipart(&body)
	if err != nil {
		t.Fatalf("multipart: %v", err)
	}

	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil || mediaType != "multipart/form-data" {
		t.Fatalf("content type %q: %v", contentType, err)
	}

	reader := multipart.NewReader(&body, params["boundary"])
	seenBank := false
	seenFile := false
	for {
		part, err := reader.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("next part: %v", err)
		}
		switch part.FormName() {
		case "bank_name":
			data, _ := io.ReadAll(part)
			if string(data) != "국민은행" {
				t.Fatalf("bank_name part: %q", data)
			}
			seenBank = true
		case payload.FileFieldBankDocument:
			if part.FileName() != "book.png" {
				t.Fatalf("file part name: %q", part.FileName())
			}
			data, _ := io.ReadAll(part)
			if !strings.Contains(string(data), "binary-data") {
				t.Fatalf("file payload lost")
			}
			seenFile = true
		}
	}
	if !seenBank || !seenFile {
		t.Fatalf("parts missing: bank=%v file=%v", seenBank, seenFile)
	}
}
