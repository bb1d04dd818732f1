package catalog

import (
	"fmt"
	"io/fs"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-payeeform/pkg/model"
)

// DefaultInvoiceType is the hard fallback applied when a business type maps
// to an empty issue-type set. It matches the individual withholding entry of
// the shipped catalog.
const DefaultInvoiceType = "withholding_3_3"

// IssueType is one invoice/issue option. AppliesTo tags the business types
// the entry is offered to; subsets are selected by tag, never by position.
type IssueType struct {
	Value       string
	Label       string
	Description string
	Detail      string
	TaxRatio    decimal.Decimal
	AppliesTo   []model.BizType
}

// Applies reports whether the entry is offered to the given business type.
func (it IssueType) Applies(bt model.BizType) bool {
	for _, tag := range it.AppliesTo {
		if tag == bt {
			return true
		}
	}
	return false
}

// IDDocumentType is a selectable identification document kind.
type IDDocumentType struct {
	Value string
	Label string
}

// ConsentOption is a selectable consent duration.
type ConsentOption struct {
	Value model.ConsentType
	Label string
}

// Catalog bundles the static reference data the form engine consults. It is
// immutable after load and safe for concurrent readers.
type Catalog struct {
	issueTypes    []IssueType
	banks         []string
	idDocTypes    []IDDocumentType
	consents      []ConsentOption
	bizTypeLabels map[model.BizType]string
}

type catalogFile struct {
	IssueTypes []struct {
		Value       string   `yaml:"value"`
		Label       string   `yaml:"label"`
		Description string   `yaml:"description"`
		Detail      string   `yaml:"detail"`
		TaxRatio    string   `yaml:"taxRatio"`
		AppliesTo   []string `yaml:"appliesTo"`
	} `yaml:"issueTypes"`
	Banks           []string `yaml:"banks"`
	IDDocumentTypes []struct {
		Value string `yaml:"value"`
		Label string `yaml:"label"`
	} `yaml:"idDocumentTypes"`
	ConsentTypes []struct {
		Value string `yaml:"value"`
		Label string `yaml:"label"`
	} `yaml:"consentTypes"`
	BizTypeLabels map[string]string `yaml:"bizTypeLabels"`
}

// Load reads catalog.yaml from the provided filesystem.
func Load(fsys fs.FS) (*Catalog, error) {
	data, err := fs.ReadFile(fsys, "catalog.yaml")
	if err != nil {
		return nil, fmt.Errorf("catalog: read catalog.yaml: %w", err)
	}
	return parse(data)
}

func parse(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("catalog: parse catalog.yaml: %w", err)
	}

	cat := &Catalog{
		banks:         append([]string(nil), file.Banks...),
		bizTypeLabels: make(map[model.BizType]string, len(file.BizTypeLabels)),
	}

	for _, entry := range file.IssueTypes {
		value := strings.TrimSpace(entry.Value)
		if value == "" {
			return nil, fmt.Errorf("catalog: issue type with empty value")
		}
		ratio := decimal.Zero
		if trimmed := strings.TrimSpace(entry.TaxRatio); trimmed != "" {
			parsed, err := decimal.NewFromString(trimmed)
			if err != nil {
				return nil, fmt.Errorf("catalog: issue type %q tax ratio: %w", value, err)
			}
			ratio = parsed
		}
		tags := make([]model.BizType, 0, len(entry.AppliesTo))
		for _, tag := range entry.AppliesTo {
			tags = append(tags, model.BizType(strings.TrimSpace(tag)))
		}
		cat.issueTypes = append(cat.issueTypes, IssueType{
			Value:       value,
			Label:       entry.Label,
			Description: entry.Description,
			Detail:      entry.Detail,
			TaxRatio:    ratio,
			AppliesTo:   tags,
		})
	}

	for _, entry := range file.IDDocumentTypes {
		cat.idDocTypes = append(cat.idDocTypes, IDDocumentType{
			Value: strings.TrimSpace(entry.Value),
			Label: entry.Label,
		})
	}
	for _, entry := range file.ConsentTypes {
		cat.consents = append(cat.consents, ConsentOption{
			Value: model.ConsentType(strings.TrimSpace(entry.Value)),
			Label: entry.Label,
		})
	}
	for key, label := range file.BizTypeLabels {
		cat.bizTypeLabels[model.BizType(key)] = label
	}

	return cat, nil
}

// IssueTypes returns the full catalog in file order.
func (c *Catalog) IssueTypes() []IssueType {
	return append([]IssueType(nil), c.issueTypes...)
}

// IssueTypesFor returns the entries tagged for the business type. Unknown or
// untagged types fall back to the full catalog rather than an empty set.
func (c *Catalog) IssueTypesFor(bt model.BizType) []IssueType {
	var out []IssueType
	for _, entry := range c.issueTypes {
		if entry.Applies(bt) {
			out = append(out, entry)
		}
	}
	if len(out) == 0 {
		return c.IssueTypes()
	}
	return out
}

// IssueType looks an entry up by value.
func (c *Catalog) IssueType(value string) (IssueType, bool) {
	for _, entry := range c.issueTypes {
		if entry.Value == value {
			return entry, true
		}
	}
	return IssueType{}, false
}

// TaxRatioOf resolves the derived tax ratio for an invoice type, zero when
// the value is unknown.
func (c *Catalog) TaxRatioOf(invoiceType string) decimal.Decimal {
	if entry, ok := c.IssueType(invoiceType); ok {
		return entry.TaxRatio
	}
	return decimal.Zero
}

// AllowsInvoiceType reports whether the invoice type is in the allowed set
// for the business type.
func (c *Catalog) AllowsInvoiceType(bt model.BizType, invoiceType string) bool {
	for _, entry := range c.IssueTypesFor(bt) {
		if entry.Value == invoiceType {
			return true
		}
	}
	return false
}

// DefaultInvoiceTypeFor picks the first allowed entry for the business type,
// falling back to the hard-coded default when the catalog is empty.
func (c *Catalog) DefaultInvoiceTypeFor(bt model.BizType) string {
	if allowed := c.IssueTypesFor(bt); len(allowed) > 0 {
		return allowed[0].Value
	}
	return DefaultInvoiceType
}

// Banks returns the selectable bank names.
func (c *Catalog) Banks() []string {
	return append([]string(nil), c.banks...)
}

// IDDocumentTypes returns the identification document kinds.
func (c *Catalog) IDDocumentTypes() []IDDocumentType {
	return append([]IDDocumentType(nil), c.idDocTypes...)
}

// ConsentOptions returns the consent duration choices.
func (c *Catalog) ConsentOptions() []ConsentOption {
	return append([]ConsentOption(nil), c.consents...)
}

// BizTypeLabel resolves the display label, falling back to the raw value.
func (c *Catalog) BizTypeLabel(bt model.BizType) string {
	if label, ok := c.bizTypeLabels[bt]; ok {
		return label
	}
	return string(bt)
}

// BizTypeOptions returns the business types as widget options.
func (c *Catalog) BizTypeOptions() []model.Option {
	out := make([]model.Option, 0, len(model.BizTypes()))
	for _, bt := range model.BizTypes() {
		out = append(out, model.Option{Value: string(bt), Label: c.BizTypeLabel(bt)})
	}
	return out
}

// IssueTypeOptionsFor returns the allowed issue types as widget options.
func (c *Catalog) IssueTypeOptionsFor(bt model.BizType) []model.Option {
	allowed := c.IssueTypesFor(bt)
	out := make([]model.Option, 0, len(allowed))
	for _, entry := range allowed {
		out = append(out, model.Option{Value: entry.Value, Label: entry.Label, Description: entry.Description})
	}
	return out
}

// IDDocumentOptions returns identification kinds as widget options.
func (c *Catalog) IDDocumentOptions() []model.Option {
	out := make([]model.Option, 0, len(c.idDocTypes))
	for _, entry := range c.idDocTypes {
		out = append(out, model.Option{Value: entry.Value, Label: entry.Label})
	}
	return out
}

// ConsentTypeOptions returns consent choices as widget options.
func (c *Catalog) ConsentTypeOptions() []model.Option {
	out := make([]model.Option, 0, len(c.consents))
	for _, entry := range c.consents {
		out = append(out, model.Option{Value: string(entry.Value), Label: entry.Label})
	}
	return out
}

// BankOptions returns bank names as widget options.
func (c *Catalog) BankOptions() []model.Option {
	out := make([]model.Option, 0, len(c.banks))
	for _, bank := range c.banks {
		out = append(out, model.Option{Value: bank, Label: bank})
	}
	return out
}
