package model

// Widget names the control kind a field renders as.
type Widget string

const (
	WidgetText     Widget = "text"
	WidgetSelect   Widget = "select"
	WidgetRadio    Widget = "radio"
	WidgetCheckbox Widget = "checkbox"
	WidgetFile     Widget = "file"
)

// Option is a selectable choice for radio/select/checkbox widgets.
type Option struct {
	Value       string `json:"value"`
	Label       string `json:"label"`
	Description string `json:"description,omitempty"`
}

// Lens binds a field descriptor to its FormState leaf with typed accessors,
// so generic form plumbing never re-parses dotted paths at access time.
type Lens struct {
	Get func(FormState) any
	Set func(*FormState, any) error
}

// FieldDescriptor is a rendering instruction for one control. Path doubles as
// the stable field identity for prefills and error mapping; Lens is the
// accessor pair bound at section-build time.
type FieldDescriptor struct {
	ID        string   `json:"id"`
	Label     string   `json:"label"`
	Widget    Widget   `json:"widget"`
	Path      string   `json:"path"`
	Value     any      `json:"value,omitempty"`
	ErrorKey  string   `json:"errorKey,omitempty"`
	Options   []Option `json:"options,omitempty"`
	ReadOnly  bool     `json:"readOnly,omitempty"`
	FullWidth bool     `json:"fullWidth,omitempty"`
	Lens      Lens     `json:"-"`
}

// Section groups descriptors for display. Sections are derived on every state
// change and never persisted; order is fixed by the layout, not sorted.
type Section struct {
	ID     string            `json:"id"`
	Label  string            `json:"label"`
	Fields []FieldDescriptor `json:"fields"`
}

// Decorator adjusts derived sections before rendering.
type Decorator interface {
	Decorate([]Section) ([]Section, error)
}

// DecoratorFunc adapts a function into a Decorator.
type DecoratorFunc func([]Section) ([]Section, error)

// Decorate calls the underlying function.
func (fn DecoratorFunc) Decorate(sections []Section) ([]Section, error) {
	return fn(sections)
}
