// Package widgets resolves the control kind for field descriptors that the
// section layout leaves unspecified.
package widgets

import (
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-payeeform/pkg/model"
)

// Matcher decides whether a widget should handle the supplied descriptor.
type Matcher func(field model.FieldDescriptor) bool

type rule struct {
	widget   model.Widget
	priority int
	match    Matcher
	order    int
}

// Registry selects widgets for descriptors based on explicit layout hints or
// registered matchers. Higher priority wins; ties fall back to registration
// order.
type Registry struct {
	mu    sync.RWMutex
	rules []rule
}

// NewRegistry constructs a registry with the built-in matchers registered.
func NewRegistry() *Registry {
	reg := &Registry{}
	reg.registerBuiltins()
	return reg
}

// Register adds a matcher for the named widget. Higher priority values take
// precedence during resolution.
func (r *Registry) Register(widget model.Widget, priority int, matcher Matcher) {
	if r == nil || matcher == nil || strings.TrimSpace(string(widget)) == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rules = append(r.rules, rule{
		widget:   widget,
		priority: priority,
		match:    matcher,
		order:    len(r.rules),
	})
}

// Resolve returns the widget for a descriptor. An explicit widget on the
// descriptor is honoured before matcher evaluation.
func (r *Registry) Resolve(field model.FieldDescriptor) (model.Widget, bool) {
	if field.Widget != "" {
		return field.Widget, true
	}
	if r == nil {
		return "", false
	}

	r.mu.RLock()
	rules := append([]rule(nil), r.rules...)
	r.mu.RUnlock()
	if len(rules) == 0 {
		return "", false
	}

	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].priority == rules[j].priority {
			return rules[i].order < rules[j].order
		}
		return rules[i].priority > rules[j].priority
	})
	for _, entry := range rules {
		if entry.match(field) {
			return entry.widget, true
		}
	}
	return "", false
}

// Decorate fills the widget on every descriptor that lacks one, defaulting
// to a text input when nothing matches.
func (r *Registry) Decorate(sections []model.Section) ([]model.Section, error) {
	for si := range sections {
		for fi := range sections[si].Fields {
			field := sections[si].Fields[fi]
			if field.Widget != "" {
				continue
			}
			if widget, ok := r.Resolve(field); ok {
				field.Widget = widget
			} else {
				field.Widget = model.WidgetText
			}
			sections[si].Fields[fi] = field
		}
	}
	return sections, nil
}

// Long option lists render better as dropdowns; short ones as radios.
const selectThreshold = 6

func (r *Registry) registerBuiltins() {
	r.Register(model.WidgetFile, 90, func(field model.FieldDescriptor) bool {
		_, ok := field.Value.(model.FileRef)
		return ok
	})
	r.Register(model.WidgetCheckbox, 80, func(field model.FieldDescriptor) bool {
		_, ok := field.Value.(bool)
		return ok
	})
	r.Register(model.WidgetSelect, 70, func(field model.FieldDescriptor) bool {
		return len(field.Options) >= selectThreshold
	})
	r.Register(model.WidgetRadio, 60, func(field model.FieldDescriptor) bool {
		return len(field.Options) > 0
	})
}
