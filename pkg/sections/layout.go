// Package sections derives the ordered display sections for a payee form
// state. Layouts are declarative YAML: fixed section and field order,
// visibility rules against the flattened state, and option sources resolved
// from the reference catalog.
package sections

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// FieldLayout describes one control in a layout file.
type FieldLayout struct {
	ID             string            `yaml:"id"`
	Path           string            `yaml:"path"`
	Label          string            `yaml:"label"`
	ErrorKey       string            `yaml:"errorKey"`
	Widget         string            `yaml:"widget"`
	Options        string            `yaml:"options"`
	VisibleWhen    string            `yaml:"visibleWhen"`
	ReadOnly       bool              `yaml:"readOnly"`
	FullWidth      bool              `yaml:"fullWidth"`
	LabelByBizType map[string]string `yaml:"labelByBizType"`
}

// SectionLayout describes one section in a layout file.
type SectionLayout struct {
	ID          string        `yaml:"id"`
	Label       string        `yaml:"label"`
	VisibleWhen string        `yaml:"visibleWhen"`
	Fields      []FieldLayout `yaml:"fields"`
}

// Layout is a resolved flow layout. Section and field order is array order.
type Layout struct {
	Sections []SectionLayout
}

type flowFile struct {
	Extends   string          `yaml:"extends"`
	Sections  []SectionLayout `yaml:"sections"`
	Overrides []overrideFile  `yaml:"overrides"`
}

type overrideFile struct {
	Path     string `yaml:"path"`
	Label    string `yaml:"label"`
	ReadOnly *bool  `yaml:"readOnly"`
}

type layoutFile struct {
	Flows map[string]flowFile `yaml:"flows"`
}

// LoadFS parses every YAML layout file in the filesystem and resolves flow
// inheritance. Flows may extend another flow from the same file set and patch
// individual fields through overrides.
func LoadFS(fsys fs.FS) (map[string]Layout, error) {
	raw := make(map[string]flowFile)

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isLayoutFile(path) {
			return nil
		}
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("sections: read %s: %w", path, err)
		}
		var file layoutFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return fmt.Errorf("sections: parse %s: %w", path, err)
		}
		for name, flow := range file.Flows {
			trimmed := strings.TrimSpace(name)
			if trimmed == "" {
				return fmt.Errorf("sections: file %s defines an empty flow name", path)
			}
			if _, exists := raw[trimmed]; exists {
				return fmt.Errorf("sections: duplicate flow %q (file %s)", trimmed, path)
			}
			raw[trimmed] = flow
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	layouts := make(map[string]Layout, len(raw))
	for name := range raw {
		layout, err := resolveFlow(name, raw, nil)
		if err != nil {
			return nil, err
		}
		layouts[name] = layout
	}
	return layouts, nil
}

func resolveFlow(name string, raw map[string]flowFile, seen []string) (Layout, error) {
	for _, ancestor := range seen {
		if ancestor == name {
			return Layout{}, fmt.Errorf("sections: flow %q extends itself through %v", name, seen)
		}
	}
	flow, ok := raw[name]
	if !ok {
		return Layout{}, fmt.Errorf("sections: unknown flow %q", name)
	}

	var layout Layout
	if base := strings.TrimSpace(flow.Extends); base != "" {
		parent, err := resolveFlow(base, raw, append(seen, name))
		if err != nil {
			return Layout{}, err
		}
		layout = parent
	}
	if len(flow.Sections) > 0 {
		layout = Layout{Sections: cloneSections(flow.Sections)}
	}

	for _, override := range flow.Overrides {
		if !applyOverride(&layout, override) {
			return Layout{}, fmt.Errorf("sections: flow %q overrides unknown field path %q", name, override.Path)
		}
	}
	return layout, nil
}

func applyOverride(layout *Layout, override overrideFile) bool {
	target := strings.TrimSpace(override.Path)
	if target == "" {
		return false
	}
	for si := range layout.Sections {
		for fi := range layout.Sections[si].Fields {
			field := &layout.Sections[si].Fields[fi]
			if field.Path != target {
				continue
			}
			if override.Label != "" {
				field.Label = override.Label
			}
			if override.ReadOnly != nil {
				field.ReadOnly = *override.ReadOnly
			}
			return true
		}
	}
	return false
}

func cloneSections(in []SectionLayout) []SectionLayout {
	out := make([]SectionLayout, len(in))
	for i, section := range in {
		cloned := section
		cloned.Fields = make([]FieldLayout, len(section.Fields))
		for j, field := range section.Fields {
			fieldClone := field
			if len(field.LabelByBizType) > 0 {
				fieldClone.LabelByBizType = make(map[string]string, len(field.LabelByBizType))
				for k, v := range field.LabelByBizType {
					fieldClone.LabelByBizType[k] = v
				}
			}
			cloned.Fields[j] = fieldClone
		}
		out[i] = cloned
	}
	return out
}

func isLayoutFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	default:
		return false
	}
}
