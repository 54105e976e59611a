// Package props implements live option objects: every write through Set
// stores the value and then runs a change handler, so handlers always read
// the new value.
//
// No validation is performed. Unknown fields are stored, wrong types read
// back as zero values through the typed getters, and negative sizes are kept
// as given.
package props

import (
	"fmt"
	"maps"
	"slices"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

// Values is a partial set of option fields keyed by name.
type Values map[string]any

// Handler reacts to field writes. It is implemented by GlobalHandler and
// FieldHandlers only.
type Handler interface {
	handle(field string, value any)
}

// GlobalHandler receives every write with the field name and new value.
type GlobalHandler func(field string, value any)

func (h GlobalHandler) handle(field string, value any) {
	if h != nil {
		h(field, value)
	}
}

// FieldHandlers maps field names to handlers that receive only the new
// value. Writes to fields without an entry succeed silently.
type FieldHandlers map[string]func(value any)

func (h FieldHandlers) handle(field string, value any) {
	if fn := h[field]; fn != nil {
		fn(value)
	}
}

// Props is a live option object built from defaults overlaid with caller
// values.
type Props struct {
	values  map[string]any
	handler Handler
}

// New merges defaults and values (values win) into a new Props whose
// writes are reported to handler. handler may be nil.
func New(values, defaults Values, handler Handler) *Props {
	merged := make(map[string]any, len(defaults)+len(values))
	maps.Copy(merged, defaults)
	maps.Copy(merged, values)
	return &Props{values: merged, handler: handler}
}

// Get returns the raw value of field.
func (p *Props) Get(field string) (any, bool) {
	v, ok := p.values[field]
	return v, ok
}

// Float returns field converted to float64, or 0.
func (p *Props) Float(field string) float64 {
	return cast.ToFloat64(p.values[field])
}

// Bool returns field converted to bool, or false.
func (p *Props) Bool(field string) bool {
	return cast.ToBool(p.values[field])
}

// String returns field converted to string, or "".
func (p *Props) String(field string) string {
	return cast.ToString(p.values[field])
}

// Set stores value and then calls the handler exactly once.
func (p *Props) Set(field string, value any) {
	p.values[field] = value
	if p.handler != nil {
		p.handler.handle(field, value)
	}
}

// Values returns a copy of every field.
func (p *Props) Values() Values {
	return maps.Clone(p.values)
}

// Fields returns the field names in sorted order.
func (p *Props) Fields() []string {
	return slices.Sorted(maps.Keys(p.values))
}

// LoadYAML decodes a YAML mapping into Values. An empty document yields an
// empty, non-nil map.
func LoadYAML(data []byte) (Values, error) {
	v := Values{}
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("decode props: %w", err)
	}
	if v == nil {
		v = Values{}
	}
	return v, nil
}
