package tools

import (
	"encoding/json"

	"github.com/google/jsonschema-go/jsonschema"
)

// InputSchema returns the JSON Schema of the operation's arguments. Both
// protocol adapters publish it.
func (o *Operation) InputSchema() *jsonschema.Schema {
	schema := &jsonschema.Schema{
		Type:       "object",
		Properties: make(map[string]*jsonschema.Schema, len(o.Params)),
		Required:   []string{},
	}
	for _, p := range o.Params {
		prop := &jsonschema.Schema{
			Type:        string(p.Type),
			Description: p.Description,
		}
		if p.Default != nil {
			if raw, err := json.Marshal(p.Default); err == nil {
				prop.Default = raw
			}
		}
		for _, e := range p.Enum {
			prop.Enum = append(prop.Enum, e)
		}
		schema.Properties[p.Name] = prop
		if p.Required {
			schema.Required = append(schema.Required, p.Name)
		}
	}
	return schema
}

// ParamNames returns the argument names in declaration order.
func (o *Operation) ParamNames() []string {
	names := make([]string, len(o.Params))
	for i, p := range o.Params {
		names[i] = p.Name
	}
	return names
}
