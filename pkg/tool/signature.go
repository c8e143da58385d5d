package tool

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
)

// Param declares one tool parameter.
type Param struct {
	Name     string
	Kind     Kind
	Optional bool
}

// Property is the rendered description of one parameter.
type Property struct {
	Type Kind `json:"type"`
}

// Parameters lists the parameters of a signature. Properties are rendered
// in declaration order.
type Parameters struct {
	Properties map[string]Property
	Required   []string

	order []string
}

// MarshalJSON renders {"properties":{...}} keeping declaration order.
// Required is not part of the rendered form.
func (p Parameters) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"properties":{`)
	for i, name := range p.names() {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(p.Properties[name])
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteString(`}}`)
	return buf.Bytes(), nil
}

func (p Parameters) names() []string {
	if len(p.order) == len(p.Properties) {
		return p.order
	}
	names := make([]string, 0, len(p.Properties))
	for name := range p.Properties {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Params returns the declared parameters in order.
func (p Parameters) Params() []Param {
	names := p.names()
	out := make([]Param, 0, len(names))
	for _, name := range names {
		out = append(out, Param{
			Name:     name,
			Kind:     p.Properties[name].Type,
			Optional: !slices.Contains(p.Required, name),
		})
	}
	return out
}

// Signature is the machine-readable description of a tool that is shown to
// the model.
type Signature struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Parameters  Parameters `json:"parameters"`
}

// NewSignature builds a signature from an explicit parameter list.
func NewSignature(name, description string, params []Param) (Signature, error) {
	sig := Signature{
		Name:        name,
		Description: description,
		Parameters: Parameters{
			Properties: make(map[string]Property, len(params)),
			order:      make([]string, 0, len(params)),
		},
	}
	for _, p := range params {
		if p.Name == "" {
			return Signature{}, fmt.Errorf("tool %s: empty parameter name", name)
		}
		if !p.Kind.Valid() {
			return Signature{}, fmt.Errorf("%w: parameter %q has kind %q", ErrUnsupportedType, p.Name, p.Kind)
		}
		if _, ok := sig.Parameters.Properties[p.Name]; ok {
			return Signature{}, fmt.Errorf("tool %s: duplicate parameter %q", name, p.Name)
		}
		sig.Parameters.Properties[p.Name] = Property{Type: p.Kind}
		sig.Parameters.order = append(sig.Parameters.order, p.Name)
		if !p.Optional {
			sig.Parameters.Required = append(sig.Parameters.Required, p.Name)
		}
	}
	return sig, nil
}

// String returns the JSON rendering of the signature.
func (s Signature) String() string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return fmt.Sprintf(`{"name":%q,"error":%q}`, s.Name, err.Error())
	}
	return string(bytes.TrimRight(buf.Bytes(), "\n"))
}
