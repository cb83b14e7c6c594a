package inputs

import (
	"fmt"

	"gopkg.in/yaml.v3"

	electronbuilderaction "github.com/mmr-tortoise/electron-builder-action"
)

// InputSpec is a single entry of the "inputs" mapping in action.yml.
type InputSpec struct {
	// Name is the mapping key, e.g. "package_root".
	Name string `yaml:"-" json:"name"`

	// Description is the human-readable help text.
	Description string `yaml:"description" json:"description,omitempty"`

	// Required inputs must resolve to a non-empty value. A default counts
	// as a value, matching what the Actions runner does.
	Required bool `yaml:"required" json:"required"`

	// Default is applied when the input is not set. Always a string in
	// action.yml, even for booleans and numbers.
	Default string `yaml:"default" json:"default,omitempty"`

	// DeprecationMessage is shown when a deprecated input is set explicitly.
	DeprecationMessage string `yaml:"deprecationMessage" json:"deprecationMessage,omitempty"`
}

// Deprecated reports whether the input carries a deprecation message.
func (s InputSpec) Deprecated() bool {
	return s.DeprecationMessage != ""
}

// Schema is the ordered set of inputs declared by action.yml.
type Schema struct {
	// Name is the action's display name.
	Name string

	// inputs holds the specs in declaration order.
	inputs []InputSpec

	// byName maps an input name to its index in inputs.
	byName map[string]int
}

// metadataFile mirrors the parts of action.yml this package reads.
// Inputs is kept as a node so declaration order survives decoding.
type metadataFile struct {
	Name   string    `yaml:"name"`
	Inputs yaml.Node `yaml:"inputs"`
}

// ParseSchema parses action.yml content into a Schema.
//
// Steps:
//  1. Decode the document, keeping "inputs" as a raw node
//  2. Check that "inputs" is a mapping
//  3. Decode each entry in order, rejecting duplicate names
func ParseSchema(data []byte) (*Schema, error) {
	// Step 1: Decode
	var meta metadataFile
	if err := yaml.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("failed to parse action metadata: %w", err)
	}

	// Step 2: Shape check. A missing "inputs" key leaves Kind zero.
	if meta.Inputs.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("action metadata: \"inputs\" must be a mapping (line %d)", meta.Inputs.Line)
	}

	schema := &Schema{
		Name:   meta.Name,
		byName: make(map[string]int, len(meta.Inputs.Content)/2),
	}

	// Step 3: Entries. A mapping node stores keys and values as
	// alternating children.
	content := meta.Inputs.Content
	for i := 0; i+1 < len(content); i += 2 {
		key, value := content[i], content[i+1]

		var spec InputSpec
		if err := value.Decode(&spec); err != nil {
			return nil, fmt.Errorf("action metadata: input %q: %w", key.Value, err)
		}
		spec.Name = key.Value

		if _, dup := schema.byName[spec.Name]; dup {
			return nil, fmt.Errorf("action metadata: input %q declared twice (line %d)", spec.Name, key.Line)
		}
		schema.byName[spec.Name] = len(schema.inputs)
		schema.inputs = append(schema.inputs, spec)
	}

	return schema, nil
}

// DefaultSchema parses the action.yml embedded in the binary.
func DefaultSchema() (*Schema, error) {
	return ParseSchema(electronbuilderaction.Metadata)
}

// Inputs returns the declared inputs in action.yml order.
func (s *Schema) Inputs() []InputSpec {
	out := make([]InputSpec, len(s.inputs))
	copy(out, s.inputs)
	return out
}

// Lookup returns the spec for the named input.
func (s *Schema) Lookup(name string) (InputSpec, bool) {
	i, ok := s.byName[name]
	if !ok {
		return InputSpec{}, false
	}
	return s.inputs[i], true
}
