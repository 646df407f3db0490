package fs

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/aretw0/pilha/pkg/core"
	"gopkg.in/yaml.v3"
)

// Serializer defines how to read and write a specific file format.
type Serializer interface {
	// Parse reads a stack from r.
	Parse(r io.Reader) (core.Stack, error)
	// Serialize converts the stack to bytes.
	Serialize(stack core.Stack) ([]byte, error)
}

// extensionOrder is the lookup order when a stack exists in several formats.
var extensionOrder = []string{".json", ".yaml", ".yml"}

// DefaultSerializers returns the standard set of serializers.
func DefaultSerializers(strict bool) map[string]Serializer {
	return map[string]Serializer{
		".json": NewJSONSerializer(strict),
		".yaml": NewYAMLSerializer(strict),
		".yml":  NewYAMLSerializer(strict),
	}
}

// --- JSON Serializer ---

// JSONSerializer handles reading and writing JSON files.
type JSONSerializer struct {
	// Strict rejects unknown fields.
	Strict bool
}

// NewJSONSerializer creates a new JSON serializer.
func NewJSONSerializer(strict bool) *JSONSerializer {
	return &JSONSerializer{Strict: strict}
}

func (s *JSONSerializer) Parse(r io.Reader) (core.Stack, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return core.Stack{}, err
	}

	var stack core.Stack
	if len(bytes.TrimSpace(data)) == 0 {
		return stack, nil
	}

	decoder := json.NewDecoder(bytes.NewReader(data))
	if s.Strict {
		decoder.DisallowUnknownFields()
	}
	if err := decoder.Decode(&stack); err != nil {
		return core.Stack{}, fmt.Errorf("invalid json: %w", err)
	}
	return stack, nil
}

func (s *JSONSerializer) Serialize(stack core.Stack) ([]byte, error) {
	if stack.Items == nil {
		stack.Items = []core.Item{}
	}
	return json.MarshalIndent(stack, "", "  ")
}

// --- YAML Serializer ---

// YAMLSerializer handles reading and writing YAML files.
type YAMLSerializer struct {
	// Strict rejects unknown fields.
	Strict bool
}

// NewYAMLSerializer creates a new YAML serializer.
func NewYAMLSerializer(strict bool) *YAMLSerializer {
	return &YAMLSerializer{Strict: strict}
}

func (s *YAMLSerializer) Parse(r io.Reader) (core.Stack, error) {
	var stack core.Stack

	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(s.Strict)
	if err := decoder.Decode(&stack); err != nil {
		// An empty document is an empty stack.
		if errors.Is(err, io.EOF) {
			return core.Stack{}, nil
		}
		return core.Stack{}, fmt.Errorf("invalid yaml: %w", err)
	}
	return stack, nil
}

func (s *YAMLSerializer) Serialize(stack core.Stack) ([]byte, error) {
	if stack.Items == nil {
		stack.Items = []core.Item{}
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(stack); err != nil {
		return nil, err
	}
	if err := encoder.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
