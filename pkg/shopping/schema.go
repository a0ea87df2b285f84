package shopping

import (
	"bytes"
	"embed"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Schema names for the three dashboard payloads.
const (
	SchemaOverview    = "overview"
	SchemaHistory     = "history"
	SchemaRecentItems = "recent_items"
)

//go:embed schemas/*.json
var schemaFS embed.FS

// PayloadValidator checks decoded backend payloads against the embedded schemas.
type PayloadValidator struct {
	mu       sync.RWMutex
	compiled map[string]*jsonschema.Schema
}

// NewPayloadValidator builds a validator; schemas compile lazily on first use.
func NewPayloadValidator() *PayloadValidator {
	return &PayloadValidator{compiled: make(map[string]*jsonschema.Schema)}
}

// Validate checks a generic JSON document (as produced by Unmarshal into any).
func (v *PayloadValidator) Validate(name string, doc any) error {
	schema, err := v.schemaFor(name)
	if err != nil {
		return err
	}
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("shopping: %s payload failed validation: %w", name, err)
	}
	return nil
}

func (v *PayloadValidator) schemaFor(name string) (*jsonschema.Schema, error) {
	v.mu.RLock()
	schema, ok := v.compiled[name]
	v.mu.RUnlock()
	if ok {
		return schema, nil
	}
	data, err := schemaFS.ReadFile("schemas/" + name + ".json")
	if err != nil {
		return nil, fmt.Errorf("shopping: unknown schema %s: %w", name, err)
	}
	compiler := jsonschema.NewCompiler()
	resource := name + ".json"
	if err := compiler.AddResource(resource, bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("shopping: load schema %s: %w", name, err)
	}
	compiled, err := compiler.Compile(resource)
	if err != nil {
		return nil, fmt.Errorf("shopping: compile schema %s: %w", name, err)
	}
	v.mu.Lock()
	v.compiled[name] = compiled
	v.mu.Unlock()
	return compiled, nil
}
