// Package schema validates configuration documents against embedded CUE
// schemas before they are decoded into typed structures. Structural problems
// are caught here; semantic checks (weight sums, rule types) happen in the
// owning packages.
package schema

import (
	"embed"
	"fmt"
	"path/filepath"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

//go:embed schemas/*.cue
var schemaFS embed.FS

// Validator handles CUE validation of configuration documents.
type Validator struct {
	ctx     *cue.Context
	schemas map[string]cue.Value
}

// NewValidator creates a Validator with all embedded schemas compiled.
func NewValidator() (*Validator, error) {
	v := &Validator{
		ctx:     cuecontext.New(),
		schemas: make(map[string]cue.Value),
	}
	if err := v.loadSchemas(); err != nil {
		return nil, err
	}
	return v, nil
}

func (v *Validator) loadSchemas() error {
	entries, err := schemaFS.ReadDir("schemas")
	if err != nil {
		return fmt.Errorf("could not read embedded schemas: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".cue" {
			continue
		}
		content, err := schemaFS.ReadFile(filepath.Join("schemas", entry.Name()))
		if err != nil {
			return fmt.Errorf("could not read schema %s: %w", entry.Name(), err)
		}

		inst := v.ctx.CompileBytes(content, cue.Filename(entry.Name()))
		if instErr := inst.Err(); instErr != nil {
			return fmt.Errorf("could not compile schema %s: %w", entry.Name(), instErr)
		}

		// catalog.cue -> catalog
		name := entry.Name()[:len(entry.Name())-4]
		v.schemas[name] = inst.Value()
	}

	if len(v.schemas) == 0 {
		return fmt.Errorf("no CUE schemas loaded")
	}
	return nil
}

// ValidateCatalog validates a decoded catalog document.
func (v *Validator) ValidateCatalog(data map[string]any) error {
	return v.validate("catalog", "#Catalog", data)
}

// ValidateRuleSet validates a decoded rule-set document.
func (v *Validator) ValidateRuleSet(data map[string]any) error {
	return v.validate("rules", "#RuleSet", data)
}

// ValidateCountry validates a decoded country document.
func (v *Validator) ValidateCountry(data map[string]any) error {
	return v.validate("country", "#Country", data)
}

// validate unifies data with the named definition from the named schema.
func (v *Validator) validate(schemaName, defName string, data map[string]any) error {
	schema, ok := v.schemas[schemaName]
	if !ok {
		return fmt.Errorf("schema %q not loaded", schemaName)
	}

	dataValue := v.ctx.Encode(data)
	if encErr := dataValue.Err(); encErr != nil {
		return fmt.Errorf("error encoding document: %w", encErr)
	}

	def := schema.LookupPath(cue.ParsePath(defName))
	if !def.Exists() {
		return fmt.Errorf("definition %s not found in schema %q", defName, schemaName)
	}

	unified := def.Unify(dataValue)
	if err := unified.Err(); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}
