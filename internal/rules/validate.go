package rules

import (
	_ "embed"
	"fmt"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

//go:embed schema.cue
var schemaSource string

var (
	schemaOnce sync.Once
	schemaVal  cue.Value
	schemaErr  error
)

// ruleSchema compiles the embedded schema once and returns the #Rule
// definition. Compilation failure is a programming error but is surfaced
// as a normal error so callers degrade instead of panicking.
func ruleSchema() (cue.Value, error) {
	schemaOnce.Do(func() {
		ctx := cuecontext.New()
		v := ctx.CompileString(schemaSource, cue.Filename("schema.cue"))
		if err := v.Err(); err != nil {
			schemaErr = fmt.Errorf("compiling rule schema: %w", err)
			return
		}
		schemaVal = v.LookupPath(cue.ParsePath("#Rule"))
		if err := schemaVal.Err(); err != nil {
			schemaErr = fmt.Errorf("rule schema has no #Rule definition: %w", err)
		}
	})
	return schemaVal, schemaErr
}

// ValidateRaw checks one raw JSON rule object against the schema.
// JSON is a subset of CUE, so the raw bytes compile directly.
func ValidateRaw(raw []byte) error {
	schema, err := ruleSchema()
	if err != nil {
		return err
	}
	data := schema.Context().CompileBytes(raw)
	if err := data.Err(); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	// Unifying an absent field with its definition leaves the field
	// non-concrete rather than erroring, so requiredness is checked
	// against the raw data directly.
	for _, path := range []string{"trigger", "action", "action.type"} {
		if !data.LookupPath(cue.ParsePath(path)).Exists() {
			return fmt.Errorf("missing required field %q", path)
		}
	}
	if err := schema.Unify(data).Validate(cue.Concrete(false)); err != nil {
		return err
	}
	return nil
}
