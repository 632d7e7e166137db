package harness

import (
	_ "embed"
	"fmt"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
)

//go:embed schema.cue
var schemaCUE string

var (
	schemaOnce sync.Once
	schemaCtx  *cue.Context
	schemaDef  cue.Value
	schemaErr  error
)

// scenarioSchema compiles the embedded schema once.
func scenarioSchema() (*cue.Context, cue.Value, error) {
	schemaOnce.Do(func() {
		schemaCtx = cuecontext.New()
		v := schemaCtx.CompileString(schemaCUE, cue.Filename("schema.cue"))
		if err := v.Err(); err != nil {
			schemaErr = fmt.Errorf("compile scenario schema: %w", err)
			return
		}
		schemaDef = v.LookupPath(cue.ParsePath("#Scenario"))
		if err := schemaDef.Err(); err != nil {
			schemaErr = fmt.Errorf("lookup #Scenario: %w", err)
		}
	})
	return schemaCtx, schemaDef, schemaErr
}

// validateSchema checks raw decoded YAML against the #Scenario definition.
func validateSchema(raw any) error {
	ctx, def, err := scenarioSchema()
	if err != nil {
		return err
	}

	v := def.Unify(ctx.Encode(raw))
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("schema: %s", cueerrors.Details(err, nil))
	}
	return nil
}
