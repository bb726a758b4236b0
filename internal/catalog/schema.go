package catalog

import (
	_ "embed"
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

//go:embed plant.cue
var plantSchema []byte

// schemaValidator checks raw catalog records against the #Plant definition
type schemaValidator struct {
	ctx   *cue.Context
	plant cue.Value
}

func newSchemaValidator() (*schemaValidator, error) {
	ctx := cuecontext.New()

	inst := ctx.CompileBytes(plantSchema, cue.Filename("plant.cue"))
	if err := inst.Err(); err != nil {
		return nil, fmt.Errorf("compile plant schema: %w", err)
	}

	def := inst.LookupPath(cue.ParsePath("#Plant"))
	if !def.Exists() {
		return nil, fmt.Errorf("plant schema has no #Plant definition")
	}

	return &schemaValidator{ctx: ctx, plant: def}, nil
}

// validate reports the first schema violation in a decoded YAML record
func (v *schemaValidator) validate(record map[string]any) error {
	value := v.ctx.Encode(record)
	if err := value.Err(); err != nil {
		return fmt.Errorf("encode record: %w", err)
	}

	unified := v.plant.Unify(value)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return err
	}
	return nil
}
