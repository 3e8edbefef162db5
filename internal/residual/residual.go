// SPDX-License-Identifier: Apache-2.0

// Package residual renders an analyzer.Result's residual policy as a JSON
// document for the `analyze --json` CLI surface. The document's schema is
// generated once from Document's struct tags (invopop/jsonschema) and every
// emitted document is validated against that compiled schema before being
// printed (santhosh-tekuri/jsonschema/v6), mirroring the teacher's
// plugin-manifest generate/compile/validate pair (internal/plugin/schema.go).
package residual

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/invopop/jsonschema"
	"github.com/samber/oops"
	jschema "github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/sunblaze-ucb/privguard/internal/policy"
)

// Document is the JSON-serializable shape of one completed analyze run.
type Document struct {
	RunID       string   `json:"run_id" jsonschema:"required,minLength=1"`
	ExampleID   int      `json:"example_id" jsonschema:"required"`
	ExampleName string   `json:"example_name" jsonschema:"required,minLength=1"`
	Effect      string   `json:"effect" jsonschema:"required,enum=sat,enum=unsat,enum=partial"`
	Clauses     []string `json:"clauses"`
	DurationMS  int64    `json:"duration_ms"`
}

// FromPolicy builds a Document from a residual policy and the run metadata
// analyzer.Analyze produces. effect is passed as a string rather than
// analyzer.Effect to keep this package independent of internal/analyzer.
func FromPolicy(runID string, exampleID int, exampleName string, effect string, p policy.Policy, duration time.Duration) Document {
	clauses := make([]string, len(p.DNF))
	for i, c := range p.DNF {
		parts := make([]string, len(c))
		for j, a := range c {
			parts[j] = a.String()
		}
		clause := ""
		for j, part := range parts {
			if j > 0 {
				clause += " AND "
			}
			clause += part
		}
		clauses[i] = clause
	}
	return Document{
		RunID:       runID,
		ExampleID:   exampleID,
		ExampleName: exampleName,
		Effect:      effect,
		Clauses:     clauses,
		DurationMS:  duration.Milliseconds(),
	}
}

// schemaState holds the compiled schema and sync.Once for thread-safe
// initialization, same shape as the teacher's schemaState.
type schemaState struct {
	once   sync.Once
	schema *jschema.Schema
	err    error
}

var globalSchemaState = &schemaState{}

// SchemaID is the JSON Schema $id for residual documents.
const SchemaID = "https://privguard.dev/schemas/residual.schema.json"

// GenerateSchema generates a JSON Schema from the Document struct.
func GenerateSchema() ([]byte, error) {
	r := jsonschema.Reflector{DoNotReference: true}
	schema := r.Reflect(&Document{})
	schema.ID = jsonschema.ID(SchemaID)
	schema.Title = "PrivGuard Residual Policy"
	schema.Description = "Schema for the JSON document emitted by analyze --json"

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, oops.In("residual").Hint("failed to marshal schema").Wrap(err)
	}
	return append(data, '\n'), nil
}

// Marshal renders doc as indented JSON and validates it against the compiled
// schema before returning it, so a malformed Document never reaches stdout.
func Marshal(doc Document) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, oops.In("residual").Hint("failed to marshal document").Wrap(err)
	}
	if err := Validate(data); err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// Validate validates JSON data against the residual document schema.
func Validate(data []byte) error {
	if len(data) == 0 {
		return oops.In("residual").New("document data is empty")
	}

	var jsonData any
	if err := json.Unmarshal(data, &jsonData); err != nil {
		return oops.In("residual").Hint("invalid JSON").Wrap(err)
	}

	sch, err := getCompiledSchema()
	if err != nil {
		return oops.In("residual").Hint("failed to compile schema").Wrap(err)
	}

	if err := sch.Validate(jsonData); err != nil {
		return oops.In("residual").Hint("schema validation failed").Wrap(err)
	}

	return nil
}

func getCompiledSchema() (*jschema.Schema, error) {
	globalSchemaState.once.Do(func() {
		globalSchemaState.schema, globalSchemaState.err = compileSchema()
	})
	return globalSchemaState.schema, globalSchemaState.err
}

func compileSchema() (*jschema.Schema, error) {
	schemaBytes, err := GenerateSchema()
	if err != nil {
		return nil, err
	}

	var schemaData any
	if err := json.Unmarshal(schemaBytes, &schemaData); err != nil {
		return nil, oops.In("residual").Hint("failed to parse schema JSON").Wrap(err)
	}

	c := jschema.NewCompiler()
	if err := c.AddResource(SchemaID, schemaData); err != nil {
		return nil, oops.In("residual").Hint("failed to add schema resource").Wrap(err)
	}

	sch, err := c.Compile(SchemaID)
	if err != nil {
		return nil, oops.In("residual").Hint("failed to compile schema").Wrap(err)
	}

	return sch, nil
}

// ResetSchemaCache clears the cached schema. Used for testing.
func ResetSchemaCache() {
	globalSchemaState = &schemaState{}
}
