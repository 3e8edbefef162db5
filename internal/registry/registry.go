// SPDX-License-Identifier: Apache-2.0

// Package registry loads the example registry: the CLI's
// (program, data_folder) pairs keyed by --example_id, replacing the
// original's hardcoded program_map/data_map/lib_map dictionaries in
// analyze.py with a koanf-backed configuration layer while preserving the
// same example ids and semantics.
package registry

import (
	_ "embed"
	"strconv"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/samber/oops"
	"github.com/spf13/pflag"

	"github.com/sunblaze-ucb/privguard/internal/program"
	"github.com/sunblaze-ucb/privguard/internal/program/builtin"
)

//go:embed examples.yaml
var defaultRegistryYAML []byte

// builtins maps the registry's "builtin" key to the concrete Program it
// names. This is the analogue of analyze.py's lib_map plus the
// importlib-based program_map loader: since dynamic program loading is out
// of scope (spec §1), every registry entry resolves to one of these
// already-loaded built-ins instead of a path to analyst-supplied code.
var builtins = map[string]program.Program{
	"ehr":                    builtin.EHR,
	"transaction_prediction": builtin.TransactionPrediction,
	"web_traffic_forecast":   builtin.WebTrafficForecast,
	"customer_satisfaction":  builtin.CustomerSatisfaction,
}

// Entry is one resolved (example_id, program, data_folder) triple.
type Entry struct {
	ID         int
	Name       string
	DataFolder string
	Program    program.Program
}

type entrySpec struct {
	Name       string `koanf:"name"`
	DataFolder string `koanf:"data_folder"`
	Builtin    string `koanf:"builtin"`
}

// embeddedProvider is a minimal koanf.Provider wrapping a compile-time
// byte slice, used to feed the embedded default examples.yaml through the
// same yaml.Parser() codepath as an on-disk registry file.
type embeddedProvider struct{ data []byte }

func (p embeddedProvider) ReadBytes() ([]byte, error) { return p.data, nil }

func (p embeddedProvider) Read() (map[string]interface{}, error) {
	return nil, oops.Code("UNSUPPORTED_OPERATOR").Errorf("embeddedProvider only supports ReadBytes")
}

// Load resolves the registry file to use — flags's "registry" string flag
// if set (bound through koanf/providers/posflag), the embedded default
// examples.yaml otherwise — and parses it into a table of Entry values.
func Load(flags *pflag.FlagSet) (map[int]Entry, error) {
	pathKoanf := koanf.New(".")
	if err := pathKoanf.Load(posflag.Provider(flags, ".", pathKoanf), nil); err != nil {
		return nil, oops.Code("IO_ERROR").Wrapf(err, "failed to read --registry flag")
	}
	path := pathKoanf.String("registry")

	doc := koanf.New(".")
	var err error
	if path != "" {
		err = doc.Load(file.Provider(path), yaml.Parser())
	} else {
		err = doc.Load(embeddedProvider{data: defaultRegistryYAML}, yaml.Parser())
	}
	if err != nil {
		return nil, oops.Code("IO_ERROR").With("path", path).Wrapf(err, "failed to load example registry")
	}

	var raw map[string]entrySpec
	if err := doc.Unmarshal("examples", &raw); err != nil {
		return nil, oops.Code("PARSE_ERROR").Wrapf(err, "failed to parse example registry")
	}

	out := make(map[int]Entry, len(raw))
	for idStr, spec := range raw {
		id, err := strconv.Atoi(idStr)
		if err != nil {
			return nil, oops.Code("PARSE_ERROR").With("id", idStr).Wrapf(err, "example id must be an integer")
		}
		prog, ok := builtins[spec.Builtin]
		if !ok {
			return nil, oops.
				Code("PARSE_ERROR").
				With("example_id", id).
				With("builtin", spec.Builtin).
				Errorf("unknown builtin %q for example %d", spec.Builtin, id)
		}
		out[id] = Entry{ID: id, Name: spec.Name, DataFolder: spec.DataFolder, Program: prog}
	}
	return out, nil
}

// Get looks up exampleID in the loaded registry.
func Get(entries map[int]Entry, exampleID int) (Entry, error) {
	e, ok := entries[exampleID]
	if !ok {
		return Entry{}, oops.
			Code("INVARIANT_VIOLATION").
			With("example_id", exampleID).
			Errorf("no example registered with id %d", exampleID)
	}
	return e, nil
}
