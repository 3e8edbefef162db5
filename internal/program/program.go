// SPDX-License-Identifier: Apache-2.0

// Package program defines the shape of an analyzed data-science program:
// the Go analogue of the original's `run(data_folder, **libs)` entry point.
package program

import (
	"context"

	"github.com/sunblaze-ucb/privguard/internal/surrogate"
	"github.com/sunblaze-ucb/privguard/internal/tabular"
)

// Program is one analyst-supplied (or, here, built-in) data analysis. It
// receives the bound surrogate library bindings and the dataset's data
// folder, and returns the final residual-policy-carrying value the analysis
// produced, mirroring the original's Python `run(data_folder, **libs)`
// contract (spec §6). Dynamic loading of arbitrary analyst code is an
// explicit external collaborator the spec puts out of scope, so a Program
// here is always one of the registry's built-ins rather than something
// loaded from disk at runtime.
type Program func(ctx context.Context, libs surrogate.Libraries, dataFolder string) (tabular.Carrier, error)
