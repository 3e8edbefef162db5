// SPDX-License-Identifier: Apache-2.0

// Package errutil adapts the analyzer's oops-coded errors to structured
// logging and test assertions.
package errutil

import (
	"log/slog"

	"github.com/samber/oops"
)

// LogError logs err with structured context if it's an oops error,
// extracting its message, code, and context; otherwise it logs the plain
// error string.
func LogError(logger *slog.Logger, msg string, err error) {
	if oopsErr, ok := oops.AsOops(err); ok {
		attrs := []any{"error", oopsErr.Error()}
		if code := oopsErr.Code(); code != "" {
			attrs = append(attrs, "code", code)
		}
		if ctx := oopsErr.Context(); len(ctx) > 0 {
			attrs = append(attrs, "context", ctx)
		}
		logger.Error(msg, attrs...)
		return
	}
	logger.Error(msg, "error", err)
}
