// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/sunblaze-ucb/privguard/internal/analyzer"
	"github.com/sunblaze-ucb/privguard/internal/errutil"
	"github.com/sunblaze-ucb/privguard/internal/logging"
	"github.com/sunblaze-ucb/privguard/internal/registry"
	"github.com/sunblaze-ucb/privguard/internal/residual"
)

// analyzeConfig holds configuration for the analyze command.
type analyzeConfig struct {
	exampleID    int
	registryPath string
	jsonOutput   bool
}

// newAnalyzeCmd creates the analyze subcommand with all flags configured.
func newAnalyzeCmd() *cobra.Command {
	cfg := &analyzeConfig{}

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Run a registered example program and print its residual policy",
		Long: `analyze runs the program registered under --example_id against its
declared privacy policy and prints the residual obligations that remain
after the program's operations discharge what they can. Exit code is
non-zero on parse error, I/O failure, or unsupported operation.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAnalyze(cmd, cfg)
		},
	}

	cmd.Flags().IntVar(&cfg.exampleID, "example_id", -1, "id of the registered example to analyze")
	cmd.Flags().StringVar(&cfg.registryPath, "registry", "", "path to an example registry YAML file (default: embedded registry)")
	cmd.Flags().BoolVar(&cfg.jsonOutput, "json", false, "print the residual policy as a schema-validated JSON document")
	_ = cmd.MarkFlagRequired("example_id")

	return cmd
}

// runAnalyze executes the analyze command.
func runAnalyze(cmd *cobra.Command, cfg *analyzeConfig) error {
	logging.SetDefault("privguard", version, logFormat)

	entries, err := registry.Load(cmd.Flags())
	if err != nil {
		errutil.LogError(slog.Default(), "failed to load example registry", err)
		return err
	}

	entry, err := registry.Get(entries, cfg.exampleID)
	if err != nil {
		errutil.LogError(slog.Default(), "failed to resolve example id", err)
		return err
	}
	entry.DataFolder = filepath.Join(privguardRoot(), entry.DataFolder)

	result, err := analyzer.Analyze(cmd.Context(), entry)
	if err != nil {
		errutil.LogError(slog.Default(), "analyze run failed", err)
		return err
	}

	slog.Info("analyze completed",
		"run_id", result.RunID.String(),
		"example_id", result.ExampleID,
		"example_name", result.ExampleName,
		"effect", string(result.Effect),
	)

	if cfg.jsonOutput {
		doc := residual.FromPolicy(result.RunID.String(), result.ExampleID, result.ExampleName, string(result.Effect), result.ResidualPolicy, result.Duration)
		data, err := residual.Marshal(doc)
		if err != nil {
			errutil.LogError(slog.Default(), "failed to render residual document", err)
			return err
		}
		cmd.Print(string(data))
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), result.ResidualPolicy.String())
	return nil
}

// privguardRoot returns the repository root used to resolve registry
// data_folder entries, per spec §6's PRIVGUARD environment variable.
func privguardRoot() string {
	if root := os.Getenv("PRIVGUARD"); root != "" {
		return root
	}
	return "."
}
