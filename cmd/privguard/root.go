// SPDX-License-Identifier: Apache-2.0

package main

import (
	"github.com/spf13/cobra"
)

// Global flags available to all subcommands.
var logFormat string

// NewRootCmd creates the root command for the privguard CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "privguard",
		Short: "privguard - a static privacy-policy analyzer",
		Long: `privguard statically analyzes an analyst-supplied program against a
declared Legalease privacy policy and reports the residual obligations
that remain after the program's pandas/numpy/lightgbm operations have
discharged what they can.`,
	}

	cmd.PersistentFlags().StringVar(&logFormat, "log-format", "json", "log output format: json or text")

	cmd.AddCommand(NewAnalyzeCmd())

	return cmd
}

// NewAnalyzeCmd creates the analyze subcommand.
func NewAnalyzeCmd() *cobra.Command {
	return newAnalyzeCmd()
}
