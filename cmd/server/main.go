// Package main is the taskboard command: it serves the HTTP API and runs
// the operational tasks (migrations, seeding, password resets) against the
// same configuration.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version is set at build time with -ldflags.
var Version = "dev"

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:               "taskboard",
		Short:             "Taskboard - a multi-user kanban task tracker",
		Version:           Version,
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
	}
	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "config file (default ./config.yaml)")
	root.PersistentFlags().StringVar(&c.envFile, "env-file", ".env", "dotenv file loaded before the config")

	root.AddCommand(serveCmd(c))
	root.AddCommand(migrateCmd(c))
	root.AddCommand(bootstrapCmd(c))
	root.AddCommand(passwdCmd(c))

	return root
}
