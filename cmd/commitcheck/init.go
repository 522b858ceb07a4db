package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/c360studio/commitcheck/config"
	"github.com/c360studio/commitcheck/registry"
)

// initCmd writes a starter commitcheck.yaml so projects begin from the
// built-in type table instead of an empty file.
func initCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write a starter commitcheck.yaml in the current directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := writeStarterConfig(config.ProjectConfigFile); err != nil {
				return err
			}
			fmt.Printf("Wrote %s\n", config.ProjectConfigFile)
			return nil
		},
	}
}

// writeStarterConfig saves the default configuration with the built-in commit
// types spelled out. An existing file is never overwritten.
func writeStarterConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}

	cfg := config.DefaultConfig()
	for _, t := range registry.Default().Types() {
		cfg.Types = append(cfg.Types, config.TypeRule{Name: t.Name})
	}
	return cfg.SaveToFile(path)
}
