package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/c360studio/commitcheck/config"
)

// typesCmd prints the effective commit type registry, honoring --config and
// an inline --types override, so hook authors can see what a message will be
// checked against.
func typesCmd(flags *cliFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "Print the effective commit types and their required fields",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := setupLogging(flags.logLevel)
			_, reg, err := resolveConfig(flags, logger)
			if err != nil {
				return err
			}
			for _, t := range reg.Types() {
				fmt.Printf("%s: %s\n", t.Name, strings.Join(t.Requires, ", "))
			}
			return nil
		},
	}
}

// schemaCmd prints the JSON schema of the YAML config file.
func schemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON schema for commitcheck.yaml",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			schema, err := config.Schema()
			if err != nil {
				return err
			}
			fmt.Println(schema)
			return nil
		},
	}
}
