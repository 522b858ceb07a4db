// Package main provides the commitcheck binary entry point.
// Commitcheck validates commit messages against a configurable commit type
// grammar and is intended to run as a git commit-msg hook.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/c360studio/commitcheck/config"
	"github.com/c360studio/commitcheck/message"
	"github.com/c360studio/commitcheck/registry"
	"github.com/c360studio/commitcheck/report"
	"github.com/c360studio/commitcheck/validate"
)

const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "commitcheck"
)

// cliFlags is the flag surface shared by the root command and subcommands.
type cliFlags struct {
	typesSpec  string
	ignoreCase bool
	noExit     bool
	configPath string
	format     string
	logLevel   string
}

func main() {
	// Add panic recovery
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(report.ExitConfigError)
		}
	}()

	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(report.ExitConfigError)
	}
}

func rootCmd() *cobra.Command {
	flags := &cliFlags{}

	cmd := &cobra.Command{
		Use:   "commitcheck [message-file]",
		Short: "Validate commit messages against a commit type grammar",
		Long: `Commitcheck validates a commit message against a configurable set of
commit types of the form "type(scope): description".

The message is read from the file given as the first argument (the path git
passes to commit-msg hooks) or from standard input. Each violated rule is
printed on its own line and the process exits non-zero unless --no-exit is
set. The allowed commit types come from commitcheck.yaml or from an inline
override spec such as:

  commitcheck --types "feat=scope,description;fix=scope;docs="`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(args, flags)
		},
	}

	cmd.PersistentFlags().StringVarP(&flags.typesSpec, "types", "t", "", `Override commit type spec ("type=field1,field2;type2=")`)
	cmd.PersistentFlags().BoolVarP(&flags.ignoreCase, "ignore-case", "c", false, "Compare commit types case-insensitively")
	cmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "Config file path (YAML)")
	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	cmd.Flags().BoolVarP(&flags.noExit, "no-exit", "e", false, "Print violations but exit successfully")
	cmd.Flags().StringVar(&flags.format, "format", "", "Report format (text, json)")

	cmd.AddCommand(typesCmd(flags))
	cmd.AddCommand(schemaCmd())
	cmd.AddCommand(initCmd())

	// Version command
	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s version %s (build: %s)\n", appName, Version, BuildTime)
		},
	})

	return cmd
}

func runValidate(args []string, flags *cliFlags) error {
	logger := setupLogging(flags.logLevel)

	cfg, reg, err := resolveConfig(flags, logger)
	if err != nil {
		return err
	}

	raw, err := readMessage(args)
	if err != nil {
		return fmt.Errorf("read commit message: %w", err)
	}

	msg, res := check(raw, reg, cfg)

	switch cfg.Format {
	case config.FormatJSON:
		if err := report.WriteJSON(os.Stdout, msg, res); err != nil {
			return err
		}
	default:
		if err := report.WriteText(os.Stdout, res); err != nil {
			return err
		}
	}

	if code := report.ExitCode(res, cfg.NoExit); code != report.ExitSuccess {
		os.Exit(code)
	}
	return nil
}

// check tokenizes and validates one message. Tokenization failures become a
// single malformed-header violation so they follow the same exit policy as
// any other violation.
func check(raw string, reg *registry.Registry, cfg *config.Config) (*message.Message, validate.Result) {
	msg, err := message.Parse(raw)
	if err != nil {
		return nil, validate.Malformed()
	}
	return msg, validate.Run(msg, reg, validate.Options{
		IgnoreCase: cfg.IgnoreCase,
		Scopes:     cfg.Scopes,
	})
}

// resolveConfig layers CLI flags over the loaded config and builds the
// registry: an inline --types spec replaces the config-file type table
// wholesale.
func resolveConfig(flags *cliFlags, logger *slog.Logger) (*config.Config, *registry.Registry, error) {
	cfg, err := config.NewLoader(logger).Load(flags.configPath)
	if err != nil {
		return nil, nil, err
	}

	if flags.ignoreCase {
		cfg.IgnoreCase = true
	}
	if flags.noExit {
		cfg.NoExit = true
	}
	if flags.format != "" {
		cfg.Format = flags.format
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	var reg *registry.Registry
	if flags.typesSpec != "" {
		reg, err = registry.ParseSpec(flags.typesSpec)
	} else {
		reg, err = cfg.Registry()
	}
	if err != nil {
		return nil, nil, err
	}
	return cfg, reg, nil
}

// readMessage reads the commit message from the file argument if given,
// otherwise from stdin.
func readMessage(args []string) (string, error) {
	if len(args) == 1 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func setupLogging(logLevel string) *slog.Logger {
	level := slog.LevelWarn
	switch strings.ToLower(logLevel) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "error":
		level = slog.LevelError
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger
}
