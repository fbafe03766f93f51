package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/goliatone/go-rowsummary/internal/logging"
	"github.com/goliatone/go-rowsummary/pkg/grouping"
	"github.com/goliatone/go-rowsummary/pkg/inputrow"
	"github.com/goliatone/go-rowsummary/pkg/schema"
	"github.com/goliatone/go-rowsummary/pkg/schema/openapi"
)

const envPrefix = "rowsummary"

const (
	flagSettings = "settings"
	flagConfig   = "config"
	flagOpenAPI  = "openapi"
	flagGrouping = "grouping"
	flagService  = "service"
	flagRecord   = "record"
	flagColspan  = "colspan"
	flagSanitize = "sanitize"
	flagMarkup   = "markup"
	flagTemplate = "templates"
	flagOutput   = "output"
	flagLogLevel = "log-level"
	flagLogFmt   = "log-format"
)

// app carries the state shared by every subcommand.
type app struct {
	v      *viper.Viper
	in     io.Reader
	out    io.Writer
	errOut io.Writer
	logger zerolog.Logger

	// prompt picks a service when none is given; isTerminal reports whether
	// prompting is possible. Both are replaced in tests.
	prompt     func(ctx context.Context, services []string) (string, error)
	isTerminal func() bool
}

// serviceLister is implemented by accessors that can enumerate services.
type serviceLister interface {
	schema.Accessor
	Services() []string
}

func newRootCmd(in io.Reader, out, errOut io.Writer) *cobra.Command {
	a := &app{
		v:      viper.New(),
		in:     in,
		out:    out,
		errOut: errOut,
		logger: zerolog.Nop(),
	}
	a.prompt = a.surveyPrompt
	a.isTerminal = a.interactive

	root := &cobra.Command{
		Use:           "rowsummary",
		Short:         "Render input row detail summaries from a globalConfig",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)

	flags := root.PersistentFlags()
	flags.String(flagSettings, "", "Path to a YAML/JSON file with default flag values.")
	flags.String(flagConfig, "globalConfig.json", "Path to the globalConfig document.")
	flags.String(flagOpenAPI, "", "Path to an OpenAPI document used instead of --config.")
	flags.String(flagGrouping, "", "Path to a grouping table merged over the built-in one.")
	flags.String(flagLogLevel, "warn", "Log level (debug, info, warn, error).")
	flags.String(flagLogFmt, "", "Log format (console or json). Defaults by terminal detection.")

	root.AddCommand(newServicesCmd(a), newRenderCmd(a), newSummarizeCmd(a))
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	a.v.SetEnvPrefix(envPrefix)
	a.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	a.v.AutomaticEnv()

	if err := a.v.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("bind flags: %w", err)
	}

	if path := strings.TrimSpace(a.v.GetString(flagSettings)); path != "" {
		a.v.SetConfigFile(path)
		if err := a.v.ReadInConfig(); err != nil {
			return fmt.Errorf("read settings %q: %w", path, err)
		}
	}

	logger, err := logging.New(logging.Config{
		Level:  a.v.GetString(flagLogLevel),
		Format: a.v.GetString(flagLogFmt),
	}, a.errOut)
	if err != nil {
		return err
	}
	a.logger = logging.WithComponent(logger, cmd.Name())
	return nil
}

// accessor loads the OpenAPI document when one is configured and the
// globalConfig otherwise.
func (a *app) accessor(ctx context.Context) (serviceLister, error) {
	if path := strings.TrimSpace(a.v.GetString(flagOpenAPI)); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read openapi document: %w", err)
		}
		acc, err := openapi.Load(ctx, data)
		if err != nil {
			return nil, err
		}
		a.logger.Debug().Str("source", path).Msg("loaded openapi document")
		return acc, nil
	}

	path := strings.TrimSpace(a.v.GetString(flagConfig))
	if path == "" {
		return nil, errors.New("either --config or --openapi is required")
	}
	cfg, err := schema.LoadFile(path)
	if err != nil {
		return nil, err
	}
	a.logger.Debug().Str("source", path).Int("services", len(cfg.Services())).Msg("loaded globalConfig")
	return cfg, nil
}

func (a *app) groupingTable() (grouping.Table, error) {
	table := grouping.DefaultTable()
	path := strings.TrimSpace(a.v.GetString(flagGrouping))
	if path == "" {
		return table, nil
	}
	overrides, err := grouping.LoadFile(path)
	if err != nil {
		return nil, err
	}
	a.logger.Debug().Str("source", path).Strs("services", overrides.Services()).Msg("merged grouping overrides")
	return grouping.Merge(table, overrides), nil
}

func (a *app) service(ctx context.Context, services []string) (string, error) {
	if name := strings.TrimSpace(a.v.GetString(flagService)); name != "" {
		return name, nil
	}
	if !a.isTerminal() {
		return "", errors.New("--service is required when not running in a terminal")
	}
	if len(services) == 0 {
		return "", errors.New("no services available to choose from")
	}
	return a.prompt(ctx, services)
}

func (a *app) interactive() bool {
	f, ok := a.in.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func (a *app) surveyPrompt(ctx context.Context, services []string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var out string
	prompt := &survey.Select{
		Message: "Service:",
		Options: services,
	}
	if err := survey.AskOne(prompt, &out); err != nil {
		if errors.Is(err, terminal.InterruptErr) {
			return "", context.Canceled
		}
		return "", err
	}
	return out, nil
}

func (a *app) record() (inputrow.Record, error) {
	path := strings.TrimSpace(a.v.GetString(flagRecord))
	if path == "" {
		return nil, errors.New("--record is required")
	}

	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(a.in)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read record: %w", err)
	}
	return inputrow.DecodeRecord(data)
}

func (a *app) write(payload string) error {
	path := strings.TrimSpace(a.v.GetString(flagOutput))
	if path == "" {
		_, err := io.WriteString(a.out, payload)
		return err
	}
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	a.logger.Info().Str("path", path).Msg("output written")
	return nil
}
