package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	rowsummary "github.com/goliatone/go-rowsummary"
	"github.com/goliatone/go-rowsummary/pkg/inputrow"
	"github.com/goliatone/go-rowsummary/pkg/render"
	"github.com/goliatone/go-rowsummary/pkg/renderers/deflist"
)

func addRecordFlags(cmd *cobra.Command) {
	cmd.Flags().StringP(flagService, "s", "", "Service name. Prompts when omitted on a terminal.")
	cmd.Flags().StringP(flagRecord, "r", "", "Path to the JSON record, or - for stdin.")
	cmd.Flags().StringP(flagOutput, "o", "", "Output file (stdout if empty).")
}

func newRenderCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the detail row markup for a record",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runRender(cmd.Context())
		},
	}
	addRecordFlags(cmd)
	cmd.Flags().Int(flagColspan, deflist.DefaultColumnSpan, "Column span of the detail cell.")
	cmd.Flags().String(flagMarkup, deflist.Name, "Registered markup renderer to use.")
	cmd.Flags().String(flagTemplate, "", "Directory with templates/row.tpl or templates/term.tpl overriding the embedded ones.")
	cmd.Flags().Bool(flagSanitize, false, "Filter the markup through the definition-list sanitizer policy.")
	return cmd
}

func newSummarizeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summarize",
		Short: "Print the term pairs for a record as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runSummarize(cmd.Context())
		},
	}
	addRecordFlags(cmd)
	return cmd
}

type job struct {
	service string
	record  inputrow.Record
	opts    []rowsummary.Option
	acc     serviceLister
}

func (a *app) prepare(ctx context.Context) (*job, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	acc, err := a.accessor(ctx)
	if err != nil {
		return nil, err
	}
	table, err := a.groupingTable()
	if err != nil {
		return nil, err
	}
	service, err := a.service(ctx, acc.Services())
	if err != nil {
		return nil, err
	}
	record, err := a.record()
	if err != nil {
		return nil, err
	}

	logger := a.logger.With().Str("service", service).Logger()
	return &job{
		service: service,
		record:  record,
		acc:     acc,
		opts: []rowsummary.Option{
			rowsummary.WithGroupingTable(table),
			rowsummary.WithLogger(logger),
		},
	}, nil
}

func (a *app) runRender(ctx context.Context) error {
	j, err := a.prepare(ctx)
	if err != nil {
		return err
	}

	markup, err := render.Default().New(a.v.GetString(flagMarkup), render.Options{
		ColumnSpan:   a.v.GetInt(flagColspan),
		TemplatesDir: a.v.GetString(flagTemplate),
	})
	if err != nil {
		return err
	}

	opts := append(j.opts,
		rowsummary.WithMarkup(markup),
		rowsummary.WithSanitizer(a.v.GetBool(flagSanitize)),
	)
	out, err := rowsummary.RenderHTML(j.acc, j.service, j.record, opts...)
	if err != nil && !errors.Is(err, inputrow.ErrGroupLengthMismatch) {
		return err
	}
	if writeErr := a.write(out + "\n"); writeErr != nil {
		return writeErr
	}
	return err
}

func (a *app) runSummarize(ctx context.Context) error {
	j, err := a.prepare(ctx)
	if err != nil {
		return err
	}

	pairs, err := rowsummary.Summarize(j.acc, j.service, j.record, j.opts...)
	if err != nil {
		return err
	}
	if pairs == nil {
		pairs = []rowsummary.TermPair{}
	}

	payload, err := json.MarshalIndent(pairs, "", "  ")
	if err != nil {
		return fmt.Errorf("encode term pairs: %w", err)
	}
	return a.write(string(payload) + "\n")
}
