package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/go-logr/logr"
	"github.com/spf13/cobra"

	"github.com/ibatun/ibatun-tools/pkg/temporal/client/display"
	"github.com/ibatun/ibatun-tools/pkg/temporal/client/resolve"
	"github.com/ibatun/ibatun-tools/pkg/temporal/client/types"
	"github.com/ibatun/ibatun-tools/pkg/temporal/output"
)

type rootOptions struct {
	Output    string
	Verbosity int

	format output.Format
}

func NewRootCommand() (*cobra.Command, error) {
	opts := &rootOptions{Output: string(output.FormatHuman)}

	cmd := &cobra.Command{
		Use:          "ibatun-time",
		Short:        "Resolve loose date/time expressions against a reference time",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Resolve expressions against the wall clock
  ibatun-time parse mon "feb 18 6pm" 2027-Jan-06

  # Pin the reference time and print JSON
  ibatun-time parse -o json --now 2026-02-11T15:00 2pm

  # Render canonical values for display
  ibatun-time format 2026-02-11T18:30 2027-01-06
`),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			format, err := output.ParseFormat(opts.Output)
			if err != nil {
				return err
			}
			opts.format = format

			handler := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.Level(-opts.Verbosity)})
			cmd.SetContext(logr.NewContext(cmd.Context(), logr.FromSlogHandler(handler)))
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.Output, "output", "o", opts.Output, "Output format (human|json|yaml).")
	cmd.PersistentFlags().IntVarP(&opts.Verbosity, "verbosity", "v", 0, "Log verbosity; 1 logs which rule matched each expression.")

	parseCmd, err := newParseCommand(opts)
	if err != nil {
		return nil, err
	}
	formatCmd, err := newFormatCommand(opts)
	if err != nil {
		return nil, err
	}
	cmd.AddCommand(parseCmd, formatCmd)

	return cmd, nil
}

func newParseCommand(root *rootOptions) (*cobra.Command, error) {
	opts := resolve.DefaultOptions()
	cmd := &cobra.Command{
		Use:   "parse [flags] <expression>...",
		Short: "Resolve each expression to a canonical date/time",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd.Context(), cmd, opts, root.format, args)
		},
	}
	if err := opts.BindOptions(cmd); err != nil {
		return nil, fmt.Errorf("failed to bind parse options: %w", err)
	}
	return cmd, nil
}

func runParse(ctx context.Context, cmd *cobra.Command, raw *resolve.RawOptions, format output.Format, args []string) error {
	validated, err := raw.Validate()
	if err != nil {
		return err
	}
	opts, err := validated.Complete()
	if err != nil {
		return err
	}

	list, err := opts.ResolveExpressions(ctx, args)
	if err != nil {
		return err
	}
	return writeList(cmd, list, format)
}

func newFormatCommand(root *rootOptions) (*cobra.Command, error) {
	opts := display.DefaultOptions()
	cmd := &cobra.Command{
		Use:   "format [flags] <iso-value>...",
		Short: "Render canonical ISO date/times for display",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFormat(cmd.Context(), cmd, opts, root.format, args)
		},
	}
	if err := opts.BindOptions(cmd); err != nil {
		return nil, fmt.Errorf("failed to bind format options: %w", err)
	}
	return cmd, nil
}

func runFormat(ctx context.Context, cmd *cobra.Command, raw *display.RawOptions, format output.Format, args []string) error {
	validated, err := raw.Validate()
	if err != nil {
		return err
	}
	opts, err := validated.Complete()
	if err != nil {
		return err
	}

	list, err := opts.Render(ctx, args)
	if err != nil {
		return err
	}
	return writeList(cmd, list, format)
}

// writeList prints list and fails the command when any item did not resolve.
func writeList(cmd *cobra.Command, list *types.ResolutionList, format output.Format) error {
	out, err := output.FormatOutput(list, format)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(cmd.OutOrStdout(), out); err != nil {
		return err
	}
	if n := list.Failures(); n > 0 {
		return fmt.Errorf("%d of %d expression(s) did not resolve", n, len(list.Items))
	}
	return nil
}
