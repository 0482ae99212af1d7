package display

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ibatun/ibatun-tools/pkg/temporal/client/resolve"
	"github.com/ibatun/ibatun-tools/pkg/temporal/client/types"
	"github.com/ibatun/ibatun-tools/pkg/temporal/timeparse"
)

// RuleDisplay tags records produced by rendering a canonical value.
const RuleDisplay = "Display"

func DefaultOptions() *RawOptions {
	return &RawOptions{
		RawOptions: resolve.DefaultOptions(),
		Relative:   true,
	}
}

func (opts *RawOptions) BindOptions(cmd *cobra.Command) error {
	if err := opts.RawOptions.BindOptions(cmd); err != nil {
		return fmt.Errorf("failed to bind resolve options: %w", err)
	}

	cmd.Flags().BoolVar(&opts.Relative, "relative", opts.Relative, "Also describe each value relative to the reference time.")
	return nil
}

type RawOptions struct {
	*resolve.RawOptions
	Relative bool
}

// validatedOptions enforces a call to Validate before Complete can be invoked.
type validatedOptions struct {
	*RawOptions
	resolver *resolve.ValidatedOptions
}

type ValidatedOptions struct {
	*validatedOptions
}

type Options struct {
	Resolver *resolve.Options
	Relative bool
}

func (o *RawOptions) Validate() (*ValidatedOptions, error) {
	if o.RawOptions == nil {
		return nil, fmt.Errorf("resolve options must not be nil")
	}

	resolver, err := o.RawOptions.Validate()
	if err != nil {
		return nil, err
	}

	return &ValidatedOptions{
		validatedOptions: &validatedOptions{
			RawOptions: o,
			resolver:   resolver,
		},
	}, nil
}

func (v *ValidatedOptions) Complete() (*Options, error) {
	resolver, err := v.resolver.Complete()
	if err != nil {
		return nil, fmt.Errorf("failed to complete resolve options: %w", err)
	}

	return &Options{
		Resolver: resolver,
		Relative: v.Relative,
	}, nil
}

// Render formats every canonical ISO value for display against the
// reference time. Loose expressions are not accepted here: a value that is
// not ISO is recorded as failed, or aborts the batch under fail-fast.
func (o *Options) Render(ctx context.Context, values []string) (*types.ResolutionList, error) {
	return o.Resolver.Each(ctx, values, o.render)
}

func (o *Options) render(engine *timeparse.Engine, input string) (*types.Resolution, error) {
	value, err := timeparse.ParseISO(input)
	if err != nil {
		return nil, err
	}

	res := types.NewResolution(input, value, RuleDisplay)
	res.Display = engine.Format(value)
	if o.Relative {
		res.Relative = timeparse.FormatRelative(value, engine.Now())
	}
	return res, nil
}
