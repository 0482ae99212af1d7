package resolve

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-logr/logr"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"k8s.io/utils/clock"
	"k8s.io/utils/ptr"

	"github.com/ibatun/ibatun-tools/pkg/temporal/client/types"
	"github.com/ibatun/ibatun-tools/pkg/temporal/timeparse"
)

const (
	DefaultConcurrency = 4
	MaxConcurrency     = 64
)

var ErrNoExpressions = errors.New("no expressions given")

func DefaultOptions() *RawOptions {
	return &RawOptions{
		Concurrency: DefaultConcurrency,
	}
}

func (opts *RawOptions) BindOptions(cmd *cobra.Command) error {
	cmd.Flags().IntVarP(&opts.Concurrency, "concurrency", "c", opts.Concurrency, "Number of expressions to resolve in parallel.")
	cmd.Flags().BoolVar(&opts.FailFast, "fail-fast", opts.FailFast, "Stop at the first expression that does not resolve.")

	cmd.Flags().FuncP("now", "n", "Reference time to resolve against (e.g. 2026-02-11T15:00, 2026-02-11, or 1d back from now).", func(s string) error {
		ref, err := timeparse.ParseReference(s, time.Now())
		if err != nil {
			return fmt.Errorf("failed to parse reference time: %w", err)
		}
		opts.Reference = ptr.To(ref)
		return nil
	})
	return nil
}

type RawOptions struct {
	// Reference pins "now" for every expression in the batch. Nil follows
	// the wall clock.
	Reference   *timeparse.DateTime
	Concurrency int
	FailFast    bool
}

// validatedOptions is a private wrapper that enforces a call of Validate() before Complete() can be invoked.
type validatedOptions struct {
	*RawOptions
}

type ValidatedOptions struct {
	// Embed a private pointer that cannot be instantiated outside of this package.
	*validatedOptions
}

// completedOptions is a private wrapper that enforces a call of Complete() before resolution can be invoked.
type completedOptions struct {
	Clock       clock.PassiveClock
	Concurrency int
	FailFast    bool
}

type Options struct {
	// Embed a private pointer that cannot be instantiated outside of this package.
	*completedOptions
}

func (o *RawOptions) Validate() (*ValidatedOptions, error) {
	if o.Concurrency < 1 || o.Concurrency > MaxConcurrency {
		return nil, fmt.Errorf("concurrency must be between 1 and %d, got %d", MaxConcurrency, o.Concurrency)
	}

	return &ValidatedOptions{
		validatedOptions: &validatedOptions{
			RawOptions: o,
		},
	}, nil
}

func (o *ValidatedOptions) Complete() (*Options, error) {
	var c clock.PassiveClock = clock.RealClock{}
	if o.Reference != nil {
		c = fixedClock{now: o.Reference.Time()}
	}

	return &Options{
		completedOptions: &completedOptions{
			Clock:       c,
			Concurrency: o.Concurrency,
			FailFast:    o.FailFast,
		},
	}, nil
}

// fixedClock holds the engine at an operator supplied reference time.
type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }
func (c fixedClock) Since(t time.Time) time.Duration { return c.now.Sub(t) }

// ResolveFunc turns one input into a resolution using engine.
type ResolveFunc func(engine *timeparse.Engine, input string) (*types.Resolution, error)

// ResolveExpressions resolves every input as a free-form date/time expression.
func (opts *Options) ResolveExpressions(ctx context.Context, inputs []string) (*types.ResolutionList, error) {
	return opts.Each(ctx, inputs, ResolveExpression)
}

// ResolveExpression parses input with engine and fills in its display forms.
func ResolveExpression(engine *timeparse.Engine, input string) (*types.Resolution, error) {
	value, rule, err := engine.ParseRule(input)
	if err != nil {
		return nil, err
	}
	res := types.NewResolution(input, value, rule)
	res.Display = engine.Format(value)
	res.Relative = timeparse.FormatRelative(value, engine.Now())
	return res, nil
}

// Each applies fn to every input with one shared engine, up to Concurrency
// at a time. Items keep the order of inputs. Unless FailFast is set, an
// input that fails is recorded on its item and the batch continues.
func (opts *Options) Each(ctx context.Context, inputs []string, fn ResolveFunc) (*types.ResolutionList, error) {
	logger, err := logr.FromContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get logger: %w", err)
	}

	if len(inputs) == 0 {
		return nil, ErrNoExpressions
	}

	engine := timeparse.New(timeparse.WithClock(opts.Clock), timeparse.WithLogger(logger))
	list := &types.ResolutionList{
		Reference: engine.Now(),
		Items:     make([]*types.Resolution, len(inputs)),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Concurrency)
	for i, input := range inputs {
		i, input := i, input
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := fn(engine, input)
			if err != nil {
				if opts.FailFast {
					return err
				}
				logger.Error(err, "failed to resolve", "input", input)
				res = types.NewFailedResolution(input, err)
			}
			list.Items[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	logger.V(1).Info("resolved batch", "count", len(inputs), "failures", list.Failures())
	return list, nil
}
