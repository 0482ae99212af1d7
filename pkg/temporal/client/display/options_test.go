package display

import (
	"context"
	"testing"
	"time"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/testr"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/utils/ptr"

	"github.com/ibatun/ibatun-tools/pkg/temporal/timeparse"
)

func completed(t *testing.T, raw *RawOptions) *Options {
	t.Helper()
	validated, err := raw.Validate()
	require.NoError(t, err)
	opts, err := validated.Complete()
	require.NoError(t, err)
	return opts
}

func TestOptions_Render(t *testing.T) {
	raw := DefaultOptions()
	cmd := &cobra.Command{Use: "format"}
	require.NoError(t, raw.BindOptions(cmd))
	require.NoError(t, cmd.ParseFlags([]string{"--now", "2026-02-11T15:00"}))

	opts := completed(t, raw)
	ctx := logr.NewContext(context.Background(), testr.New(t))

	list, err := opts.Render(ctx, []string{
		"2026-02-11T18:30:00",
		"2026-02-18",
		"2027-01-06T12:15:00+02:00",
		"mon",
	})
	require.NoError(t, err)
	require.Len(t, list.Items, 4)

	assert.True(t, list.Reference.Equal(timeparse.Date(2026, time.February, 11, 15, 0, 0)))

	assert.Equal(t, "18:30", list.Items[0].Display)
	assert.Equal(t, "in 3 hours", list.Items[0].Relative)
	assert.Equal(t, "display", list.Items[0].Rule)

	assert.Equal(t, "Feb 18", list.Items[1].Display)
	assert.Equal(t, "in 6 days", list.Items[1].Relative)

	assert.Equal(t, "Jan 6, 2027 at 12:15", list.Items[2].Display)
	assert.Equal(t, "2027-01-06T12:15:00", list.Items[2].Value.String())

	assert.True(t, list.Items[3].Failed())
	assert.Equal(t, "Invalid date/time: mon", list.Items[3].Error)
}

func TestOptions_RenderWithoutRelative(t *testing.T) {
	raw := DefaultOptions()
	raw.Reference = ptr.To(timeparse.Date(2026, time.February, 11, 15, 0, 0))
	raw.Relative = false

	opts := completed(t, raw)
	ctx := logr.NewContext(context.Background(), logr.Discard())

	list, err := opts.Render(ctx, []string{"2025-12-31T23:59"})
	require.NoError(t, err)
	assert.Equal(t, "Dec 31, 2025 at 23:59", list.Items[0].Display)
	assert.Empty(t, list.Items[0].Relative)
}

func TestOptions_RenderFailFast(t *testing.T) {
	raw := DefaultOptions()
	raw.Reference = ptr.To(timeparse.Date(2026, time.February, 11, 15, 0, 0))
	raw.FailFast = true

	opts := completed(t, raw)
	ctx := logr.NewContext(context.Background(), logr.Discard())

	_, err := opts.Render(ctx, []string{"2026-02-18", "feb 18"})
	assert.ErrorIs(t, err, timeparse.ErrInvalidExpression)
}

func TestRawOptions_Validate(t *testing.T) {
	_, err := (&RawOptions{}).Validate()
	assert.EqualError(t, err, "resolve options must not be nil")

	raw := DefaultOptions()
	raw.Concurrency = 0
	_, err = raw.Validate()
	assert.Error(t, err)
}
