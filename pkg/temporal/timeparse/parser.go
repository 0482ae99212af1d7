package timeparse

import (
	"strings"

	"github.com/go-logr/logr"
	"k8s.io/utils/clock"
)

// Engine parses loosely formatted date/time text and formats values for
// display. The reference "now" is read from its clock on every call and
// never cached, so a long-lived Engine follows the wall clock across day
// boundaries. An Engine holds no mutable state and is safe for concurrent use.
type Engine struct {
	clock  clock.PassiveClock
	logger logr.Logger
}

type Option func(*Engine)

// WithClock sets the source of the reference time.
func WithClock(c clock.PassiveClock) Option {
	return func(e *Engine) {
		e.clock = c
	}
}

// WithLogger sets the logger the winning grammar rule is reported to at V(1).
func WithLogger(logger logr.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

func New(opts ...Option) *Engine {
	e := &Engine{
		clock:  clock.RealClock{},
		logger: logr.Discard(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Now returns the engine's reference time with its zone dropped.
func (e *Engine) Now() DateTime {
	return FromTime(e.clock.Now())
}

// Parse resolves text against the current reference time.
func (e *Engine) Parse(text string) (DateTime, error) {
	value, _, err := e.ParseRule(text)
	return value, err
}

// ParseRule is Parse that also reports which rule accepted the text.
func (e *Engine) ParseRule(text string) (DateTime, string, error) {
	now := e.Now()
	value, name, err := parseAt(text, now)
	if err != nil {
		e.logger.V(1).Info("no rule matched", "text", text)
		return DateTime{}, "", err
	}
	e.logger.V(1).Info("rule matched", "text", text, "rule", name, "value", value.String(), "now", now.String())
	return value, name, nil
}

// Format renders value relative to the current reference time.
func (e *Engine) Format(value DateTime) string {
	return FormatAt(value, e.Now())
}

// Parse resolves text against the wall clock.
//
// Accepted forms, tried in this order:
//   - ISO 8601: "2026-02-18T10:15:30+08:00", "2026-02-18T10:15", "2026-02-18"
//   - weekday: "mon", "Tuesday", "thurs" (next such day, never today)
//   - clock time: "14:30", "2pm", "6:45 am" (next time the clock shows it)
//   - dates with a year: "2024-Mar-15 14:30", "2026Jan06", "Feb 18, 2026",
//     "18 Feb 2026", "18/2/2026", "18-2-2026"
//   - dates without a year: "Mar-15 14:30", "feb 18 6pm", "Feb 18"
func Parse(text string) (DateTime, error) {
	return New().Parse(text)
}

// ParseAt resolves text with now as the reference time.
func ParseAt(text string, now DateTime) (DateTime, error) {
	value, _, err := parseAt(text, now)
	return value, err
}

// ParseISO accepts only the ISO 8601 forms. It is the decoder for the
// canonical text form of DateTime.
func ParseISO(text string) (DateTime, error) {
	trimmed := strings.TrimSpace(text)
	for _, r := range isoRules {
		if value, ok := r.match(trimmed, DateTime{}); ok {
			return value, nil
		}
	}
	return DateTime{}, invalidExpression(text)
}

func parseAt(text string, now DateTime) (DateTime, string, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return DateTime{}, "", invalidExpression(text)
	}
	for _, r := range cascade {
		if value, ok := r.match(trimmed, now); ok {
			return value, r.name, nil
		}
	}
	return DateTime{}, "", invalidExpression(text)
}
