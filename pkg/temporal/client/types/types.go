package types

import (
	"fmt"

	"github.com/stoewer/go-strcase"
	"k8s.io/utils/ptr"

	"github.com/ibatun/ibatun-tools/pkg/temporal/timeparse"
)

// RuleID is the external identifier of a grammar rule, e.g. "month-day-year".
func RuleID(name string) string {
	return strcase.KebabCase(name)
}

// Resolution records how one expression was resolved
type Resolution struct {
	Input    string              `json:"input" yaml:"input"`
	Value    *timeparse.DateTime `json:"value,omitempty" yaml:"value,omitempty"`
	Rule     string              `json:"rule,omitempty" yaml:"rule,omitempty"`
	Display  string              `json:"display,omitempty" yaml:"display,omitempty"`
	Relative string              `json:"relative,omitempty" yaml:"relative,omitempty"`
	Error    string              `json:"error,omitempty" yaml:"error,omitempty"`
}

func NewResolution(input string, value timeparse.DateTime, rule string) *Resolution {
	return &Resolution{
		Input: input,
		Value: ptr.To(value),
		Rule:  RuleID(rule),
	}
}

func NewFailedResolution(input string, err error) *Resolution {
	return &Resolution{
		Input: input,
		Error: err.Error(),
	}
}

func (r *Resolution) Failed() bool {
	return r.Error != ""
}

func (r Resolution) String() string {
	if r.Failed() {
		return fmt.Sprintf("%s: %s", r.Input, r.Error)
	}
	return fmt.Sprintf("%s -> %s (%s)", r.Input, r.Value, r.Rule)
}

func (r *Resolution) UnmarshalYAML(unmarshal func(any) error) error {
	// older fixture files used text/when/grammar
	var fileData struct {
		Input    string              `yaml:"input"`
		Text     string              `yaml:"text"`
		Value    *timeparse.DateTime `yaml:"value"`
		When     *timeparse.DateTime `yaml:"when"`
		Rule     string              `yaml:"rule"`
		Grammar  string              `yaml:"grammar"`
		Display  string              `yaml:"display"`
		Relative string              `yaml:"relative"`
		Error    string              `yaml:"error"`
	}

	if err := unmarshal(&fileData); err != nil {
		return err
	}

	*r = Resolution{
		Input:    firstNonEmpty(fileData.Input, fileData.Text),
		Value:    fileData.Value,
		Rule:     firstNonEmpty(fileData.Rule, fileData.Grammar),
		Display:  fileData.Display,
		Relative: fileData.Relative,
		Error:    fileData.Error,
	}
	if r.Value == nil {
		r.Value = fileData.When
	}
	if r.Rule != "" {
		r.Rule = RuleID(r.Rule)
	}

	return nil
}

// ResolutionList is a batch of resolutions made against one reference time.
type ResolutionList struct {
	Reference timeparse.DateTime `json:"reference" yaml:"reference"`
	Items     []*Resolution      `json:"items" yaml:"items"`
}

// Failures counts the items that did not resolve.
func (l *ResolutionList) Failures() int {
	n := 0
	for _, item := range l.Items {
		if item.Failed() {
			n++
		}
	}
	return n
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
