package output

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ibatun/ibatun-tools/pkg/temporal/client/types"
)

type Format string

const (
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
	FormatHuman Format = "human"
)

// Formats lists the accepted values of the output flag.
var Formats = []Format{FormatHuman, FormatJSON, FormatYAML}

// ParseFormat checks s against the known formats.
func ParseFormat(s string) (Format, error) {
	for _, f := range Formats {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("invalid output format: %s (expected one of human, json, yaml)", s)
}

func FormatOutput(list *types.ResolutionList, outputFormat Format) (string, error) {
	switch outputFormat {
	case FormatJSON:
		jsonBytes, err := json.MarshalIndent(list, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to format results: %w", err)
		}
		return string(jsonBytes) + "\n", nil

	case FormatYAML:
		yamlBytes, err := yaml.Marshal(list)
		if err != nil {
			return "", fmt.Errorf("failed to format results: %w", err)
		}
		return string(yamlBytes), nil

	case FormatHuman:
		var b strings.Builder
		fmt.Fprintf(&b, "Resolved %d expression(s) against %s:\n\n", len(list.Items), list.Reference)
		for i, item := range list.Items {
			if item.Failed() {
				fmt.Fprintf(&b, "%d. %q did not resolve\n", i+1, item.Input)
				fmt.Fprintf(&b, "   Error: %s\n", item.Error)
				fmt.Fprintln(&b)
				continue
			}

			fmt.Fprintf(&b, "%d. %q is %s", i+1, item.Input, item.Display)
			if item.Relative != "" {
				fmt.Fprintf(&b, " (%s)", item.Relative)
			}
			fmt.Fprintln(&b)
			fmt.Fprintf(&b, "   Value: %s\n", item.Value)
			fmt.Fprintf(&b, "   Rule: %s\n", item.Rule)
			fmt.Fprintln(&b)
		}
		if n := list.Failures(); n > 0 {
			fmt.Fprintf(&b, "%d of %d expression(s) failed.\n", n, len(list.Items))
		}
		return b.String(), nil
	default:
		return "", fmt.Errorf("invalid output format: %s", outputFormat)
	}
}
