// Package cli provides output formatting shared by the rulebridge commands.
package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"

	"github.com/TimurManjosov/rulebridge/internal/catalog"
	"github.com/TimurManjosov/rulebridge/internal/pipeline"
)

// OutputFormat specifies the output format for CLI commands
type OutputFormat string

const (
	FormatTable OutputFormat = "table"
	FormatJSON  OutputFormat = "json"
	FormatYAML  OutputFormat = "yaml"
)

// sourceView is the serializable form of a catalog source.
type sourceView struct {
	Name     string `json:"name" yaml:"name"`
	Behavior string `json:"behavior" yaml:"behavior"`
	URL      string `json:"url" yaml:"url"`
	Path     string `json:"path" yaml:"path"`
}

// resultView is the serializable form of a pipeline result.
type resultView struct {
	Source   string `json:"source" yaml:"source"`
	Status   string `json:"status" yaml:"status"`
	Rules    int    `json:"rules" yaml:"rules"`
	RawBytes int    `json:"raw_bytes" yaml:"raw_bytes"`
	Checksum string `json:"checksum,omitempty" yaml:"checksum,omitempty"`
	Duration string `json:"duration" yaml:"duration"`
	Detail   string `json:"detail,omitempty" yaml:"detail,omitempty"`
}

// PrintSources outputs the catalog in the specified format.
func PrintSources(sources []catalog.Source, format OutputFormat) error {
	views := make([]sourceView, 0, len(sources))
	for _, src := range sources {
		views = append(views, sourceView{
			Name:     src.Name,
			Behavior: string(src.Behavior),
			URL:      src.URL,
			Path:     src.Path,
		})
	}

	switch format {
	case FormatJSON:
		return printJSON(map[string][]sourceView{"sources": views})
	case FormatYAML:
		return printYAML(views)
	case FormatTable:
		return printSourceTable(views)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

// PrintSummary outputs per-source run results in the specified format.
func PrintSummary(results []pipeline.Result, format OutputFormat) error {
	views := make([]resultView, 0, len(results))
	for _, res := range results {
		view := resultView{
			Source:   res.Source.Name,
			Status:   string(res.Status),
			Rules:    res.Rules,
			RawBytes: res.RawBytes,
			Checksum: res.Checksum,
			Duration: res.Duration.Round(time.Millisecond).String(),
		}
		if res.Err != nil {
			view.Detail = res.Err.Error()
		}
		views = append(views, view)
	}

	switch format {
	case FormatJSON:
		return printJSON(map[string][]resultView{"results": views})
	case FormatYAML:
		return printYAML(views)
	case FormatTable:
		return printSummaryTable(views)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

func printJSON(data interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

func printYAML(data interface{}) error {
	encoder := yaml.NewEncoder(os.Stdout)
	defer encoder.Close()
	encoder.SetIndent(2)
	return encoder.Encode(data)
}

func printSourceTable(views []sourceView) error {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Name", "Behavior", "URL", "Path")

	for _, v := range views {
		url := v.URL
		if len(url) > 60 {
			url = url[:57] + "..."
		}
		table.Append(v.Name, v.Behavior, url, v.Path)
	}

	return table.Render()
}

func printSummaryTable(views []resultView) error {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Source", "Status", "Rules", "Bytes", "Duration", "Detail")

	for _, v := range views {
		detail := v.Detail
		if len(detail) > 48 {
			detail = detail[:45] + "..."
		}
		table.Append(
			v.Source,
			v.Status,
			fmt.Sprintf("%d", v.Rules),
			fmt.Sprintf("%d", v.RawBytes),
			v.Duration,
			detail,
		)
	}

	return table.Render()
}
