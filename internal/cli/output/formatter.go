// Package output renders command results for the terminal.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/mcp-assist/customtools/internal/cli/errors"
	"github.com/mcp-assist/customtools/internal/domain/customtools"
	"github.com/mcp-assist/customtools/internal/domain/registry"
	"github.com/mcp-assist/customtools/internal/logger"
)

type OutputFormat string

const (
	FormatText     OutputFormat = "text"
	FormatJSON     OutputFormat = "json"
	FormatRaw      OutputFormat = "raw"
	FormatMarkdown OutputFormat = "markdown"
)

type Formatter struct {
	w      io.Writer
	format OutputFormat
	color  bool
}

func NewFormatter(w io.Writer, format OutputFormat, useColor bool) *Formatter {
	return &Formatter{
		w:      w,
		format: format,
		color:  useColor,
	}
}

func (f *Formatter) FormatResult(result *CallResult) string {
	switch f.format {
	case FormatJSON:
		s, _ := result.JSON()
		return s
	case FormatMarkdown:
		return result.Markdown()
	case FormatRaw:
		if s, ok := result.Result.(string); ok {
			return s
		}
		data, _ := json.Marshal(result.Result)
		return string(data)
	}
	return result.Text()
}

func (f *Formatter) FormatError(err errors.ClassifiedError) string {
	if f.format == FormatJSON {
		data, _ := json.MarshalIndent(err, "", "  ")
		return string(data)
	}

	var msg string
	if f.color {
		msg = color.RedString("Error [%s]: %s", err.Kind, err.Message)
		if err.Hint != "" {
			msg += "\n" + color.YellowString("Hint: %s", err.Hint)
		}
	} else {
		msg = fmt.Sprintf("Error [%s]: %s", err.Kind, err.Message)
		if err.Hint != "" {
			msg += "\nHint: " + err.Hint
		}
	}
	return msg
}

// FormatTools writes the tool list. withParams adds a parameter column,
// required parameters marked with '*'.
func (f *Formatter) FormatTools(tools []registry.Tool, withParams bool) error {
	if f.format == FormatJSON {
		data, err := json.MarshalIndent(tools, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(f.w, string(data))
		return err
	}
	if len(tools) == 0 {
		_, err := fmt.Fprintln(f.w, "No custom tools enabled.")
		return err
	}

	header := []string{"Name", "Description"}
	if withParams {
		header = append(header, "Parameters")
	}
	table := tablewriter.NewTable(f.w, tablewriter.WithHeader(header))
	for _, t := range tools {
		row := []string{t.Name, t.Description}
		if withParams {
			row = append(row, parameters(t))
		}
		table.Append(row)
	}
	return table.Render()
}

func parameters(t registry.Tool) string {
	if t.InputSchema == nil {
		return ""
	}
	required := make(map[string]bool, len(t.InputSchema.Required))
	for _, r := range t.InputSchema.Required {
		required[r] = true
	}
	names := make([]string, 0, len(t.InputSchema.Properties))
	for name := range t.InputSchema.Properties {
		if required[name] {
			name += "*"
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}

// PluginStatus is one row of the status report.
type PluginStatus struct {
	ID     string `json:"id"`
	Loaded bool   `json:"loaded"`
	Error  string `json:"error,omitempty"`
	Hint   string `json:"hint,omitempty"`
}

// Status summarizes a loader run.
type Status struct {
	ConfigPath string         `json:"config_path"`
	Plugins    []PluginStatus `json:"plugins"`
	Tools      []string       `json:"tools"`
}

// NewStatus builds the report from initialization results.
func NewStatus(configPath string, results []customtools.PluginResult, tools []registry.Tool) Status {
	s := Status{ConfigPath: configPath, Plugins: []PluginStatus{}, Tools: []string{}}
	for _, r := range results {
		ps := PluginStatus{ID: r.ID, Loaded: r.OK()}
		if !r.OK() {
			classified := errors.Classify(r.Err)
			ps.Error = classified.Message
			ps.Hint = classified.Hint
		}
		s.Plugins = append(s.Plugins, ps)
	}
	for _, t := range tools {
		s.Tools = append(s.Tools, t.Name)
	}
	return s
}

func (f *Formatter) FormatStatus(s Status) error {
	if f.format == FormatJSON {
		data, err := json.MarshalIndent(s, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(f.w, string(data))
		return err
	}

	fmt.Fprintf(f.w, "Config: %s\n", s.ConfigPath)
	if len(s.Plugins) == 0 {
		_, err := fmt.Fprintln(f.w, "No custom tools enabled.")
		return err
	}

	table := tablewriter.NewTable(f.w, tablewriter.WithHeader([]string{"Plugin", "Status", "Hint"}))
	for _, p := range s.Plugins {
		state := "loaded"
		if !p.Loaded {
			state = "failed: " + p.Error
		}
		if f.color {
			if p.Loaded {
				state = color.GreenString(state)
			} else {
				state = color.RedString(state)
			}
		}
		table.Append([]string{p.ID, state, p.Hint})
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(f.w, "Tools: %s\n", strings.Join(s.Tools, ", "))
	return err
}

func (f *Formatter) FormatLogs(entries []logger.LogEntry) error {
	if f.format == FormatJSON {
		if entries == nil {
			entries = []logger.LogEntry{}
		}
		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(f.w, string(data))
		return err
	}

	for _, e := range entries {
		level := e.Level
		if f.color {
			switch e.Level {
			case logger.LevelError:
				level = color.RedString(level)
			case logger.LevelWarn:
				level = color.YellowString(level)
			}
		}
		if _, err := fmt.Fprintf(f.w, "%s %s %s\n", e.Timestamp, level, e.Message); err != nil {
			return err
		}
	}
	return nil
}
