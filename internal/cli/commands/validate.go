package commands

import (
	"encoding/json"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mcp-assist/customtools/internal/domain/customtools"
)

var (
	strict bool
	quiet  bool
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the tool schemas of every loaded plugin",
	Long: `Validate runs the same schema checks the loader applies before exposing
tools, and also prints the warnings the loader ignores.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd.Context(), logConsole(cmd))
		if err != nil {
			return err
		}
		defer s.Close()

		results := s.loader.Validation()
		if jsonOutput {
			writeValidationJSON(cmd, results)
		} else {
			writeValidationText(cmd, results)
		}

		failed := 0
		for _, r := range results {
			if !r.Valid() || (strict && len(r.Result.Warnings) > 0) {
				failed++
			}
		}
		if failed > 0 {
			return fmt.Errorf("%d plugin(s) failed validation", failed)
		}
		return nil
	},
}

func writeValidationJSON(cmd *cobra.Command, results []customtools.PluginValidation) {
	type entry struct {
		customtools.PluginValidation
		Error string `json:"error,omitempty"`
	}
	out := struct {
		Results []entry `json:"results"`
		Summary struct {
			Total   int `json:"total"`
			Valid   int `json:"valid"`
			Invalid int `json:"invalid"`
		} `json:"summary"`
	}{Results: []entry{}}

	for _, r := range results {
		e := entry{PluginValidation: r}
		if r.Err != nil {
			e.Error = r.Err.Error()
		}
		out.Results = append(out.Results, e)
		out.Summary.Total++
		if r.Valid() {
			out.Summary.Valid++
		} else {
			out.Summary.Invalid++
		}
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	enc.Encode(out)
}

func writeValidationText(cmd *cobra.Command, results []customtools.PluginValidation) {
	w := cmd.OutOrStdout()
	validCount := 0
	invalidCount := 0

	for _, r := range results {
		if r.Valid() {
			validCount++
			if quiet && len(r.Result.Warnings) == 0 {
				continue
			}
			color.New(color.FgGreen).Fprintf(w, "✓ %s\n", r.ID)
		} else {
			invalidCount++
			color.New(color.FgRed).Fprintf(w, "✗ %s\n", r.ID)
		}

		if r.Err != nil {
			fmt.Fprintf(w, "  ERROR: %v\n", r.Err)
			continue
		}
		for _, e := range r.Result.Errors {
			fmt.Fprintf(w, "  ERROR: %s: %s\n", e.Field, e.Message)
		}
		if !quiet || strict {
			for _, warn := range r.Result.Warnings {
				fmt.Fprintf(w, "  WARN:  %s: %s\n", warn.Field, warn.Message)
			}
		}
	}

	if !quiet {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Summary: %d valid, %d invalid\n", validCount, invalidCount)
	}
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().BoolVar(&strict, "strict", false, "treat warnings as errors")
	validateCmd.Flags().BoolVar(&quiet, "quiet", false, "only print problems")
}
