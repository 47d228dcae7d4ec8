package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/oadr3/internal/constants"
	"github.com/fivetwenty-io/oadr3/pkg/oadr3"
)

const timeLayout = "2006-01-02 15:04:05"

// outputFormat returns the configured output format.
func outputFormat() (string, error) {
	format := strings.ToLower(viper.GetString("output"))
	switch format {
	case "", constants.OutputFormatTable:
		return constants.OutputFormatTable, nil
	case constants.OutputFormatJSON, constants.OutputFormatYAML:
		return format, nil
	default:
		return "", fmt.Errorf("%w: %q (use table, json or yaml)", constants.ErrInvalidOutput, format)
	}
}

// render writes value as JSON or YAML, or calls table for the table format.
func render(out io.Writer, value interface{}, table func(io.Writer) error) error {
	format, err := outputFormat()
	if err != nil {
		return err
	}

	switch format {
	case constants.OutputFormatJSON:
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")

		return encoder.Encode(value)
	case constants.OutputFormatYAML:
		encoder := yaml.NewEncoder(out)
		defer func() { _ = encoder.Close() }()

		return encoder.Encode(value)
	default:
		err := table(out)
		if err != nil {
			return fmt.Errorf("failed to render table: %w", err)
		}

		return nil
	}
}

// renderResponse prints the payload of a successful response, or the problem
// of a failed one. A problem is returned as an error so the command exits
// non-zero.
func renderResponse[T any](cmd *cobra.Command, resp *oadr3.APIResponse[T], table func(io.Writer, *T) error) error {
	if resp.IsError() {
		return renderProblem(cmd, resp.Status, resp.Problem)
	}

	if resp.Response == nil {
		_, err := fmt.Fprintf(cmd.OutOrStdout(), "OK (status %d)\n", resp.Status)

		return err
	}

	return render(cmd.OutOrStdout(), resp.Response, func(out io.Writer) error {
		return table(out, resp.Response)
	})
}

func renderProblem(cmd *cobra.Command, status int, problem *oadr3.APIError) error {
	if problem == nil {
		problem = &oadr3.APIError{Status: status}
	}

	err := render(cmd.ErrOrStderr(), problem, func(out io.Writer) error {
		table := tablewriter.NewWriter(out)
		table.Header("Property", "Value")
		_ = table.Append("Status", strconv.Itoa(problem.Status))
		_ = table.Append("Title", problem.Title)
		_ = table.Append("Detail", problem.Detail)

		if problem.Type != "" {
			_ = table.Append("Type", problem.Type)
		}

		if problem.Instance != "" {
			_ = table.Append("Instance", problem.Instance)
		}

		return table.Render()
	})
	if err != nil {
		return err
	}

	return fmt.Errorf("%w: status %d", constants.ErrProblemResponse, status)
}

// listTable renders one row per item.
func listTable[T any](columns []string, row func(*T) []string) func(io.Writer, *[]T) error {
	return func(out io.Writer, items *[]T) error {
		if len(*items) == 0 {
			_, err := fmt.Fprintln(out, "No results found")

			return err
		}

		table := tablewriter.NewWriter(out)
		table.Header(toAny(columns)...)

		for i := range *items {
			_ = table.Append(toAny(row(&(*items)[i]))...)
		}

		return table.Render()
	}
}

// detailTable renders a single item as property/value pairs.
func detailTable[T any](columns []string, row func(*T) []string) func(io.Writer, *T) error {
	return func(out io.Writer, item *T) error {
		table := tablewriter.NewWriter(out)
		table.Header("Property", "Value")

		for i, value := range row(item) {
			_ = table.Append(columns[i], value)
		}

		return table.Render()
	}
}

func toAny(values []string) []any {
	result := make([]any, len(values))
	for i, value := range values {
		result[i] = value
	}

	return result
}

func formatTime(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}

	return t.Format(timeLayout)
}
