package types

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
)

// ToolRequest carries everything a model-backed parser needs to interpret
// one free-text line against the current form.
type ToolRequest[T any] struct {
	State       T
	StateSchema string
	Phase       Phase
	Fields      []FieldInfo
	Errors      map[string]string
	Input       string
}

func FormatFieldTable(rows []FieldRow) string {
	var buf strings.Builder
	table := tablewriter.NewTable(&buf, tablewriter.WithRenderer(renderer.NewMarkdown()))
	table.Header("Campo", "Valor", "Erro")
	for _, row := range rows {
		_ = table.Append(row.Label, flattenValue(row.Value), row.Error)
	}
	_ = table.Render()
	return buf.String()
}

func flattenValue(v string) string {
	return strings.ReplaceAll(strings.TrimRight(v, "\n"), "\n", " / ")
}

func formatFieldsSection(fields []FieldInfo) string {
	if len(fields) == 0 {
		return ""
	}
	var buf strings.Builder
	buf.WriteString("# Form fields:\n")
	table := tablewriter.NewTable(&buf, tablewriter.WithRenderer(renderer.NewMarkdown()))
	table.Header("Field", "Label", "Required", "Options")
	for _, field := range fields {
		required := "no"
		if field.Required {
			required = "yes"
		}
		_ = table.Append(field.Name, field.DisplayName, required, strings.Join(field.Options, " | "))
	}
	_ = table.Render()
	return buf.String()
}

func formatErrorsSection(errs map[string]string) string {
	if len(errs) == 0 {
		return ""
	}
	keys := make([]string, 0, len(errs))
	for k := range errs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var buf strings.Builder
	buf.WriteString("# Validation errors:\n")
	table := tablewriter.NewTable(&buf, tablewriter.WithRenderer(renderer.NewMarkdown()))
	table.Header("Field", "Error")
	for _, k := range keys {
		_ = table.Append(k, errs[k])
	}
	_ = table.Render()
	return buf.String()
}

func FormatToolRequest[T any](req *ToolRequest[T]) (string, error) {
	stateJSON, err := json.Marshal(req.State)
	if err != nil {
		return "", err
	}
	sections := []string{
		fmt.Sprintf("# Form state JSON:\n```json\n%s\n```", string(stateJSON)),
	}
	if req.StateSchema != "" {
		sections = append(sections, fmt.Sprintf("# Form state schema JSON:\n```json\n%s\n```", req.StateSchema))
	}
	if req.Phase != "" {
		sections = append(sections, fmt.Sprintf("# Current Phase:\n%s", req.Phase))
	}
	if s := formatFieldsSection(req.Fields); s != "" {
		sections = append(sections, s)
	}
	if s := formatErrorsSection(req.Errors); s != "" {
		sections = append(sections, s)
	}
	if req.Input != "" {
		sections = append(sections, fmt.Sprintf("# User Input:\n%s", req.Input))
	}
	return strings.Join(sections, "\n\n"), nil
}
