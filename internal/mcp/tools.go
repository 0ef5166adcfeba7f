package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/ganot/po-manager/internal/resource"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// kindDoc describes a record kind to tool callers.
type kindDoc struct {
	label   string
	fields  string
	filters []string
	// rules lists what create and update reject beyond malformed JSON.
	rules   string
}

var kindDocs = map[string]kindDoc{
	"project": {
		label:   "project",
		fields:  "name, code, release_date, plan_delivery_date, tech_days, test_days, price, pm",
		rules:   "name, code, pm, release_date and plan_delivery_date are required and cannot be empty; tech_days, test_days and price cannot be negative",
		filters: []string{"id", "name_or_code", "pm", "release_date_fuzzy", "plan_delivery_date_fuzzy", "price", "days"},
	},
	"employee": {
		label:   "employee",
		fields:  "name, status (Working|Leave|Quit, default Working), position",
		rules:   "name is required and cannot be empty; status must be Working, Leave or Quit",
		filters: []string{"id", "name", "status", "position"},
	},
	"employee_change": {
		label:   "employee change (assignment of an employee to a project)",
		fields:  "employee_id, project_id, in_time, out_time (optional)",
		rules:   "employee_id, project_id and in_time are required; out_time cannot be before in_time, also after an update",
		filters: []string{"id", "employee_id", "project_id", "in_time", "out_time"},
	},
	"attendance": {
		label:   "attendance record",
		fields:  "start_time, end_time (optional), employee_id, date_type (Leave|CompensatoryLeave|Overtime), start_half, end_half",
		rules:   "start_time, employee_id and date_type are required; end_time cannot be before start_time, also after an update",
		filters: []string{"id", "employee_id", "date_type", "start_time", "end_time", "start_half", "end_half"},
	},
	"special_date": {
		label:   "special date (calendar exception)",
		fields:  "start_time, end_time (optional), date_type (Include|Exclude)",
		rules:   "start_time and date_type are required; end_time cannot be before start_time, also after an update",
		filters: []string{"id", "start_time", "end_time", "date_type"},
	},
}

func docFor(kind string) kindDoc {
	if doc, ok := kindDocs[kind]; ok {
		return doc
	}
	return kindDoc{label: strings.ReplaceAll(kind, "_", " "), fields: "record fields"}
}

func rulesSentence(doc kindDoc) string {
	if doc.rules == "" {
		return "Invalid records are rejected with INVALID_INPUT"
	}
	return "Rejected with INVALID_INPUT: " + doc.rules
}

type listArgs struct {
	Filter map[string]string `json:"filter,omitempty"`
}

type idArgs struct {
	ID string `json:"id"`
}

type createArgs struct {
	Record json.RawMessage `json:"record"`
}

type updateArgs struct {
	ID      string          `json:"id"`
	Changes json.RawMessage `json:"changes"`
}

type toolEntry struct {
	tool    *sdkmcp.Tool
	handler func(ctx context.Context, args json.RawMessage) (any, error)
}

var idSchema = map[string]any{
	"type":        "string",
	"description": "Record ID",
}

// buildToolCatalog returns the tools of every resource, five per kind.
func buildToolCatalog(resources []resource.Resource) []toolEntry {
	var entries []toolEntry
	for _, res := range resources {
		kind := res.Kind()
		doc := docFor(kind)

		entries = append(entries,
			toolEntry{
				tool: &sdkmcp.Tool{
					Name:        "list_" + kind,
					Description: fmt.Sprintf("List every %s, optionally filtered. Filter keys: %s. Text filters match substrings, all others must be equal.", doc.label, strings.Join(doc.filters, ", ")),
					InputSchema: map[string]any{
						"type": "object",
						"properties": map[string]any{
							"filter": map[string]any{
								"type":                 "object",
								"description":          "Filter values as strings, e.g. {\"days\": \"30\"}",
								"additionalProperties": map[string]any{"type": "string"},
							},
						},
					},
					Annotations: &sdkmcp.ToolAnnotations{ReadOnlyHint: true},
				},
				handler: func(ctx context.Context, raw json.RawMessage) (any, error) {
					var args listArgs
					if err := decodeArgs(raw, &args); err != nil {
						return nil, err
					}
					q := url.Values{}
					for k, v := range args.Filter {
						q.Set(k, v)
					}
					return res.List(ctx, q)
				},
			},
			toolEntry{
				tool: &sdkmcp.Tool{
					Name:        "get_" + kind,
					Description: fmt.Sprintf("Get one %s by ID. Returns null when the ID is unknown.", doc.label),
					InputSchema: map[string]any{
						"type":       "object",
						"properties": map[string]any{"id": idSchema},
						"required":   []string{"id"},
					},
					Annotations: &sdkmcp.ToolAnnotations{ReadOnlyHint: true},
				},
				handler: func(ctx context.Context, raw json.RawMessage) (any, error) {
					var args idArgs
					if err := decodeArgs(raw, &args); err != nil {
						return nil, err
					}
					return res.Get(ctx, args.ID)
				},
			},
			toolEntry{
				tool: &sdkmcp.Tool{
					Name:        "create_" + kind,
					Description: fmt.Sprintf("Create a %s. The ID is generated. Fields: %s. %s.", doc.label, doc.fields, rulesSentence(doc)),
					InputSchema: map[string]any{
						"type": "object",
						"properties": map[string]any{
							"record": map[string]any{
								"type":        "object",
								"description": "Fields: " + doc.fields,
							},
						},
						"required": []string{"record"},
					},
				},
				handler: func(ctx context.Context, raw json.RawMessage) (any, error) {
					var args createArgs
					if err := decodeArgs(raw, &args); err != nil {
						return nil, err
					}
					return res.Create(ctx, args.Record)
				},
			},
			toolEntry{
				tool: &sdkmcp.Tool{
					Name:        "update_" + kind,
					Description: fmt.Sprintf("Update a %s. Only the fields present in changes are overwritten. %s.", doc.label, rulesSentence(doc)),
					InputSchema: map[string]any{
						"type": "object",
						"properties": map[string]any{
							"id": idSchema,
							"changes": map[string]any{
								"type":        "object",
								"description": "Fields to overwrite: " + doc.fields,
							},
						},
						"required": []string{"id", "changes"},
					},
					Annotations: &sdkmcp.ToolAnnotations{IdempotentHint: true},
				},
				handler: func(ctx context.Context, raw json.RawMessage) (any, error) {
					var args updateArgs
					if err := decodeArgs(raw, &args); err != nil {
						return nil, err
					}
					return res.Update(ctx, args.ID, args.Changes)
				},
			},
			toolEntry{
				tool: &sdkmcp.Tool{
					Name:        "delete_" + kind,
					Description: fmt.Sprintf("Delete a %s by ID and return its last value.", doc.label),
					InputSchema: map[string]any{
						"type":       "object",
						"properties": map[string]any{"id": idSchema},
						"required":   []string{"id"},
					},
				},
				handler: func(ctx context.Context, raw json.RawMessage) (any, error) {
					var args idArgs
					if err := decodeArgs(raw, &args); err != nil {
						return nil, err
					}
					return res.Delete(ctx, args.ID)
				},
			},
		)
	}
	return entries
}

func registerTools(server *sdkmcp.Server, resources []resource.Resource, logger *slog.Logger) {
	for _, entry := range buildToolCatalog(resources) {
		server.AddTool(entry.tool, toolHandler(entry, logger))
	}
}

func toolHandler(entry toolEntry, logger *slog.Logger) sdkmcp.ToolHandler {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest) (*sdkmcp.CallToolResult, error) {
		var args json.RawMessage
		if req.Params != nil {
			args = req.Params.Arguments
		}
		out, err := entry.handler(ctx, args)
		if err != nil {
			apiErr := MapError(err)
			if apiErr.Code == "INTERNAL" {
				logger.Error("tool call failed", "tool", entry.tool.Name, "error", err)
			}
			return errorResult(apiErr), nil
		}
		return jsonResult(out)
	}
}

func decodeArgs(raw json.RawMessage, out any) error {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &resource.Error{Class: resource.ClassInput, Err: fmt.Errorf("%w: %w", resource.ErrMalformed, err)}
	}
	return nil
}

func jsonResult(out any) (*sdkmcp.CallToolResult, error) {
	data, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("encoding tool result: %w", err)
	}
	return &sdkmcp.CallToolResult{
		Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: string(data)}},
	}, nil
}

func errorResult(apiErr *APIError) *sdkmcp.CallToolResult {
	data, _ := json.Marshal(apiErr)
	return &sdkmcp.CallToolResult{
		IsError: true,
		Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: string(data)}},
	}
}
