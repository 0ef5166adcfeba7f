package mcp

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/ganot/po-manager/internal/caldate"
	"github.com/ganot/po-manager/internal/collection"
	"github.com/ganot/po-manager/internal/domain/project"
	"github.com/ganot/po-manager/internal/resource"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"
)

func projectResource(t *testing.T) (resource.Resource, *project.Service) {
	t.Helper()
	store, err := collection.Bootstrap[project.Project](context.Background(), collection.FileBackendIn(t.TempDir(), "project"))
	require.NoError(t, err)
	svc := project.NewService(store, nil)
	return resource.New[project.CreateRequest, project.Patch, project.Filter, project.Project, project.Project](svc, resource.Options[project.Filter]{
		Kind:        "project",
		ParseFilter: project.ParseFilter,
		NotFound:    project.ErrProjectNotFound,
		Invalid:     project.ErrInvalidInput,
	}), svc
}

func connect(t *testing.T, resources ...resource.Resource) *sdkmcp.ClientSession {
	t.Helper()
	ctx := context.Background()
	server := NewServer(Config{Resources: resources, Version: "test"})

	serverTransport, clientTransport := sdkmcp.NewInMemoryTransports()
	serverSession, err := server.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = serverSession.Close() })

	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "test-client", Version: "0.0.1"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = session.Close() })
	return session
}

func textOf(t *testing.T, res *sdkmcp.CallToolResult) string {
	t.Helper()
	require.Len(t, res.Content, 1)
	text, ok := res.Content[0].(*sdkmcp.TextContent)
	require.True(t, ok)
	return text.Text
}

func TestBuildToolCatalog(t *testing.T) {
	res, _ := projectResource(t)
	entries := buildToolCatalog([]resource.Resource{res})

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.tool.Name)
		require.Equal(t, "object", e.tool.InputSchema.(map[string]any)["type"])
	}
	require.Equal(t, []string{"list_project", "get_project", "create_project", "update_project", "delete_project"}, names)
	require.Contains(t, entries[0].tool.Description, "name_or_code")
	require.Contains(t, entries[2].tool.Description, "price cannot be negative")
	require.Contains(t, entries[3].tool.Description, "cannot be empty")
}

func TestServer_ListTools(t *testing.T) {
	res, _ := projectResource(t)
	session := connect(t, res)

	tools, err := session.ListTools(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, tools.Tools, 5)
}

func TestServer_ProjectTools(t *testing.T) {
	ctx := context.Background()
	res, svc := projectResource(t)
	session := connect(t, res)

	created, err := session.CallTool(ctx, &sdkmcp.CallToolParams{
		Name: "create_project",
		Arguments: map[string]any{
			"record": map[string]any{
				"name":               "Customer Portal",
				"code":               "PRJ-001",
				"release_date":       "2025-03-03",
				"plan_delivery_date": "2025-06-30",
				"tech_days":          40,
				"test_days":          10,
				"price":              120000,
				"pm":                 "Zhang Wei",
			},
		},
	})
	require.NoError(t, err)
	require.False(t, created.IsError, textOf(t, created))

	var proj project.Project
	require.NoError(t, json.Unmarshal([]byte(textOf(t, created)), &proj))
	require.Equal(t, caldate.New(2025, time.March, 3), proj.ReleaseDate)

	listed, err := session.CallTool(ctx, &sdkmcp.CallToolParams{
		Name:      "list_project",
		Arguments: map[string]any{"filter": map[string]string{"days": "50"}},
	})
	require.NoError(t, err)
	var list []project.Project
	require.NoError(t, json.Unmarshal([]byte(textOf(t, listed)), &list))
	require.Equal(t, []project.Project{proj}, list)

	updated, err := session.CallTool(ctx, &sdkmcp.CallToolParams{
		Name:      "update_project",
		Arguments: map[string]any{"id": proj.ID, "changes": map[string]any{"pm": "Li Na"}},
	})
	require.NoError(t, err)
	require.False(t, updated.IsError)

	stored, err := svc.Get(ctx, proj.ID)
	require.NoError(t, err)
	require.Equal(t, "Li Na", stored.PM)
	require.Equal(t, "Customer Portal", stored.Name)

	deleted, err := session.CallTool(ctx, &sdkmcp.CallToolParams{Name: "delete_project", Arguments: map[string]any{"id": proj.ID}})
	require.NoError(t, err)
	require.False(t, deleted.IsError)

	missing, err := session.CallTool(ctx, &sdkmcp.CallToolParams{Name: "get_project", Arguments: map[string]any{"id": proj.ID}})
	require.NoError(t, err)
	require.False(t, missing.IsError)
	require.Equal(t, "null", textOf(t, missing))
}

func TestServer_ToolErrors(t *testing.T) {
	ctx := context.Background()
	res, _ := projectResource(t)
	session := connect(t, res)

	cases := []struct {
		name string
		tool string
		args map[string]any
		code string
	}{
		{"missing field", "create_project", map[string]any{"record": map[string]any{"name": "x"}}, "INVALID_INPUT"},
		{"bad date", "create_project", map[string]any{"record": map[string]any{"name": "x", "release_date": "March"}}, "MALFORMED"},
		{"unknown id", "delete_project", map[string]any{"id": "nope"}, "NOT_FOUND"},
		{"bad filter", "list_project", map[string]any{"filter": map[string]string{"price": "cheap"}}, "INVALID_INPUT"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := session.CallTool(ctx, &sdkmcp.CallToolParams{Name: tc.tool, Arguments: tc.args})
			require.NoError(t, err)
			require.True(t, result.IsError)

			var apiErr APIError
			require.NoError(t, json.Unmarshal([]byte(textOf(t, result)), &apiErr))
			require.Equal(t, tc.code, apiErr.Code)
			require.NotEmpty(t, apiErr.Message)
		})
	}
}
