package server

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/commonargs/argdecl"
)

func call(t *testing.T, handler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error), args map[string]any) (string, bool) {
	t.Helper()
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	result, err := handler(context.Background(), req)
	require.NoError(t, err)
	require.NotEmpty(t, result.Content)
	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return text.Text, result.IsError
}

func TestListModules(t *testing.T) {
	fortran := argdecl.Table{Module: "fortran", Families: []argdecl.Family{
		{Name: "progs", Specs: []argdecl.Spec{argdecl.Arg("FC", "A Fortran compiler to use")}},
	}}
	s := NewMCPServer(fortran)

	out, isErr := call(t, s.handleListModules, nil)
	require.False(t, isErr)

	var modules []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &modules))
	names := make([]string, 0, len(modules))
	for _, m := range modules {
		names = append(names, m["name"].(string))
	}
	assert.Equal(t, []string{"ar", "cc", "gnudirs", "fortran"}, names)
}

func TestArgumentNames(t *testing.T) {
	s := NewMCPServer()

	out, isErr := call(t, s.handleArgumentNames, map[string]any{
		"module":  "cc",
		"options": map[string]any{"include_flags": false, "name_filter": []any{"CC", "LINK", "CFLAGS"}},
	})
	require.False(t, isErr, out)

	var names []string
	require.NoError(t, json.Unmarshal([]byte(out), &names))
	assert.Equal(t, []string{"CC", "LINK"}, names)
}

func TestArgumentDeclarations(t *testing.T) {
	s := NewMCPServer()

	out, isErr := call(t, s.handleArgumentDeclarations, map[string]any{
		"module": "gnudirs",
		"options": map[string]any{
			"name_filter":    []any{"prefix", "bindir"},
			"defaults":       map[string]any{"prefix": "/opt"},
			"var_key_prefix": "GNU_",
		},
	})
	require.False(t, isErr, out)

	var decls map[string]map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &decls))
	assert.Equal(t, "/opt", decls["prefix"]["default"])
	assert.Equal(t, "GNU_bindir", decls["bindir"]["var_key"])
	assert.Equal(t, "DIR", decls["bindir"]["metavar"])
}

func TestToolErrors(t *testing.T) {
	s := NewMCPServer()

	out, isErr := call(t, s.handleArgumentDeclarations, map[string]any{})
	assert.True(t, isErr)
	assert.Contains(t, out, "module")

	out, isErr = call(t, s.handleArgumentNames, map[string]any{"module": "fortran"})
	assert.True(t, isErr)
	assert.Contains(t, out, "unknown module")

	out, isErr = call(t, s.handleArgumentDeclarations, map[string]any{
		"module":  "ar",
		"options": map[string]any{"var_key_prefx": "X_"},
	})
	assert.True(t, isErr)
	assert.Contains(t, out, "unknown option")

	out, isErr = call(t, s.handleArgumentDeclarations, map[string]any{
		"module":  "ar",
		"options": "verbatim",
	})
	assert.True(t, isErr)
	assert.Contains(t, out, "options must be an object")
}
