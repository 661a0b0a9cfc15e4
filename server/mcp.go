// Package server exposes argument tables over the Model Context Protocol so
// that assistants and editors can query names and declarations.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/teranos/commonargs/argdecl"
	"github.com/teranos/commonargs/common"
	"github.com/teranos/commonargs/errors"
	"github.com/teranos/commonargs/logger"
	"github.com/teranos/commonargs/version"
)

// MCPServer serves built-in modules plus any tables loaded at startup
type MCPServer struct {
	server *server.MCPServer
	tables map[string]argdecl.Table
	logger *zap.SugaredLogger
}

// NewMCPServer creates the server. Extra tables shadow built-in modules of the same name.
func NewMCPServer(extra ...argdecl.Table) *MCPServer {
	s := &MCPServer{
		tables: make(map[string]argdecl.Table, len(extra)),
		logger: logger.ComponentLogger("mcp"),
	}
	for _, t := range extra {
		s.tables[t.Module] = t
	}

	s.server = server.NewMCPServer(
		"commonargs",
		version.Get().Semver().String(),
		server.WithToolCapabilities(true),
	)
	s.registerTools()
	return s
}

func (s *MCPServer) registerTools() {
	listTool := mcp.NewTool("list_modules",
		mcp.WithDescription("List the argument modules (cc, ar, gnudirs and loaded tables) with their families"),
	)
	s.server.AddTool(listTool, s.handleListModules)

	namesTool := mcp.NewTool("argument_names",
		mcp.WithDescription("List the argument names of a module, optionally filtered"),
		mcp.WithString("module",
			mcp.Required(),
			mcp.Description("Module name, e.g. cc"),
		),
		mcp.WithObject("options",
			mcp.Description("Declaration options: name_filter (list of names), include_<family> (bool)"),
		),
	)
	s.server.AddTool(namesTool, s.handleArgumentNames)

	declTool := mcp.NewTool("argument_declarations",
		mcp.WithDescription("Build argument declarations (store key, variable key, option, metavar, default, help) for a module"),
		mcp.WithString("module",
			mcp.Required(),
			mcp.Description("Module name, e.g. gnudirs"),
		),
		mcp.WithObject("options",
			mcp.Description("Declaration options: defaults, name_filter, type, metavar, include_<family>, "+
				"env_key_prefix/suffix/transform, var_key_prefix/suffix/transform, opt_key_prefix/suffix/transform, "+
				"opt_prefix, opt_name_prefix, opt_name_suffix, option_transform"),
		),
	)
	s.server.AddTool(declTool, s.handleArgumentDeclarations)
}

func (s *MCPServer) lookup(module string) (argdecl.Table, error) {
	if t, ok := s.tables[module]; ok {
		return t, nil
	}
	return common.Lookup(module)
}

// options decodes the optional "options" argument as a keyword bag
func options(request mcp.CallToolRequest) (argdecl.Options, error) {
	raw, ok := request.GetArguments()["options"]
	if !ok || raw == nil {
		return argdecl.Options{}, nil
	}
	bag, ok := raw.(map[string]any)
	if !ok {
		return argdecl.Options{}, errors.Newf("options must be an object, got %T", raw)
	}
	return argdecl.OptionsFromMap(bag)
}

func (s *MCPServer) handleListModules(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	type moduleInfo struct {
		Name        string   `json:"name"`
		Description string   `json:"description,omitempty"`
		Families    []string `json:"families"`
		Count       int      `json:"count"`
	}

	var modules []moduleInfo
	for _, info := range common.Describe() {
		if _, shadowed := s.tables[info.Name]; shadowed {
			continue
		}
		modules = append(modules, moduleInfo(info))
	}
	extra := make([]string, 0, len(s.tables))
	for name := range s.tables {
		extra = append(extra, name)
	}
	sort.Strings(extra)
	for _, name := range extra {
		t := s.tables[name]
		modules = append(modules, moduleInfo{Name: t.Module, Families: t.FamilyNames(), Count: len(t.Select(nil))})
	}

	return jsonResult(modules)
}

func (s *MCPServer) handleArgumentNames(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	module, err := request.RequireString("module")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	table, err := s.lookup(module)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("%v (%s)", err, errors.FlattenHints(err))), nil
	}
	opts, err := options(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Invalid options: %v", err)), nil
	}

	names, err := argdecl.Names(table, opts)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to list names: %v", err)), nil
	}
	if names == nil {
		names = []string{}
	}

	s.logger.Debugw("argument_names", logger.FieldModule, module, logger.FieldCount, len(names))
	return jsonResult(names)
}

func (s *MCPServer) handleArgumentDeclarations(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	module, err := request.RequireString("module")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	table, err := s.lookup(module)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("%v (%s)", err, errors.FlattenHints(err))), nil
	}
	opts, err := options(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Invalid options: %v", err)), nil
	}

	decls, err := argdecl.Declare(table, opts)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to build declarations: %v", err)), nil
	}

	s.logger.Debugw("argument_declarations", logger.FieldModule, module, logger.FieldCount, decls.Len())
	return jsonResult(decls)
}

func jsonResult(v interface{}) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// Serve starts the MCP server using stdio transport
func (s *MCPServer) Serve() error {
	return server.ServeStdio(s.server)
}
