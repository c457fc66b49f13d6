package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// HandlerSet binds MCP tool handlers to shared Dependencies.
type HandlerSet struct {
	deps *Dependencies
}

// NewHandlerSet builds a HandlerSet bound to deps.
func NewHandlerSet(deps *Dependencies) *HandlerSet { return &HandlerSet{deps: deps} }

// RegisterTools registers every modulith MCP tool with the server, grounded
// on the teacher's mcp/tools.go RegisterTools.
func RegisterTools(s *server.MCPServer, handlers *HandlerSet) {
	s.AddTool(mcp.NewTool("verify_architecture",
		mcp.WithDescription("Verify a Java application's module boundaries against a previously extracted class graph"),
		mcp.WithString("classGraphPath",
			mcp.Required(),
			mcp.Description("Path to the JSON class graph file to verify")),
		mcp.WithArray("rootPackages",
			mcp.Description("Root package(s) to analyze; defaults to the configured detection.root_packages")),
		mcp.WithString("strategy",
			mcp.Description("Detection strategy override: direct-sub-packages or explicitly-annotated")),
	), handlers.HandleVerifyArchitecture)

	s.AddTool(mcp.NewTool("list_modules",
		mcp.WithDescription("List the application modules detected in a class graph, with dependencies and exposed types"),
		mcp.WithString("classGraphPath",
			mcp.Required(),
			mcp.Description("Path to the JSON class graph file to analyze")),
		mcp.WithArray("rootPackages",
			mcp.Description("Root package(s) to analyze; defaults to the configured detection.root_packages")),
	), handlers.HandleListModules)

	s.AddTool(mcp.NewTool("describe_module",
		mcp.WithDescription("Describe a single application module: named interfaces, dependencies, and exposed beans"),
		mcp.WithString("classGraphPath",
			mcp.Required(),
			mcp.Description("Path to the JSON class graph file to analyze")),
		mcp.WithString("moduleIdentifier",
			mcp.Required(),
			mcp.Description("Identifier of the module to describe")),
		mcp.WithArray("rootPackages",
			mcp.Description("Root package(s) to analyze; defaults to the configured detection.root_packages")),
	), handlers.HandleDescribeModule)
}
