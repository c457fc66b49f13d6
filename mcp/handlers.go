package mcp

import (
	"bytes"
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/archlens/modulith/app"
	"github.com/archlens/modulith/domain"
	svc "github.com/archlens/modulith/service"
)

func argsOf(request mcp.CallToolRequest) (map[string]interface{}, bool) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	return args, ok
}

func stringArg(args map[string]interface{}, key string) string {
	if v, ok := args[key].(string); ok {
		return v
	}
	return ""
}

func stringSliceArg(args map[string]interface{}, key string) []string {
	raw, ok := args[key].([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// HandleVerifyArchitecture runs `verify_architecture`, grounded on the
// teacher's mcp/handlers.go request-building and use-case invocation pattern.
func (h *HandlerSet) HandleVerifyArchitecture(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := argsOf(request)
	if !ok {
		return mcp.NewToolResultError("invalid arguments format"), nil
	}
	classGraphPath := stringArg(args, "classGraphPath")
	if classGraphPath == "" {
		return mcp.NewToolResultError("classGraphPath parameter is required and must be a string"), nil
	}

	importer := h.deps.Importer(classGraphPath)
	uc, err := app.NewVerifyUseCaseBuilder().
		WithImporter(importer).
		WithAnnotationSource(importer).
		WithCatalog(h.deps.Catalog()).
		WithFormatter(svc.NewVerifyFormatter(false)).
		Build()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to build verify use case: %v", err)), nil
	}

	var buf bytes.Buffer
	req := domain.VerifyRequest{
		RootPackages: stringSliceArg(args, "rootPackages"),
		ConfigPath:   h.deps.ConfigPath(),
		Strategy:     stringArg(args, "strategy"),
		Format:       domain.OutputFormatJSON,
		OutputWriter: &buf,
	}

	err = uc.Execute(ctx, req)
	if _, ok := err.(*domain.ArchitectureViolationError); err != nil && !ok {
		return mcp.NewToolResultError(fmt.Sprintf("verification failed: %v", err)), nil
	}
	return mcp.NewToolResultText(buf.String()), nil
}

// HandleListModules runs `list_modules`.
func (h *HandlerSet) HandleListModules(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := argsOf(request)
	if !ok {
		return mcp.NewToolResultError("invalid arguments format"), nil
	}
	classGraphPath := stringArg(args, "classGraphPath")
	if classGraphPath == "" {
		return mcp.NewToolResultError("classGraphPath parameter is required and must be a string"), nil
	}

	importer := h.deps.Importer(classGraphPath)
	uc, err := app.NewModulesUseCaseBuilder().
		WithImporter(importer).
		WithAnnotationSource(importer).
		WithCatalog(h.deps.Catalog()).
		WithFormatter(svc.NewModulesFormatter(false)).
		Build()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to build modules use case: %v", err)), nil
	}

	var buf bytes.Buffer
	req := domain.ModulesRequest{
		RootPackages: stringSliceArg(args, "rootPackages"),
		ConfigPath:   h.deps.ConfigPath(),
		Format:       domain.OutputFormatJSON,
		OutputWriter: &buf,
	}
	if err := uc.Execute(ctx, req); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("module detection failed: %v", err)), nil
	}
	return mcp.NewToolResultText(buf.String()), nil
}

// HandleDescribeModule runs `describe_module`.
func (h *HandlerSet) HandleDescribeModule(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := argsOf(request)
	if !ok {
		return mcp.NewToolResultError("invalid arguments format"), nil
	}
	classGraphPath := stringArg(args, "classGraphPath")
	if classGraphPath == "" {
		return mcp.NewToolResultError("classGraphPath parameter is required and must be a string"), nil
	}
	moduleID := stringArg(args, "moduleIdentifier")
	if moduleID == "" {
		return mcp.NewToolResultError("moduleIdentifier parameter is required and must be a string"), nil
	}

	importer := h.deps.Importer(classGraphPath)
	uc, err := app.NewModulesUseCaseBuilder().
		WithImporter(importer).
		WithAnnotationSource(importer).
		WithCatalog(h.deps.Catalog()).
		WithFormatter(svc.NewModulesFormatter(false)).
		Build()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to build modules use case: %v", err)), nil
	}

	var buf bytes.Buffer
	req := domain.ModulesRequest{
		RootPackages: stringSliceArg(args, "rootPackages"),
		ConfigPath:   h.deps.ConfigPath(),
		Format:       domain.OutputFormatJSON,
		ModuleFilter: moduleID,
		OutputWriter: &buf,
	}
	if err := uc.Execute(ctx, req); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("module detection failed: %v", err)), nil
	}
	return mcp.NewToolResultText(buf.String()), nil
}
