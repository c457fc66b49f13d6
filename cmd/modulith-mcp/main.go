// Command modulith-mcp exposes the verifier to AI coding assistants over the
// Model Context Protocol, grounded on the teacher's cmd/pyscn-mcp/main.go.
package main

import (
	"fmt"
	"log"
	"os"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/archlens/modulith/internal/config"
	"github.com/archlens/modulith/mcp"
)

const (
	serverName    = "modulith"
	serverVersion = "1.0.0"
)

func main() {
	log.SetOutput(os.Stderr)
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	server := mcpserver.NewMCPServer(
		serverName,
		serverVersion,
		mcpserver.WithToolCapabilities(true),
		mcpserver.WithLogging(),
	)

	configPath := os.Getenv("MODULITH_CONFIG")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Printf("warning: failed to load config: %v, using defaults", err)
		cfg = config.DefaultConfig()
	}

	deps := mcp.NewDependencies(cfg, configPath)
	handlers := mcp.NewHandlerSet(deps)
	mcp.RegisterTools(server, handlers)

	log.Printf("starting %s MCP server v%s\n", serverName, serverVersion)
	log.Println("registered tools:")
	log.Println("  - verify_architecture: check module boundaries against a class graph")
	log.Println("  - list_modules: list detected application modules")
	log.Println("  - describe_module: describe a single application module")
	log.Println("server ready - waiting for MCP client connection...")

	if err := mcpserver.ServeStdio(server); err != nil {
		fmt.Fprintf(os.Stderr, "server error: %v\n", err)
		os.Exit(1)
	}
}
