package mcp

import (
	"log/slog"

	"github.com/ganot/po-manager/internal/resource"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `po-manager keeps project-outsourcing records: projects, employees,
employee changes (assignment history), attendance and special dates.
Every record kind has list_, get_, create_, update_ and delete_ tools.
Dates are YYYY-MM-DD strings. update_ only overwrites the fields you send.`

// Config contains server configuration.
type Config struct {
	Resources []resource.Resource
	Version   string
	Logger    *slog.Logger
}

// NewServer creates and configures an MCP server with all tools and middleware.
func NewServer(cfg Config) *sdkmcp.Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	version := cfg.Version
	if version == "" {
		version = "dev"
	}

	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "po-manager",
		Version: version,
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       logger,
	})

	server.AddReceivingMiddleware(trafficLoggingMiddleware(logger, "inbound"))
	server.AddSendingMiddleware(trafficLoggingMiddleware(logger, "outbound"))

	registerTools(server, cfg.Resources, logger)

	return server
}
