package app

import (
	"fmt"
	"time"

	"github.com/bobmcallan/krxdata/internal/clients/krx"
	"github.com/bobmcallan/krxdata/internal/common"
	"github.com/bobmcallan/krxdata/internal/interfaces"
	"github.com/bobmcallan/krxdata/internal/mcpserver"
	"github.com/bobmcallan/krxdata/internal/tools"
)

// App holds the initialized client, tool service and MCP server.
// It is the shared core used by both cmd/krx-server and cmd/krx-mcp.
type App struct {
	Config      *common.Config
	Logger      *common.Logger
	KRXClient   interfaces.MarketDataClient
	Tools       *tools.Service
	MCPServer   *mcpserver.Server
	StartupTime time.Time
}

// NewApp loads configuration from the given paths (or the default search
// paths when none are given) and wires the application.
func NewApp(configPaths ...string) (*App, error) {
	startupStart := time.Now()

	// Load version from .version file (fallback if ldflags not set)
	common.LoadVersionFromFile()

	if len(configPaths) == 0 {
		configPaths = common.DefaultConfigPaths()
	}
	config, err := common.LoadConfig(configPaths...)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger := common.NewLoggerFromConfig(config.Logging)

	client := krx.NewClient(
		krx.WithBaseURL(config.Clients.KRX.BaseURL),
		krx.WithLogger(logger),
		krx.WithRateLimit(config.Clients.KRX.RateLimit),
		krx.WithTimeout(config.Clients.KRX.GetTimeout()),
	)

	a := NewAppWithClient(config, logger, client)
	a.StartupTime = startupStart

	logger.Info().Dur("startup", time.Since(startupStart)).Msg("App initialized")
	return a, nil
}

// NewAppWithClient wires the application around an existing market data
// client.
func NewAppWithClient(config *common.Config, logger *common.Logger, client interfaces.MarketDataClient) *App {
	if logger == nil {
		logger = common.NewSilentLogger()
	}
	svc := tools.NewService(client, logger)
	return &App{
		Config:      config,
		Logger:      logger,
		KRXClient:   client,
		Tools:       svc,
		MCPServer:   mcpserver.New(config.MCP.Name, common.GetVersion(), svc, logger),
		StartupTime: time.Now(),
	}
}
