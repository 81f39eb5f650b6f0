package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jade-codes/mother/internal/config"
	"github.com/jade-codes/mother/internal/graph"
	"github.com/jade-codes/mother/internal/mcpserver"
	"github.com/jade-codes/mother/internal/observability"
	"github.com/jade-codes/mother/pkg/version"
)

// NewMCPCommand creates the MCP server command.
func NewMCPCommand() *cobra.Command {
	var (
		debug         bool
		neo4jURI      string
		neo4jUser     string
		neo4jPassword string
		neo4jDatabase string
	)

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start an MCP server exposing query operations as tools",
		Long: `Start a Model Context Protocol (MCP) server on stdio transport.

The MCP server exposes the graph's read-only query operations as tools an
agent can discover and invoke: mother_symbols, mother_file, mother_refs_to,
mother_refs_from, mother_files, mother_stats, and mother_raw.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cobraCmd *cobra.Command, _ []string) error {
			configPath, _ := cobraCmd.Flags().GetString("config")
			if configPath == "" {
				configPath, _ = cobraCmd.Root().PersistentFlags().GetString("config")
			}

			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			if neo4jURI != "" {
				cfg.Neo4j.URI = neo4jURI
			}

			if neo4jUser != "" {
				cfg.Neo4j.User = neo4jUser
			}

			if neo4jPassword != "" {
				cfg.Neo4j.Password = neo4jPassword
			}

			if neo4jDatabase != "" {
				cfg.Neo4j.Database = neo4jDatabase
			}

			verbose, _ := cobraCmd.Flags().GetBool("verbose")

			providers, err := initMCPObservability(debug, verbose)
			if err != nil {
				return err
			}

			defer func() {
				shutdownErr := providers.Shutdown(context.Background())
				if shutdownErr != nil {
					providers.Logger.Warn("observability shutdown failed", "error", shutdownErr)
				}
			}()

			red, redErr := observability.NewREDMetrics(providers.Meter)
			if redErr != nil {
				return redErr
			}

			ctx := cobraCmd.Context()

			store, err := graph.ConnectNeo4j(ctx, graph.Neo4jConfig{
				URI:      cfg.Neo4j.URI,
				User:     cfg.Neo4j.User,
				Password: cfg.Neo4j.Password,
				Database: cfg.Neo4j.Database,
			})
			if err != nil {
				return fmt.Errorf("connect neo4j: %w", err)
			}
			defer store.Close(ctx)

			deps := mcpserver.ServerDeps{
				Store:   store,
				Logger:  providers.Logger,
				Metrics: red,
				Tracer:  providers.Tracer,
			}

			srv := mcpserver.NewServer(deps)

			return srv.Run(ctx)
		},
	}

	cmd.Flags().BoolVar(&debug, "debug", false, "Enable debug logging to stderr")
	cmd.Flags().StringVar(&neo4jURI, "neo4j-uri", "", "Neo4j connection URI (default: from config/env)")
	cmd.Flags().StringVar(&neo4jUser, "neo4j-user", "", "Neo4j username (default: from config/env)")
	cmd.Flags().StringVar(&neo4jPassword, "neo4j-password", "", "Neo4j password (default: from config/env)")
	cmd.Flags().StringVar(&neo4jDatabase, "neo4j-database", "", "Neo4j database name (default: from config/env)")

	return cmd
}

func initMCPObservability(debug, verbose bool) (observability.Providers, error) {
	cfg := observability.DefaultConfig()
	cfg.ServiceVersion = version.Version
	cfg.OTLPEndpoint = os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	cfg.OTLPHeaders = observability.ParseOTLPHeaders(os.Getenv("OTEL_EXPORTER_OTLP_HEADERS"))
	cfg.OTLPInsecure = os.Getenv("OTEL_EXPORTER_OTLP_INSECURE") == "true"
	cfg.Mode = observability.ModeMCP
	cfg.LogJSON = true

	if debug {
		cfg.LogLevel = slog.LevelDebug
		cfg.DebugTrace = true
	}

	if verbose {
		cfg.LogLevel = slog.LevelDebug
	}

	return observability.Init(cfg)
}
