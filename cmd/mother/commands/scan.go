// Package commands implements CLI command handlers for mother.
package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jade-codes/mother/internal/config"
	"github.com/jade-codes/mother/internal/gitinfo"
	"github.com/jade-codes/mother/internal/graph"
	"github.com/jade-codes/mother/internal/lspclient"
	"github.com/jade-codes/mother/internal/observability"
	"github.com/jade-codes/mother/internal/orchestrator"
	"github.com/jade-codes/mother/pkg/version"
)

// ScanCommand holds configuration and dependencies for the scan command.
type ScanCommand struct {
	neo4jURI      string
	neo4jUser     string
	neo4jPassword string
	neo4jDatabase string
	scanVersion   string
	configFile    string
	debugTrace    bool
}

// NewScanCommand creates the scan command.
func NewScanCommand() *cobra.Command {
	sc := &ScanCommand{}

	cmd := &cobra.Command{
		Use:   "scan <path>",
		Short: "Scan a repository and populate the graph",
		Long: `Scan walks the repository at path via real language servers, extracting
files, symbols, and references at the current commit, and persists the
result to Neo4j keyed by commit SHA. Re-scanning an unchanged commit is a
cheap no-op.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return sc.run(cmd, args[0])
		},
	}

	cmd.Flags().StringVar(&sc.neo4jURI, "neo4j-uri", "", "Neo4j connection URI (default: from config/env)")
	cmd.Flags().StringVar(&sc.neo4jUser, "neo4j-user", "", "Neo4j username (default: from config/env)")
	cmd.Flags().StringVar(&sc.neo4jPassword, "neo4j-password", "", "Neo4j password (default: from config/env)")
	cmd.Flags().StringVar(&sc.neo4jDatabase, "neo4j-database", "", "Neo4j database name (default: from config/env)")
	cmd.Flags().StringVar(&sc.scanVersion, "version", "", "Optional version tag to stamp on the scan run")
	cmd.Flags().BoolVar(&sc.debugTrace, "debug", false, "Enable verbose tracing and debug logging")

	return cmd
}

func (sc *ScanCommand) run(cmd *cobra.Command, repoPath string) error {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		configPath, _ = cmd.Root().PersistentFlags().GetString("config")
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	sc.applyOverrides(cfg)

	verbose, _ := cmd.Flags().GetBool("verbose")

	providers, err := sc.initObservability(verbose)
	if err != nil {
		return fmt.Errorf("init observability: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	defer func() {
		if shutdownErr := providers.Shutdown(context.Background()); shutdownErr != nil {
			providers.Logger.Warn("observability shutdown failed", "error", shutdownErr)
		}
	}()

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

	manager := lspclient.NewManager(repoPath, providers.Logger)
	for _, override := range cfg.LSPServers {
		manager.RegisterServer(lspclient.ServerConfig{
			Language: override.Language,
			Command:  override.Command,
			Args:     override.Args,
			RootPath: repoPath,
		})
	}
	defer manager.ShutdownAll(ctx)

	info, err := gitinfo.Resolve(repoPath)
	if err != nil {
		return fmt.Errorf("resolve git info: %w", err)
	}

	scanVersion := sc.scanVersion
	if scanVersion == "" {
		scanVersion = cfg.Scan.Version
	}

	result, err := orchestrator.Run(ctx, repoPath, info.SHA, info.Branch, scanVersion, store, manager, providers.Logger)
	if err != nil {
		return fmt.Errorf("scan: %w", err)
	}

	if !result.IsNewCommit {
		fmt.Fprintf(cmd.OutOrStdout(), "commit %s already scanned, nothing to do\n", info.SHA)
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "scanned commit %s: %d new files, %d reused, %d symbols, %d references\n",
		info.SHA, result.Phase1.NewFileCount, result.Phase1.ReusedFileCount, result.Phase2.SymbolCount, result.Phase3.ReferenceCount)

	return nil
}

// applyOverrides layers CLI flags on top of the loaded config, CLI flags winning.
func (sc *ScanCommand) applyOverrides(cfg *config.Config) {
	if sc.neo4jURI != "" {
		cfg.Neo4j.URI = sc.neo4jURI
	}

	if sc.neo4jUser != "" {
		cfg.Neo4j.User = sc.neo4jUser
	}

	if sc.neo4jPassword != "" {
		cfg.Neo4j.Password = sc.neo4jPassword
	}

	if sc.neo4jDatabase != "" {
		cfg.Neo4j.Database = sc.neo4jDatabase
	}
}

func (sc *ScanCommand) initObservability(verbose bool) (observability.Providers, error) {
	cfg := observability.DefaultConfig()
	cfg.ServiceVersion = version.Version
	cfg.OTLPEndpoint = os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	cfg.OTLPHeaders = observability.ParseOTLPHeaders(os.Getenv("OTEL_EXPORTER_OTLP_HEADERS"))
	cfg.OTLPInsecure = os.Getenv("OTEL_EXPORTER_OTLP_INSECURE") == "true"
	cfg.Mode = observability.ModeCLI
	cfg.DebugTrace = sc.debugTrace

	if sc.debugTrace || verbose {
		cfg.LogLevel = slog.LevelDebug
	}

	return observability.Init(cfg)
}
