package commands

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/jade-codes/mother/internal/config"
	"github.com/jade-codes/mother/internal/graph"
)

// ErrQuerySubcommandRequired is returned when query is invoked with no subcommand.
var ErrQuerySubcommandRequired = errors.New(
	"query requires a subcommand: symbols, file, refs-to, refs-from, files, stats, raw",
)

// QueryCommand holds connection flags shared by every query subcommand.
type QueryCommand struct {
	neo4jURI      string
	neo4jUser     string
	neo4jPassword string
	neo4jDatabase string
	configFile    string
}

// NewQueryCommand creates the query command and its seven subcommands.
func NewQueryCommand() *cobra.Command {
	qc := &QueryCommand{}

	cmd := &cobra.Command{
		Use:           "query",
		Short:         "Run a read-only query against the graph",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			return ErrQuerySubcommandRequired
		},
	}

	cmd.PersistentFlags().StringVar(&qc.neo4jURI, "neo4j-uri", "", "Neo4j connection URI (default: from config/env)")
	cmd.PersistentFlags().StringVar(&qc.neo4jUser, "neo4j-user", "", "Neo4j username (default: from config/env)")
	cmd.PersistentFlags().StringVar(&qc.neo4jPassword, "neo4j-password", "", "Neo4j password (default: from config/env)")
	cmd.PersistentFlags().StringVar(&qc.neo4jDatabase, "neo4j-database", "", "Neo4j database name (default: from config/env)")

	cmd.AddCommand(qc.symbolsCommand())
	cmd.AddCommand(qc.fileCommand())
	cmd.AddCommand(qc.refsToCommand())
	cmd.AddCommand(qc.refsFromCommand())
	cmd.AddCommand(qc.filesCommand())
	cmd.AddCommand(qc.statsCommand())
	cmd.AddCommand(qc.rawCommand())

	return cmd
}

func (qc *QueryCommand) symbolsCommand() *cobra.Command {
	return &cobra.Command{
		Use:           "symbols <pattern>",
		Short:         "Find symbols whose name contains pattern",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return qc.withStore(cmd, func(ctx context.Context, store graph.QueryStore) error {
				results, err := store.FindSymbols(ctx, args[0])
				if err != nil {
					return err
				}

				return writeSymbolsTable(cmd.OutOrStdout(), results)
			})
		},
	}
}

func (qc *QueryCommand) fileCommand() *cobra.Command {
	return &cobra.Command{
		Use:           "file <path>",
		Short:         "List every symbol defined in a file",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return qc.withStore(cmd, func(ctx context.Context, store graph.QueryStore) error {
				results, err := store.SymbolsInFile(ctx, args[0])
				if err != nil {
					return err
				}

				return writeSymbolsTable(cmd.OutOrStdout(), results)
			})
		},
	}
}

func (qc *QueryCommand) refsToCommand() *cobra.Command {
	return &cobra.Command{
		Use:           "refs-to <sym>",
		Short:         "Find references pointing at a symbol",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return qc.withStore(cmd, func(ctx context.Context, store graph.QueryStore) error {
				results, err := store.FindReferencesTo(ctx, args[0])
				if err != nil {
					return err
				}

				return writeReferencesTable(cmd.OutOrStdout(), results)
			})
		},
	}
}

func (qc *QueryCommand) refsFromCommand() *cobra.Command {
	return &cobra.Command{
		Use:           "refs-from <sym>",
		Short:         "Find references originating from a symbol",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return qc.withStore(cmd, func(ctx context.Context, store graph.QueryStore) error {
				results, err := store.FindReferencesFrom(ctx, args[0])
				if err != nil {
					return err
				}

				return writeReferencesTable(cmd.OutOrStdout(), results)
			})
		},
	}
}

func (qc *QueryCommand) filesCommand() *cobra.Command {
	return &cobra.Command{
		Use:           "files [pattern]",
		Short:         "List scanned files, optionally filtered by pattern",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			pattern := ""
			if len(args) == 1 {
				pattern = args[0]
			}

			return qc.withStore(cmd, func(ctx context.Context, store graph.QueryStore) error {
				results, err := store.ListFiles(ctx, pattern)
				if err != nil {
					return err
				}

				return writeFilesTable(cmd.OutOrStdout(), results)
			})
		},
	}
}

func (qc *QueryCommand) statsCommand() *cobra.Command {
	return &cobra.Command{
		Use:           "stats",
		Short:         "Report aggregate node and relationship counts",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return qc.withStore(cmd, func(ctx context.Context, store graph.QueryStore) error {
				stats, err := store.Stats(ctx)
				if err != nil {
					return err
				}

				return writeStatsTable(cmd.OutOrStdout(), stats)
			})
		},
	}
}

func (qc *QueryCommand) rawCommand() *cobra.Command {
	return &cobra.Command{
		Use:           "raw <cypher>",
		Short:         "Execute an arbitrary Cypher query",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return qc.withStore(cmd, func(ctx context.Context, store graph.QueryStore) error {
				rowCount, err := store.ExecuteRaw(ctx, args[0])
				if err != nil {
					return err
				}

				fmt.Fprintf(cmd.OutOrStdout(), "%d rows\n", rowCount)

				return nil
			})
		},
	}
}

// withStore resolves config, connects to Neo4j, and runs fn against the
// resulting store, closing it afterward regardless of outcome.
func (qc *QueryCommand) withStore(cmd *cobra.Command, fn func(context.Context, graph.QueryStore) error) error {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		configPath, _ = cmd.Root().PersistentFlags().GetString("config")
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	qc.applyOverrides(cfg)

	ctx := cmd.Context()

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

	return fn(ctx, store)
}

func (qc *QueryCommand) applyOverrides(cfg *config.Config) {
	if qc.neo4jURI != "" {
		cfg.Neo4j.URI = qc.neo4jURI
	}

	if qc.neo4jUser != "" {
		cfg.Neo4j.User = qc.neo4jUser
	}

	if qc.neo4jPassword != "" {
		cfg.Neo4j.Password = qc.neo4jPassword
	}

	if qc.neo4jDatabase != "" {
		cfg.Neo4j.Database = qc.neo4jDatabase
	}
}

func writeSymbolsTable(w io.Writer, results []graph.SymbolResult) error {
	tbl := table.NewWriter()
	tbl.SetOutputMirror(w)
	tbl.SetStyle(table.StyleLight)
	tbl.AppendHeader(table.Row{"Name", "Qualified Name", "Kind", "File", "Lines"})

	for _, r := range results {
		tbl.AppendRow(table.Row{r.Name, r.QualifiedName, r.Kind, r.FilePath, fmt.Sprintf("%d-%d", r.StartLine, r.EndLine)})
	}

	tbl.Render()

	return nil
}

func writeReferencesTable(w io.Writer, results []graph.ReferenceResult) error {
	tbl := table.NewWriter()
	tbl.SetOutputMirror(w)
	tbl.SetStyle(table.StyleLight)
	tbl.AppendHeader(table.Row{"Source", "Source File:Line", "Target", "Target File:Line"})

	for _, r := range results {
		tbl.AppendRow(table.Row{
			r.SourceName, fmt.Sprintf("%s:%d", r.SourceFile, r.SourceLine),
			r.TargetName, fmt.Sprintf("%s:%d", r.TargetFile, r.TargetLine),
		})
	}

	tbl.Render()

	return nil
}

func writeFilesTable(w io.Writer, results []graph.FileResult) error {
	tbl := table.NewWriter()
	tbl.SetOutputMirror(w)
	tbl.SetStyle(table.StyleLight)
	tbl.AppendHeader(table.Row{"Path", "Language", "Symbols"})

	for _, r := range results {
		tbl.AppendRow(table.Row{r.Path, r.Language, r.SymbolCount})
	}

	tbl.Render()

	return nil
}

func writeStatsTable(w io.Writer, stats graph.Stats) error {
	tbl := table.NewWriter()
	tbl.SetOutputMirror(w)
	tbl.SetStyle(table.StyleLight)
	tbl.AppendHeader(table.Row{"Metric", "Count"})
	tbl.AppendRow(table.Row{"Commits", stats.Commits})
	tbl.AppendRow(table.Row{"Files", stats.Files})
	tbl.AppendRow(table.Row{"Symbols", stats.Symbols})
	tbl.AppendRow(table.Row{"Scan Runs", stats.ScanRuns})
	tbl.AppendRow(table.Row{"References", stats.References})
	tbl.AppendRow(table.Row{"Defined In", stats.DefinedIn})
	tbl.AppendRow(table.Row{"Contains", stats.Contains})
	tbl.Render()

	return nil
}
