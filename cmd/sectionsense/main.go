// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	sectionsense "github.com/Sachin007-lgtm/Section-Sense"
	"github.com/Sachin007-lgtm/Section-Sense/ai"
	"github.com/Sachin007-lgtm/Section-Sense/core"
	"github.com/Sachin007-lgtm/Section-Sense/search"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "sectionsense",
		Usage: "Semantic search over criminal law sections",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "db",
				Aliases: []string{"d"},
				Usage:   "Path to BadgerDB database directory",
				Value:   "./sections_db",
				EnvVars: []string{"SECTIONSENSE_DB"},
			},
			&cli.StringFlag{
				Name:    "embedding-host",
				Usage:   "Embedding service host URL",
				Value:   "http://localhost:11434/v1",
				EnvVars: []string{"EMBEDDING_HOST"},
			},
			&cli.StringFlag{
				Name:    "embedding-model",
				Usage:   "Embedding model name",
				Value:   "all-minilm",
				EnvVars: []string{"EMBEDDING_MODEL"},
			},
			&cli.IntFlag{
				Name:    "embedding-dim",
				Usage:   "Embedding output dimension",
				Value:   ai.DefaultDimension,
				EnvVars: []string{"EMBEDDING_DIM"},
			},
			&cli.StringFlag{
				Name:    "api-key",
				Usage:   "Embedding service API key",
				EnvVars: []string{"OPENAI_API_KEY"},
			},
		},
		Before: setup,
		Commands: []*cli.Command{
			{
				Name:      "search",
				Usage:     "Search law sections by free-text query",
				ArgsUsage: "<query>",
				Action:    searchCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "max-results",
						Aliases: []string{"n"},
						Usage:   "Maximum number of results",
						Value:   search.DefaultMaxResults,
					},
					&cli.StringFlag{
						Name:  "category",
						Usage: "Restrict results to one category",
					},
					&cli.StringFlag{
						Name:  "bailable",
						Usage: "Filter by bailability (yes/no)",
					},
					&cli.StringFlag{
						Name:  "cognizable",
						Usage: "Filter by cognizability (yes/no)",
					},
				},
			},
			{
				Name:      "suggest",
				Usage:     "Complete a partial query from titles and keywords",
				ArgsUsage: "<partial>",
				Action:    suggestCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "max",
						Aliases: []string{"n"},
						Usage:   "Maximum number of suggestions",
						Value:   5,
					},
				},
			},
			{
				Name:      "get",
				Usage:     "Show one section by its code",
				ArgsUsage: "<section-code>",
				Action:    getCommand,
			},
			{
				Name:   "categories",
				Usage:  "List the distinct categories in the corpus",
				Action: categoriesCommand,
			},
			{
				Name:   "rebuild",
				Usage:  "Build the index from stored sections and report its shape",
				Action: rebuildCommand,
			},
			{
				Name:   "analytics",
				Usage:  "Show recent query analytics",
				Action: analyticsCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "limit",
						Aliases: []string{"n"},
						Usage:   "Number of recent queries to show",
						Value:   20,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func setup(c *cli.Context) error {
	// .env is optional; flags and real env vars win.
	_ = godotenv.Load()

	var level slog.Level
	switch strings.ToLower(c.String("log-level")) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level: %s", c.String("log-level"))
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
	return nil
}

// openEngine wires an engine from the global flags. The index is in-memory
// only, so commands that score queries rebuild it on startup.
func openEngine(c *cli.Context) (*sectionsense.Engine, error) {
	cfg := ai.NewConfig(
		ai.WithEmbeddingHost(c.String("embedding-host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
		ai.WithEmbeddingDim(c.Int("embedding-dim")),
		ai.WithAPIKey(c.String("api-key")),
	)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return sectionsense.OpenEngine(c.String("db"), sectionsense.WithAIConfig(cfg))
}

func searchCommand(c *cli.Context) error {
	query := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if query == "" {
		return fmt.Errorf("a query is required")
	}

	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	ctx := context.Background()
	if err := engine.RebuildIndex(ctx); err != nil {
		return fmt.Errorf("building index: %w", err)
	}

	resp, err := engine.Search(ctx, search.Request{
		Query:      query,
		MaxResults: c.Int("max-results"),
		Category:   c.String("category"),
		Bailable:   core.ParseTriState(c.String("bailable")),
		Cognizable: core.ParseTriState(c.String("cognizable")),
	})
	if err != nil {
		return err
	}

	fmt.Printf("%d result(s) in %s [%s]\n\n",
		resp.TotalResults, resp.ExecutionTime, resp.SearchType)

	for _, result := range resp.Results {
		s := result.Section
		fmt.Printf("%2d. [%s] %s  (score %.3f, %s)\n",
			result.Rank, s.SectionCode, s.Title, result.Score, result.Source)
		if s.Category != "" {
			fmt.Printf("    category: %s", s.Category)
			if s.Severity != core.SeverityUnknown {
				fmt.Printf(", severity: %s", s.Severity)
			}
			fmt.Println()
		}
		if s.Punishment != "" {
			fmt.Printf("    punishment: %s\n", s.Punishment)
		}
	}

	if len(resp.Suggestions) > 0 {
		fmt.Println("Did you mean:")
		for _, suggestion := range resp.Suggestions {
			fmt.Printf("  - %s\n", suggestion)
		}
	}

	return nil
}

func suggestCommand(c *cli.Context) error {
	partial := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if partial == "" {
		return fmt.Errorf("a partial query is required")
	}

	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	if err := engine.RebuildIndex(context.Background()); err != nil {
		return fmt.Errorf("building index: %w", err)
	}

	for _, suggestion := range engine.Suggest(partial, c.Int("max")) {
		fmt.Println(suggestion)
	}
	return nil
}

func getCommand(c *cli.Context) error {
	code := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if code == "" {
		return fmt.Errorf("a section code is required")
	}

	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	section, err := engine.GetSection(context.Background(), code)
	if err != nil {
		return err
	}

	fmt.Printf("[%s] %s\n\n%s\n", section.SectionCode, section.Title, section.Description)
	if section.Punishment != "" {
		fmt.Printf("\nPunishment: %s\n", section.Punishment)
	}
	fmt.Printf("Bailable: %s  Cognizable: %s  Compoundable: %s\n",
		section.Bailable, section.Cognizable, section.Compoundable)
	return nil
}

func categoriesCommand(c *cli.Context) error {
	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	if err := engine.RebuildIndex(context.Background()); err != nil {
		return fmt.Errorf("building index: %w", err)
	}

	for _, category := range engine.Categories() {
		fmt.Println(category)
	}
	return nil
}

func rebuildCommand(c *cli.Context) error {
	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	if err := engine.RebuildIndex(context.Background()); err != nil {
		return err
	}

	fmt.Printf("indexed %d section(s)\n", engine.IndexSize())
	return nil
}

func analyticsCommand(c *cli.Context) error {
	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	ctx := context.Background()

	count, err := engine.QueryCount(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("%d recorded quer%s\n\n", count, pluralY(count))

	records, err := engine.RecentQueries(ctx, c.Int("limit"))
	if err != nil {
		return err
	}
	for _, record := range records {
		fmt.Printf("%s  %-8s  %3d result(s)  %8s  %q\n",
			record.Timestamp.Format("2006-01-02 15:04:05"),
			record.SearchType, record.ResultsCount, record.ExecutionTime,
			record.QueryText)
	}
	return nil
}

func pluralY(n int) string {
	if n == 1 {
		return "y"
	}
	return "ies"
}
