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
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/poiesic/grocerypick"
	"github.com/poiesic/grocerypick/ai"
	"github.com/poiesic/grocerypick/core"
	"github.com/poiesic/grocerypick/ingest"
	"github.com/poiesic/grocerypick/pipeline"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "grocerypick",
		Usage: "Grocery list generation and cheapest-product matching",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "seed",
				Usage:  "Embed and index scraped catalog products from a JSON file",
				Action: seedCommand,
				Flags: append(providerFlags(),
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "input",
						Aliases:  []string{"i"},
						Usage:    "Path to JSON file with scraped products",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of products to embed in each batch",
						Value: ingest.DefaultEmbedBatchSize,
					},
					&cli.IntFlag{
						Name:  "max-retries",
						Usage: "Maximum retry attempts for failed embedding calls",
						Value: ingest.DefaultMaxRetries,
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Base delay for exponential backoff",
						Value: ingest.DefaultRetryBaseDelay,
					},
				),
			},
			{
				Name:      "generate",
				Usage:     "Generate a structured grocery list from a free-text request",
				ArgsUsage: "<request>",
				Action:    generateCommand,
				Flags: append(providerFlags(),
					&cli.StringFlag{
						Name:    "db",
						Aliases: []string{"d"},
						Usage:   "Path to BadgerDB database directory",
						Value:   "grocerypick-db",
					},
				),
			},
			{
				Name:      "match",
				Usage:     "Generate a list and match every item to the cheapest catalog product",
				ArgsUsage: "<request>",
				Action:    matchCommand,
				Flags: append(providerFlags(),
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringSliceFlag{
						Name:  "exclude",
						Usage: "Supermarket to exclude from matching (repeatable)",
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of items matched concurrently per batch",
						Value: pipeline.DefaultBatchSize,
					},
					&cli.DurationFlag{
						Name:  "batch-delay",
						Usage: "Pause between consecutive batches",
						Value: pipeline.DefaultBatchDelay,
					},
				),
			},
			{
				Name:      "search",
				Usage:     "Keyword search over the indexed catalog",
				ArgsUsage: "<query>",
				Action:    searchCommand,
				Flags: append(providerFlags(),
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of results",
						Value: 10,
					},
				),
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func providerFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "gemini-key",
			Usage:   "Gemini API key",
			EnvVars: []string{"GEMINI_API_KEY"},
		},
		&cli.StringFlag{
			Name:    "groq-key",
			Usage:   "Groq API key",
			EnvVars: []string{"GROQ_API_KEY"},
		},
	}
}

func openPlanner(ctx context.Context, c *cli.Context) (*grocerypick.Planner, error) {
	config := ai.NewConfig(
		ai.WithGeminiAPIKey(c.String("gemini-key")),
		ai.WithGroqAPIKey(c.String("groq-key")),
	)
	return grocerypick.NewPlanner(ctx, c.String("db"), grocerypick.WithAIConfig(config))
}

func seedCommand(c *cli.Context) error {
	ctx := context.Background()

	data, err := os.ReadFile(c.String("input"))
	if err != nil {
		return fmt.Errorf("failed to read input file: %w", err)
	}

	var products []*core.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return fmt.Errorf("failed to parse input file: %w", err)
	}
	if len(products) == 0 {
		return fmt.Errorf("input file contains no products")
	}

	planner, err := openPlanner(ctx, c)
	if err != nil {
		return err
	}
	defer planner.Close()

	indexer, err := planner.NewIndexer(
		ingest.WithBatchSize(c.Int("batch-size")),
		ingest.WithRetry(c.Int("max-retries"), c.Duration("retry-delay")),
	)
	if err != nil {
		return err
	}

	stored, err := indexer.Index(ctx, products)
	if err != nil {
		return fmt.Errorf("indexing failed after %d products: %w", stored, err)
	}

	fmt.Fprintf(os.Stderr, "Indexed %d products\n", stored)
	return nil
}

func generateCommand(c *cli.Context) error {
	ctx := context.Background()

	request := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if request == "" {
		return fmt.Errorf("a free-text grocery request is required")
	}

	planner, err := openPlanner(ctx, c)
	if err != nil {
		return err
	}
	defer planner.Close()

	list, err := planner.NewListService().Generate(ctx, request, core.SupermarketFilter{})
	if err != nil {
		return err
	}

	printList(list)
	return nil
}

func matchCommand(c *cli.Context) error {
	ctx := context.Background()

	request := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if request == "" {
		return fmt.Errorf("a free-text grocery request is required")
	}

	filter := core.SupermarketFilter{Exclude: c.StringSlice("exclude")}
	if err := core.ValidateSupermarketFilter(filter); err != nil {
		return err
	}

	planner, err := openPlanner(ctx, c)
	if err != nil {
		return err
	}
	defer planner.Close()

	list, err := planner.NewListService().Generate(ctx, request, filter)
	if err != nil {
		return err
	}
	printList(list)

	orchestrator, err := planner.NewOrchestrator(
		pipeline.WithBatchSize(c.Int("batch-size")),
		pipeline.WithBatchDelay(c.Duration("batch-delay")),
	)
	if err != nil {
		return err
	}
	defer orchestrator.Release()

	results := orchestrator.ProcessAll(ctx, list.Items, filter)
	fmt.Println()
	for _, result := range results {
		if result.Failed() {
			fmt.Printf("%-30s  no match (%s)\n", result.Item, result.Err)
			continue
		}
		p := result.SelectedProduct
		fmt.Printf("%-30s  %d x %s - %s at %s\n",
			result.Item, result.Amount, p.Name, p.Price, p.Supermarket)
	}
	return nil
}

func searchCommand(c *cli.Context) error {
	ctx := context.Background()

	query := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if query == "" {
		return fmt.Errorf("a search query is required")
	}

	planner, err := openPlanner(ctx, c)
	if err != nil {
		return err
	}
	defer planner.Close()

	products, err := planner.ProductRepository().SearchByName(ctx, query, c.Int("limit"))
	if err != nil {
		return err
	}

	for _, p := range products {
		fmt.Printf("%s - %s at %s (%s)\n", p.Name, p.Price, p.Supermarket, p.Quantity)
	}
	if len(products) == 0 {
		fmt.Fprintln(os.Stderr, "No products found")
	}
	return nil
}

func printList(list *core.StructuredList) {
	fmt.Printf("%s (%s)\n", list.Title, list.Metadata)
	for _, item := range list.Items {
		fmt.Printf("  %s, %v %s\n", item.Name, item.Quantity, item.Unit)
	}
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
