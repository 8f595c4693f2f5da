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
	"errors"
	"fmt"
	"io/fs"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "ai4restory",
		Usage: "Catalogue, index and query the restoration archive",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:  "env-file",
				Usage: "Load environment variables from this file if it exists",
				Value: ".env",
			},
		},
		Before: before,
		Commands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "List the objects in the bucket",
				Action: listCommand,
				Flags: concat(bucketFlags(), []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Write the listing to an xlsx file instead of stdout",
					},
				}),
			},
			{
				Name:   "extract-metadata",
				Usage:  "Derive metadata from the object paths and write the manifest",
				Action: extractMetadataCommand,
				Flags: concat(bucketFlags(), aiFlags(), []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Manifest xlsx file to write",
						Value:   "metadata.xlsx",
					},
					&cli.BoolFlag{
						Name:  "no-ner",
						Usage: "Skip entity recognition; authors of single-token folders stay empty",
					},
				}),
			},
			{
				Name:   "ingest",
				Usage:  "Load, chunk and embed the documents listed in a manifest",
				Action: ingestCommand,
				Flags: concat(bucketFlags(), aiFlags(), retryFlags("chunks"), []cli.Flag{
					dbFlag(),
					&cli.StringFlag{
						Name:     "manifest",
						Aliases:  []string{"m"},
						Usage:    "Manifest xlsx file produced by extract-metadata",
						Required: true,
					},
					&cli.BoolFlag{
						Name:  "force",
						Usage: "Re-ingest documents that were already ingested",
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Number of documents loaded concurrently (default NumCPU/2)",
					},
				}),
			},
			{
				Name:      "search",
				Usage:     "Show the chunks most similar to a query",
				ArgsUsage: "<query>",
				Action:    searchCommand,
				Flags: concat(aiFlags(), []cli.Flag{
					dbFlag(),
					&cli.IntFlag{
						Name:    "max-hits",
						Aliases: []string{"n"},
						Usage:   "Maximum number of results",
						Value:   5,
					},
					&cli.Float64Flag{
						Name:  "min-similarity",
						Usage: "Minimum cosine similarity of a result",
					},
				}),
			},
			{
				Name:      "ask",
				Usage:     "Answer a question from the indexed documents",
				ArgsUsage: "<question>",
				Action:    askCommand,
				Flags: concat(aiFlags(), []cli.Flag{
					dbFlag(),
					&cli.IntFlag{
						Name:  "top-k",
						Usage: "Number of chunks given to the model",
						Value: 5,
					},
					&cli.Float64Flag{
						Name:  "min-similarity",
						Usage: "Minimum cosine similarity of a retrieved chunk",
					},
				}),
			},
			{
				Name:   "reembed",
				Usage:  "Recompute the embeddings of every stored chunk",
				Action: reembedCommand,
				Flags: concat(aiFlags(), retryFlags("chunks"), []cli.Flag{
					dbFlag(),
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N chunks",
						Value: 100,
					},
				}),
			},
		},
	}
}

// before loads the env file and configures logging.
func before(c *cli.Context) error {
	if err := loadEnvFile(c.String("env-file")); err != nil {
		return err
	}
	return setupLogger(c)
}

// loadEnvFile sets variables from path without overriding the environment.
// A missing file is not an error.
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
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
