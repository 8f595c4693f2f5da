package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/highestlab/ai4restory/ai"
	"github.com/highestlab/ai4restory/ai/openai"
	"github.com/highestlab/ai4restory/ingestion"
	"github.com/highestlab/ai4restory/manifest"
	"github.com/highestlab/ai4restory/metadata"
	"github.com/highestlab/ai4restory/reembed"
	"github.com/highestlab/ai4restory/search"
	"github.com/urfave/cli/v2"
)

func listCommand(c *cli.Context) error {
	b, err := openBucket(c)
	if err != nil {
		return err
	}

	names, err := b.List(c.Context)
	if err != nil {
		return fmt.Errorf("failed to list bucket: %w", err)
	}

	if out := c.String("output"); out != "" {
		records := metadata.NewExtractor(nil).Extract(c.Context, names)
		if err := manifest.WriteFile(out, records, manifest.ListingColumns...); err != nil {
			return err
		}
		fmt.Fprintf(c.App.ErrWriter, "Wrote %d objects to %s\n", len(names), out)
		return nil
	}

	for _, name := range names {
		fmt.Fprintln(c.App.Writer, name)
	}
	return nil
}

func extractMetadataCommand(c *cli.Context) error {
	b, err := openBucket(c)
	if err != nil {
		return err
	}

	names, err := b.List(c.Context)
	if err != nil {
		return fmt.Errorf("failed to list bucket: %w", err)
	}

	var recognizer ai.EntityRecognizer
	if !c.Bool("no-ner") {
		cfg, err := aiConfig(c)
		if err != nil {
			return err
		}
		recognizer, err = openai.NewEntityRecognizer(cfg)
		if err != nil {
			return fmt.Errorf("failed to create entity recognizer: %w", err)
		}
		recognizer, err = ai.NewCachingRecognizer(recognizer, cfg.EntityCacheSize)
		if err != nil {
			return err
		}
	}

	records := metadata.NewExtractor(recognizer).Extract(c.Context, names)
	out := c.String("output")
	if err := manifest.WriteFile(out, records, manifest.MetadataColumns...); err != nil {
		return err
	}
	fmt.Fprintf(c.App.ErrWriter, "Wrote metadata for %d objects to %s\n", len(records), out)
	return nil
}

func ingestCommand(c *cli.Context) error {
	entries, err := manifest.ReadFile(c.String("manifest"))
	if err != nil {
		return fmt.Errorf("failed to read manifest: %w", err)
	}

	policy, err := retryPolicy(c)
	if err != nil {
		return err
	}

	b, err := openBucket(c)
	if err != nil {
		return err
	}

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	opts := []ingestion.Option{
		ingestion.WithForce(c.Bool("force")),
		ingestion.WithBatchSize(c.Int("batch-size")),
		ingestion.WithRetryPolicy(policy),
	}
	if workers := c.Int("workers"); workers > 0 {
		opts = append(opts, ingestion.WithPoolSize(workers))
	}

	pipeline, err := db.NewIngestionPipeline(b, opts...)
	if err != nil {
		return err
	}
	defer pipeline.Release()

	report, err := pipeline.Run(c.Context, entries)
	if err != nil {
		return fmt.Errorf("ingestion failed: %w", err)
	}

	fmt.Fprintf(c.App.ErrWriter, "Documents: %d ingested, %d skipped, %d failed. Chunks stored: %d\n",
		report.Processed, report.Skipped, report.Failed, report.Chunks)
	if report.Failed > 0 {
		return fmt.Errorf("%d documents failed: %w", report.Failed, report.Err())
	}
	return nil
}

func searchCommand(c *cli.Context) error {
	query := strings.Join(c.Args().Slice(), " ")
	if strings.TrimSpace(query) == "" {
		return errors.New("a search query is required")
	}

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	searcher, err := db.NewSearcher(search.WithMinSimilarity(float32(c.Float64("min-similarity"))))
	if err != nil {
		return err
	}

	results, err := searcher.FindSimilar(c.Context, query, c.Int("max-hits"))
	if err != nil {
		return err
	}

	fmt.Fprintf(c.App.Writer, "Found %d hits\n", len(results))
	for i, hit := range results {
		fmt.Fprintf(c.App.Writer, "%d: [%0.3f] %s #%d (%s)\n%s\n\n",
			i+1, hit.Score, hit.Chunk.Path, hit.Chunk.Index, hit.Chunk.Tag, hit.Chunk.Contents)
	}
	return nil
}

func askCommand(c *cli.Context) error {
	question := strings.Join(c.Args().Slice(), " ")
	if strings.TrimSpace(question) == "" {
		return errors.New("a question is required")
	}

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	assistant, err := db.NewAssistant(c.Int("top-k"), search.WithMinSimilarity(float32(c.Float64("min-similarity"))))
	if err != nil {
		return err
	}

	answer, err := assistant.Ask(c.Context, question)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, answer.Format())
	return nil
}

func reembedCommand(c *cli.Context) error {
	policy, err := retryPolicy(c)
	if err != nil {
		return err
	}
	if c.Int("report-interval") <= 0 {
		return fmt.Errorf("report-interval must be greater than 0")
	}

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	config := &reembed.Config{
		BatchSize:      c.Int("batch-size"),
		ReportInterval: c.Int("report-interval"),
		Retry:          policy,
	}

	fmt.Fprintf(c.App.ErrWriter, "Database: %s\n", c.String("db"))
	fmt.Fprintf(c.App.ErrWriter, "Embedding host: %s\n", c.String("ai-host"))
	fmt.Fprintf(c.App.ErrWriter, "Embedding model: %s\n", c.String("embedding-model"))
	fmt.Fprintln(c.App.ErrWriter)

	if _, err := db.NewReembedder(config, c.App.ErrWriter).Run(c.Context); err != nil {
		return fmt.Errorf("reembedding failed: %w", err)
	}
	return nil
}
