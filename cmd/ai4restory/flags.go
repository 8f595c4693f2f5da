package main

import (
	"fmt"
	"time"

	"github.com/highestlab/ai4restory"
	"github.com/highestlab/ai4restory/ai"
	"github.com/highestlab/ai4restory/bucket"
	"github.com/highestlab/ai4restory/bucket/local"
	"github.com/highestlab/ai4restory/bucket/oci"
	"github.com/urfave/cli/v2"
)

func bucketFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "local-dir",
			Usage: "Read objects from a local directory instead of Object Storage",
		},
		&cli.StringFlag{
			Name:    "namespace",
			Usage:   "Object Storage namespace (resolved from the tenancy when empty)",
			EnvVars: []string{"NAMESPACE"},
		},
		&cli.StringFlag{
			Name:    "bucket",
			Aliases: []string{"b"},
			Usage:   "Object Storage bucket name",
			EnvVars: []string{"BUCKET_NAME"},
		},
		&cli.StringFlag{
			Name:    "oci-config",
			Usage:   "OCI configuration file (default ~/.oci/config)",
			EnvVars: []string{"OCI_CONFIG_FILE"},
		},
		&cli.StringFlag{
			Name:    "oci-profile",
			Usage:   "Profile in the OCI configuration file",
			Value:   oci.DefaultProfile,
			EnvVars: []string{"OCI_PROFILE"},
		},
	}
}

func dbFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "db",
		Aliases: []string{"d"},
		Usage:   "Path to BadgerDB database directory",
		Value:   "ai4restory_db",
		EnvVars: []string{"AI4R_DB"},
	}
}

func aiFlags() []cli.Flag {
	defaults := ai.DefaultConfig()
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "ai-host",
			Usage:   "OpenAI-compatible service host URL",
			Value:   defaults.EmbeddingHost,
			EnvVars: []string{"AI4R_AI_HOST"},
		},
		&cli.StringFlag{
			Name:    "ai-token",
			Usage:   "API token for the AI service",
			EnvVars: []string{"AI4R_AI_TOKEN"},
		},
		&cli.StringFlag{
			Name:    "embedding-model",
			Usage:   "Embedding model name",
			Value:   defaults.EmbeddingModel,
			EnvVars: []string{"AI4R_EMBEDDING_MODEL"},
		},
		&cli.StringFlag{
			Name:    "chat-model",
			Usage:   "Chat model used for answers and entity recognition",
			Value:   defaults.ChatModel,
			EnvVars: []string{"AI4R_CHAT_MODEL"},
		},
		&cli.StringFlag{
			Name:    "vision-model",
			Usage:   "Vision model used to transcribe images (defaults to the chat model)",
			EnvVars: []string{"AI4R_VISION_MODEL"},
		},
	}
}

func retryFlags(unit string) []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:  "batch-size",
			Usage: "Number of " + unit + " to embed in each batch",
			Value: 100,
		},
		&cli.IntFlag{
			Name:  "max-retries",
			Usage: "Maximum attempts for failed embedding calls",
			Value: 3,
		},
		&cli.DurationFlag{
			Name:  "retry-delay",
			Usage: "Base delay for exponential backoff",
			Value: 1 * time.Second,
		},
	}
}

func concat(groups ...[]cli.Flag) []cli.Flag {
	var flags []cli.Flag
	for _, g := range groups {
		flags = append(flags, g...)
	}
	return flags
}

func openBucket(c *cli.Context) (bucket.Bucket, error) {
	if dir := c.String("local-dir"); dir != "" {
		return local.New(dir)
	}
	return oci.New(c.Context, oci.Config{
		ConfigFile: c.String("oci-config"),
		Profile:    c.String("oci-profile"),
		Namespace:  c.String("namespace"),
		Bucket:     c.String("bucket"),
	})
}

func aiConfig(c *cli.Context) (*ai.Config, error) {
	opts := []ai.ConfigOption{
		ai.WithHost(c.String("ai-host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
		ai.WithChatModel(c.String("chat-model")),
		ai.WithVisionModel(c.String("vision-model")),
	}
	if token := c.String("ai-token"); token != "" {
		opts = append(opts, ai.WithToken(token))
	}

	cfg := ai.NewConfig(opts...)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid AI configuration: %w", err)
	}
	return cfg, nil
}

func retryPolicy(c *cli.Context) (ai.RetryPolicy, error) {
	if c.Int("max-retries") <= 0 {
		return ai.RetryPolicy{}, fmt.Errorf("max-retries must be greater than 0")
	}
	if c.Int("batch-size") <= 0 {
		return ai.RetryPolicy{}, fmt.Errorf("batch-size must be greater than 0")
	}
	policy := ai.DefaultRetryPolicy()
	policy.MaxAttempts = c.Int("max-retries")
	policy.BaseDelay = c.Duration("retry-delay")
	return policy, nil
}

// openDatabase opens the store at --db with the AI services from the flags.
func openDatabase(c *cli.Context, opts ...ai4restory.DatabaseOption) (*ai4restory.Database, error) {
	cfg, err := aiConfig(c)
	if err != nil {
		return nil, err
	}
	db, err := ai4restory.NewDatabase(c.String("db"), append([]ai4restory.DatabaseOption{ai4restory.WithAIConfig(cfg)}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}
