package main

import (
	"context"
	"errors"
	"io"
	"log"
	"os"

	"github.com/joho/godotenv"

	"aura-cloud/gemini"
	"aura-cloud/wellness"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	if err := runFromEnv(context.Background(), "", os.Stdout); err != nil {
		if errors.Is(err, gemini.ErrMissingAPIKey) {
			log.Fatalf("config: %v", err)
		}
		log.Fatalf("schedule request failed: %v", err)
	}
}

// runFromEnv loads the credential and only then sends the request. A non-empty
// endpoint replaces the default one.
func runFromEnv(ctx context.Context, endpoint string, out io.Writer) error {
	cfg, err := gemini.ConfigFromEnv()
	if err != nil {
		return err
	}
	if endpoint != "" {
		cfg.Endpoint = endpoint
	}
	return run(ctx, cfg, out)
}

// run sends the mock student's prompt once and prints whatever comes back.
func run(ctx context.Context, cfg gemini.Config, out io.Writer) error {
	client, err := gemini.NewClient(cfg, nil)
	if err != nil {
		return err
	}

	prompt := wellness.BuildPrompt(wellness.MockStatus())
	body, err := client.Generate(ctx, prompt)
	if err != nil {
		return err
	}

	gemini.PrintResult(out, body)
	return nil
}
