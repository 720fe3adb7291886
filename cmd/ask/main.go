// One-shot CLI: process a YouTube URL, answer a question against it
// and optionally export the source tracking report.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"jamesfarrell.me/youtube-rag/internal/config"
	"jamesfarrell.me/youtube-rag/internal/embeddings"
	"jamesfarrell.me/youtube-rag/internal/enrich"
	"jamesfarrell.me/youtube-rag/internal/llm"
	"jamesfarrell.me/youtube-rag/internal/rag"
	"jamesfarrell.me/youtube-rag/internal/search"
	"jamesfarrell.me/youtube-rag/internal/transcript"
	"jamesfarrell.me/youtube-rag/internal/video"
)

func main() {
	preset := flag.String("preset", "balanced", "enrichment preset: transcript_only, minimal, balanced, comprehensive, academic")
	question := flag.String("question", "What is the main topic?", "question to ask about the video")
	export := flag.String("export", "", "path to export the source tracking report (optional)")
	withSources := flag.Bool("sources", false, "print the source summary alongside the answer")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: ask [flags] <youtube-url>")
		flag.PrintDefaults()
		os.Exit(2)
	}
	url := flag.Arg(0)

	if err := godotenv.Load(); err != nil {
		logrus.Debugf("no .env file loaded: %v", err)
	}

	if err := run(context.Background(), url, *preset, *question, *export, *withSources); err != nil {
		logrus.Fatalf("Error: %v", err)
	}
}

func run(ctx context.Context, url, preset, question, exportPath string, withSources bool) error {
	cfg, err := presetConfig(preset)
	if err != nil {
		return err
	}

	creds := config.FromEnv()

	embedder, err := embeddings.FirstAvailable(embeddings.DefaultChain(creds.OpenAIAPIKey))
	if err != nil {
		return err
	}
	generator, err := llm.NewGroqClient(ctx, llm.Options{APIKey: creds.GroqAPIKey, BaseURL: creds.GroqBaseURL})
	if err != nil {
		return err
	}

	var searcher search.Searcher
	if creds.SerperAPIKey != "" {
		searcher = search.NewSerperClient(creds.SerperAPIKey)
	}

	session, err := rag.CreateSession(ctx, url, cfg, rag.Deps{
		Transcripts: transcript.NewYouTubeProvider(),
		Titles:      video.NewTitleResolver(),
		Searcher:    searcher,
		Embedder:    embedder,
		Generator:   generator,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Processed: %s\n\n", session.Metadata.Title)

	if withSources {
		result, err := session.Engine.AskWithSources(ctx, question)
		if err != nil {
			return err
		}
		fmt.Printf("Q: %s\nA: %s\n\n", question, result.Answer)

		summary, err := json.MarshalIndent(result.Sources, "", "  ")
		if err != nil {
			return err
		}
		fmt.Printf("Source summary:\n%s\n", summary)
	} else {
		answer, err := session.Engine.Ask(ctx, question)
		if err != nil {
			return err
		}
		fmt.Printf("Q: %s\nA: %s\n", question, answer)
	}

	if exportPath != "" {
		if err := session.Ledger.Export(exportPath); err != nil {
			return err
		}
		fmt.Printf("\nSource tracking report saved to: %s\n", exportPath)
	}
	return nil
}

func presetConfig(name string) (enrich.Config, error) {
	switch name {
	case "transcript_only":
		return enrich.TranscriptOnly(), nil
	case "minimal":
		return enrich.PresetMinimal(), nil
	case "balanced":
		return enrich.PresetBalanced(), nil
	case "comprehensive":
		return enrich.PresetComprehensive(), nil
	case "academic":
		return enrich.PresetAcademic(), nil
	default:
		return enrich.Config{}, fmt.Errorf("unknown preset %q", name)
	}
}
