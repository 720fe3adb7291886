package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"jamesfarrell.me/youtube-rag/api"
	"jamesfarrell.me/youtube-rag/internal/config"
	"jamesfarrell.me/youtube-rag/internal/embeddings"
	"jamesfarrell.me/youtube-rag/internal/llm"
	"jamesfarrell.me/youtube-rag/internal/rag"
	"jamesfarrell.me/youtube-rag/internal/search"
	"jamesfarrell.me/youtube-rag/internal/transcript"
	"jamesfarrell.me/youtube-rag/internal/video"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logrus.Warnf("Error loading .env file: %v", err)
	}

	creds := config.FromEnv()
	if creds.ServiceAPIKey == "" {
		logrus.Fatal("SERVICE_API_KEY environment variable must be set")
	}

	deps, err := buildDeps(context.Background(), creds)
	if err != nil {
		logrus.Fatalf("Failed to initialize pipeline: %v", err)
	}

	router := api.NewRouter(deps, creds.ServiceAPIKey)

	addr := ":8080"
	if port := os.Getenv("PORT"); port != "" {
		addr = ":" + port
	}
	logrus.Infof("Starting HTTP server on %s...", addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		logrus.Fatalf("HTTP server error: %v", err)
	}
}

func buildDeps(ctx context.Context, creds config.Credentials) (rag.Deps, error) {
	embedder, err := embeddings.FirstAvailable(embeddings.DefaultChain(creds.OpenAIAPIKey))
	if err != nil {
		return rag.Deps{}, err
	}

	generator, err := llm.NewGroqClient(ctx, llm.Options{
		APIKey:  creds.GroqAPIKey,
		BaseURL: creds.GroqBaseURL,
	})
	if err != nil {
		return rag.Deps{}, err
	}

	var searcher search.Searcher
	if creds.SerperAPIKey != "" {
		searcher = search.NewSerperClient(creds.SerperAPIKey)
	} else {
		logrus.Warn("SERPER_API_KEY not found - web enrichment disabled")
	}

	return rag.Deps{
		Transcripts: transcript.NewYouTubeProvider(),
		Titles:      video.NewTitleResolver(),
		Searcher:    searcher,
		Embedder:    embedder,
		Generator:   generator,
	}, nil
}
