package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"

	"github.com/nkpandey/juris"
	"github.com/nkpandey/juris/core/pipeline"
	"github.com/nkpandey/juris/helper"
	"github.com/nkpandey/juris/model"
)

// Ingests a legal corpus file (plain text or PDF) and answers questions about
// it interactively. Usage:
//
//	GEMINI_API_KEY=... go run ./example/corpus constitution.pdf
func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: corpus <path to txt or pdf file>")
	}
	corpusPath := os.Args[1]

	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		log.Fatal("GEMINI_API_KEY must be set")
	}

	teardown, dbPort, err := helper.MustStartPostgresContainer()
	if err != nil {
		log.Fatalf("Failed to start PostgreSQL container: %v", err)
	}
	defer teardown(context.Background())

	dbConfig := &helper.DatabaseConfiguration{
		Host:     "localhost",
		Port:     dbPort,
		Database: "database",
		Username: "user",
		Password: "password",
		Schema:   "public",
		SSLMode:  "disable",
	}

	j, err := juris.NewJuris(dbConfig, pipeline.LocalEmbeddingDim)
	if err != nil {
		log.Fatalf("Failed to create juris: %v", err)
	}
	defer j.Close()

	if err := j.UseLocalEmbedder(); err != nil {
		log.Fatalf("Failed to set up embedder: %v", err)
	}
	if err := j.UseGeminiGenerator(context.Background(), apiKey, ""); err != nil {
		log.Fatalf("Failed to set up generator: %v", err)
	}

	fmt.Printf("Ingesting %s ...\n", corpusPath)
	report, err := j.IngestFile(context.Background(), corpusPath, nil)
	if err != nil {
		log.Fatalf("Failed to ingest corpus: %v", err)
	}
	fmt.Printf("Stored %d chunks\n", report.ChunksStored)

	if err := j.InitRouter(context.Background()); err != nil {
		log.Fatalf("Failed to initialize router: %v", err)
	}

	fmt.Println("Ask questions about the corpus (empty line to quit):")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		question := scanner.Text()
		if question == "" {
			break
		}

		answer, err := j.Answer(context.Background(), question, nil)
		if err != nil {
			if model.CauseOf(err) != "" {
				fmt.Printf("Error (%s): %v\n", model.CauseOf(err), err)
				continue
			}
			log.Fatalf("Failed to answer: %v", err)
		}

		fmt.Printf("[%s] %s\n", answer.Path, answer.Text)
		if len(answer.CitedChunkIDs) > 0 {
			fmt.Printf("Sources: %v\n", answer.CitedChunkIDs)
		}
	}
}
