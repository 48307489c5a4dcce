package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/nkpandey/juris"
	"github.com/nkpandey/juris/core/pipeline"
	"github.com/nkpandey/juris/helper"
	"github.com/nkpandey/juris/model"
)

const sampleContent = `Article 14. The State shall not deny to any person equality before the law or the equal protection of the laws within the territory of India.

Article 19. All citizens shall have the right to freedom of speech and expression, to assemble peaceably and without arms, and to form associations or unions.

Article 21. No person shall be deprived of his life or personal liberty except according to procedure established by law.

Section 302 of the Indian Penal Code. Whoever commits murder shall be punished with death, or imprisonment for life, and shall also be liable to fine.

Section 378 of the Indian Penal Code. Whoever, intending to take dishonestly any movable property out of the possession of any person without that person's consent, moves that property in order to such taking, is said to commit theft.`

func main() {
	// Start a test PostgreSQL container
	teardown, dbPort, err := helper.MustStartPostgresContainer()
	if err != nil {
		log.Fatalf("Failed to start PostgreSQL container: %v", err)
	}
	defer teardown(context.Background())

	// Create database configuration using the container port
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

	// Local all-MiniLM-L6-v2 embeddings, downloaded on first run
	if err := j.UseLocalEmbedder(); err != nil {
		log.Fatalf("Failed to set up embedder: %v", err)
	}

	// Gemini answers when a key is available; otherwise echo the routing
	// decision so the example runs fully offline.
	if apiKey := os.Getenv("GEMINI_API_KEY"); apiKey != "" {
		if err := j.UseGeminiGenerator(context.Background(), apiKey, ""); err != nil {
			log.Fatalf("Failed to set up generator: %v", err)
		}
	} else {
		fmt.Println("GEMINI_API_KEY not set, using an offline echo generator")
		err := j.SetGenerator(func(ctx context.Context, prompt string) (string, error) {
			return fmt.Sprintf("(offline) would answer from prompt of %d chars", len(prompt)), nil
		})
		if err != nil {
			log.Fatalf("Failed to set up generator: %v", err)
		}
	}

	// Ingest the sample corpus
	doc := &model.Document{
		Title:   "Constitution and IPC excerpts",
		Source:  "basic_example",
		Content: []byte(sampleContent),
	}

	fmt.Println("Ingesting document...")
	config := model.DefaultIngestConfig()
	config.ChunkSize = 300
	config.Overlap = 50

	report, err := j.Ingest(context.Background(), doc, &config)
	if err != nil {
		log.Fatalf("Failed to ingest document: %v", err)
	}
	fmt.Printf("Ingestion run %s stored %d of %d chunks\n", report.RunID, report.ChunksStored, report.ChunksTotal)

	if err := j.InitRouter(context.Background()); err != nil {
		log.Fatalf("Failed to initialize router: %v", err)
	}

	// Ask one question the corpus covers and one it does not
	questions := []string{
		"What does Article 14 say about equality before the law?",
		"Who was the first president of the United States?",
	}

	queryConfig := model.DefaultQueryConfig()
	queryConfig.RelevanceThreshold = 0.4

	for _, question := range questions {
		fmt.Printf("\nQuestion: %s\n", question)

		answer, err := j.Answer(context.Background(), question, &queryConfig)
		if err != nil {
			log.Fatalf("Failed to answer: %v", err)
		}

		fmt.Printf("Path: %s\n", answer.Path)
		if len(answer.CitedChunkIDs) > 0 {
			fmt.Printf("Cited chunks: %v\n", answer.CitedChunkIDs)
		}
		fmt.Printf("Answer: %s\n", answer.Text)
	}

	fmt.Println("\nBasic example completed successfully!")
}
