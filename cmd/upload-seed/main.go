package main

import (
	"bytes"
	"context"
	"flag"
	"log"
	"os"

	"awardcheck-backend/repository"
	"awardcheck-backend/storage"

	"github.com/joho/godotenv"
)

func main() {
	key := flag.String("key", "", "storage key to write (defaults to RECORD_SEED_PATH)")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Printf("Note: .env file not found, using system environment")
	}

	if *key == "" {
		*key = os.Getenv("RECORD_SEED_PATH")
	}
	if *key == "" {
		*key = "records.yaml"
	}

	fileStorage, err := storage.NewStorageFromEnv()
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}

	var buf bytes.Buffer
	if err := repository.EncodeSeed(&buf, repository.DefaultSeed()); err != nil {
		log.Fatalf("Failed to encode record set: %v", err)
	}

	storagePath, err := fileStorage.Upload(context.Background(), *key, &buf)
	if err != nil {
		log.Fatalf("Failed to upload record set: %v", err)
	}

	log.Printf("✓ Uploaded built-in record set to %s (%s)", storagePath, storage.ConfigFromEnv().Type)
}
