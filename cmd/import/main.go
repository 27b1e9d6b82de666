package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"time"

	"go.uber.org/zap"

	"gitlab.com/dirk.krummacker/contacts-api/internal/config"
	"gitlab.com/dirk.krummacker/contacts-api/internal/logger"
	"gitlab.com/dirk.krummacker/contacts-api/internal/model"
	"gitlab.com/dirk.krummacker/contacts-api/internal/store"
	"gitlab.com/dirk.krummacker/contacts-api/internal/validation"
)

// Usage example on the command line:
// > MONGODB_URI=mongodb://localhost:27017 DB_NAME=contacts go run main.go -file=../../scripts/contacts.json
func main() {
	filePtr := flag.String("file", "contacts.json", "the JSON file with an array of contacts to import")
	flag.Parse()

	log := logger.Must(os.Getenv("APP_ENV"))
	defer log.Sync()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("invalid configuration", zap.Error(err))
	}

	readFile, err := os.Open(*filePtr) // nosemgrep
	if err != nil {
		log.Fatal("could not open file", zap.String("file", *filePtr), zap.Error(err))
	}
	defer readFile.Close()

	var inputs []model.ContactInput
	if err := json.NewDecoder(readFile).Decode(&inputs); err != nil {
		log.Fatal("could not parse file", zap.String("file", *filePtr), zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()
	contacts, closeStore, err := store.Open(ctx, cfg)
	if err != nil {
		log.Fatal("could not open store", zap.Error(err))
	}
	defer closeStore(context.Background())

	imported, skipped := 0, 0
	for i := range inputs {
		if result := validation.ValidateContact(&inputs[i]); !result.OK {
			log.Warn("skipping incomplete contact", zap.Int("index", i), zap.Strings("missing", result.Fields()))
			skipped++
			continue
		}
		id, err := contacts.Create(ctx, &inputs[i])
		if err != nil {
			log.Error("could not import contact", zap.Int("index", i), zap.Error(err))
			skipped++
			continue
		}
		log.Debug("imported contact", zap.Int("index", i), zap.String("id", id.Hex()))
		imported++
	}
	log.Info("import finished", zap.Int("imported", imported), zap.Int("skipped", skipped))
}
