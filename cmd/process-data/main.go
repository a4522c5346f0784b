// process-data merges the raw messages and categories files, cleans the
// combined set and persists it to a SQLite store.
//
// Usage:
//
//	process-data <messages.csv> <categories.csv> <store.db>
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/lab/disaster-pipeline/internal/config"
	"github.com/lab/disaster-pipeline/internal/logging"
	"github.com/lab/disaster-pipeline/pkg/dataset"
	"github.com/lab/disaster-pipeline/pkg/store"
)

const usage = `Please provide the filepaths of the messages and categories datasets as the
first and second argument respectively, as well as the filepath of the
database to save the cleaned data to as the third argument.

Example: process-data disaster_messages.csv disaster_categories.csv DisasterResponse.db`

func main() {
	if len(os.Args) != 4 {
		fmt.Println(usage)
		os.Exit(2)
	}

	cfg := config.Load()
	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(os.Args[1], os.Args[2], os.Args[3], logger); err != nil {
		logger.Errorf("Ingestion failed: %v", err)
		os.Exit(1)
	}
}

func run(messagesPath, categoriesPath, storePath string, logger *zap.SugaredLogger) error {
	logger.Infof("Loading data... MESSAGES: %s CATEGORIES: %s", messagesPath, categoriesPath)
	messages, err := dataset.LoadMessages(messagesPath)
	if err != nil {
		return err
	}
	categories, err := dataset.LoadCategories(categoriesPath)
	if err != nil {
		return err
	}

	merged := dataset.Merge(messages, categories)

	logger.Infof("Cleaning data...")
	frame, report, err := dataset.Clean(merged)
	if err != nil {
		return err
	}
	logger.Infof("Cleaned: %s", report.Summary())

	logger.Infof("Saving data... DATABASE: %s", storePath)
	if err := store.Save(storePath, frame); err != nil {
		return err
	}

	logger.Infof("Cleaned data saved to database!")
	return nil
}
