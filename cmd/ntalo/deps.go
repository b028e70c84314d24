package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/ntalo/ntalo/internal/ledger"
	"github.com/ntalo/ntalo/internal/lexicon"
	"github.com/ntalo/ntalo/internal/service"
	"github.com/ntalo/ntalo/internal/storage"
)

func databasePath() (string, error) {
	if path := viper.GetString("database.path"); path != "" {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	return filepath.Join(home, ".local", "share", "ntalo", "ntalo.db"), nil
}

func openStorage() (service.Storage, error) {
	path, err := databasePath()
	if err != nil {
		return nil, err
	}

	store, err := storage.NewSQLiteStorage(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database at %s: %w", path, err)
	}

	return store, nil
}

func openEngine() (service.Storage, *ledger.Engine, error) {
	store, err := openStorage()
	if err != nil {
		return nil, nil, err
	}

	return store, ledger.New(store, lexicon.Default()), nil
}
