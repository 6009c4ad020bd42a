package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/hazyhaar/tashkeel/pkg/corpus"
)

func cmdImport(args []string) {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	cfgPath := fs.String("config", "config.yaml", "path to config file")
	dbPath := fs.String("db", "", "database path (overrides db_path)")
	dir := fs.String("dir", "", "corpus directory (overrides corpus_dir)")
	fs.Parse(args)

	cfg, logger := mustConfig(*cfgPath)
	if *dbPath != "" {
		cfg.DBPath = *dbPath
	}
	if *dir != "" {
		cfg.CorpusDir = *dir
	}

	store, err := corpus.OpenStore(cfg.DBPath)
	if err != nil {
		logger.Error("open store", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Hour)
	defer cancel()

	n, err := corpus.ImportDir(ctx, store, cfg.CorpusDir, logger)
	if err != nil {
		logger.Error("import failed", "imported", n, "error", err)
		os.Exit(1)
	}

	infos, err := store.ListCollections()
	if err != nil {
		logger.Error("list collections", "error", err)
		os.Exit(1)
	}
	for _, info := range infos {
		fmt.Printf("  %-20s  %6d passages  %s\n", info.ID, info.Passages, info.Title)
	}
}
