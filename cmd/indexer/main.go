// Command indexer builds an index file from a crawler page directory.
//
//	indexer [-config file] pageDirectory indexFilename
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"TSE/index_service"
	"TSE/internal/config"
	"TSE/internal/logger"
	"TSE/internal/pagedir"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [-config file] pageDirectory indexFilename\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "Incorrect number of arguments")
		flag.Usage()
		os.Exit(1)
	}
	pageDirectory, indexFilename := flag.Arg(0), flag.Arg(1)

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger.Setup(cfg.Logging.Level, cfg.Logging.Format)

	dir := pagedir.NewDirStore(pageDirectory)
	if !dir.Validate() {
		fmt.Fprintln(os.Stderr, "Not a crawler directory")
		os.Exit(1)
	}
	if !pagedir.ValidateWriteFile(indexFilename) {
		fmt.Fprintln(os.Stderr, "Couldn't open indexFile")
		os.Exit(1)
	}

	var store pagedir.PageStore = dir
	if cfg.PageStore.Cache != "" {
		cached, err := pagedir.OpenCachedStore(dir, cfg.PageStore.Cache, cfg.PageStore.CacheDir)
		if err != nil {
			slog.Error("failed to open page cache", "error", err)
			os.Exit(1)
		}
		defer cached.Close()
		store = cached
		// 批量写入缓存，之后构建索引时直接命中
		if _, err := cached.Warm(); err != nil {
			slog.Error("failed to warm page cache", "error", err)
			exit(store, 1)
		}
	}

	idx, err := index_service.NewIndexer(cfg.Index.Buckets, cfg.Index.MinWordLength).Build(store)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Couldn't build index: %v\n", err)
		exit(store, 1)
	}
	if err := idx.Save(indexFilename); err != nil {
		fmt.Fprintf(os.Stderr, "Couldn't save index: %v\n", err)
		exit(store, 1)
	}
	slog.Info("index saved", "path", indexFilename, "words", idx.Len())
	idx.Delete()
}

// exit closes the page cache, which deferred calls would skip, then exits.
func exit(store pagedir.PageStore, code int) {
	if c, ok := store.(*pagedir.CachedStore); ok {
		c.Close()
	}
	os.Exit(code)
}
