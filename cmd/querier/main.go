// Command querier answers boolean queries read from standard input against an
// index built by the indexer.
//
//	querier [-config file] pageDirectory indexFilename
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"TSE/index_service"
	"TSE/internal/config"
	"TSE/internal/logger"
	"TSE/internal/pagedir"
	"TSE/internal/reverse_index"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "path to config file")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [-config file] pageDirectory indexFilename\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "Wrong number of arguments")
		flag.Usage()
		return 1
	}
	pageDirectory, indexFilename := flag.Arg(0), flag.Arg(1)

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		return 1
	}
	logger.Setup(cfg.Logging.Level, cfg.Logging.Format)

	dir := pagedir.NewDirStore(pageDirectory)
	if !dir.Validate() {
		fmt.Fprintln(os.Stderr, "Invalid page directory")
		return 1
	}
	if !pagedir.ValidateReadFile(indexFilename) {
		fmt.Fprintln(os.Stderr, "Invalid index file")
		return 1
	}
	if !pagedir.ValidateReadFile(filepath.Join(pageDirectory, "1")) {
		fmt.Fprintln(os.Stderr, "Couldn't read first file")
		return 1
	}

	var store pagedir.PageStore = dir
	if cfg.PageStore.Cache != "" {
		cached, err := pagedir.OpenCachedStore(dir, cfg.PageStore.Cache, cfg.PageStore.CacheDir)
		if err != nil {
			slog.Error("failed to open page cache", "error", err)
			return 1
		}
		defer cached.Close()
		store = cached
		slog.Debug("page cache opened", "path", cfg.PageStore.CacheDir, "pages", cached.Cached())
	}

	idx, err := reverse_index.Reconstruct(indexFilename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Couldn't load index: %v\n", err)
		return 1
	}
	defer idx.Delete()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	searcher := index_service.NewSearcher(idx, store, cfg.Query.ScoreboardCapacity)
	if err := searcher.Run(ctx, os.Stdin, os.Stdout, os.Stderr, isTerminal(os.Stdin)); err != nil {
		slog.Error("query loop stopped", "error", err)
		return 1
	}
	return 0
}

// isTerminal reports whether f is a character device, i.e. a keyboard.
func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
