// Command indextest loads an index file and writes it back out, so the two
// files can be compared to check that persistence round-trips.
//
//	indextest [-config file] oldIndexFilename newIndexFilename
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"TSE/internal/config"
	"TSE/internal/logger"
	"TSE/internal/pagedir"
	"TSE/internal/reverse_index"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

func run(args []string, stderr io.Writer) int {
	flags := flag.NewFlagSet("indextest", flag.ContinueOnError)
	flags.SetOutput(stderr)
	configPath := flags.String("config", "", "path to config file")
	flags.Usage = func() {
		fmt.Fprintln(stderr, "usage: indextest [-config file] oldIndexFilename newIndexFilename")
		flags.PrintDefaults()
	}
	if err := flags.Parse(args); err != nil {
		return 1
	}
	if flags.NArg() != 2 {
		fmt.Fprintln(stderr, "Wrong number of arguments")
		flags.Usage()
		return 1
	}
	oldIndexFilename, newIndexFilename := flags.Arg(0), flags.Arg(1)

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "failed to load config: %v\n", err)
		return 1
	}
	logger.SetupWriter(stderr, cfg.Logging.Level, cfg.Logging.Format)

	idx, err := reverse_index.Reconstruct(oldIndexFilename)
	if err != nil {
		fmt.Fprintf(stderr, "Couldn't reconstruct index: %v\n", err)
		return 1
	}
	defer idx.Delete()
	// 先读完旧文件再创建新文件，两者可能是同一个路径
	if !pagedir.ValidateWriteFile(newIndexFilename) {
		fmt.Fprintln(stderr, "Couldn't open newIndexFilename")
		return 1
	}
	if err := idx.Save(newIndexFilename); err != nil {
		fmt.Fprintf(stderr, "Couldn't save file: %v\n", err)
		return 1
	}
	slog.Info("index rewritten", "from", oldIndexFilename, "to", newIndexFilename, "words", idx.Len())
	return 0
}
