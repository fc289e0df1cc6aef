package index_service

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"TSE/internal/logger"
	"TSE/internal/querier"
	"TSE/internal/scoreboard"
	"TSE/types"
)

// Searcher answers queries against a loaded index and resolves URLs through
// the page store.
type Searcher struct {
	index    querier.PostingSource
	pages    scoreboard.URLSource
	capacity int
}

func NewSearcher(index querier.PostingSource, pages scoreboard.URLSource, capacity int) *Searcher {
	return &Searcher{index: index, pages: pages, capacity: capacity}
}

// Result is one evaluated query.
type Result struct {
	Words []string
	Query *types.TermQuery
	Board *scoreboard.Scoreboard
}

// Search evaluates one line of input. Malformed queries come back as a
// *querier.QueryError.
func (s *Searcher) Search(ctx context.Context, line string) (*Result, error) {
	log := logger.FromContext(ctx)
	words, err := querier.Parse(line)
	if err != nil {
		log.Debug("query rejected", "query", line, "error", err)
		return nil, err
	}
	q := querier.Build(words)
	scores, err := querier.Evaluate(s.index, q)
	if err != nil {
		return nil, err
	}
	defer scores.Delete()
	board := scoreboard.New(scores, s.capacity)
	log.Info("query evaluated", "query", q.String(), "matches", board.Len())
	return &Result{Words: words, Query: q, Board: board}, nil
}

// Run reads queries from in, one per line, until EOF or ctx is done. Results
// go to out and query errors to errOut; a bad query never stops the loop.
// The "Query? " prompt is printed only when interactive is set.
func (s *Searcher) Run(ctx context.Context, in io.Reader, out, errOut io.Writer, interactive bool) error {
	prompt := func() {
		if interactive {
			fmt.Fprint(out, "Query? ")
		}
	}
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 4096), 1<<20)

	prompt()
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line := scanner.Text()
		reqCtx := logger.WithRequestID(ctx, uuid.NewString())

		result, err := s.Search(reqCtx, line)
		var qe *querier.QueryError
		switch {
		case errors.As(err, &qe):
			fmt.Fprintf(errOut, "Error: %s\n\n", qe.Error())
			prompt()
			continue
		case err != nil:
			return err
		}
		if len(result.Words) == 0 {
			prompt()
			continue
		}

		fmt.Fprintf(out, "Query: %s \n", strings.Join(result.Words, " "))
		if err := result.Board.Print(out, s.pages); err != nil {
			return err
		}
		result.Board.Delete()
		prompt()
	}
	if interactive {
		fmt.Fprintln(out)
	}
	return scanner.Err()
}
