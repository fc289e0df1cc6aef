// Package scoreboard ranks the docID -> score map produced by a query.
package scoreboard

import (
	"fmt"
	"io"
	"log/slog"
	"sort"

	"TSE/util"
)

// URLSource resolves a docID to the URL it was crawled from.
type URLSource interface {
	URL(docID int) (string, error)
}

// Entry is one ranked document.
type Entry struct {
	DocID int
	Score int
}

// Scoreboard 按分数从高到低排好序的结果，分数相同按 docID 升序
type Scoreboard struct {
	entries []Entry
}

// New copies every (docID, score) pair of scores and sorts them. capacity is
// a sizing hint for the expected number of matches; the board grows past it
// when scores holds more.
func New(scores *util.CountingMap, capacity int) *Scoreboard {
	entries := make([]Entry, 0, max(capacity, scores.Len()))
	scores.Iterate(func(docID, score int) {
		entries = append(entries, Entry{DocID: docID, Score: score})
	})
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].DocID < entries[j].DocID
	})
	return &Scoreboard{entries: entries}
}

func (sb *Scoreboard) Len() int {
	if sb == nil {
		return 0
	}
	return len(sb.entries)
}

// Entries returns the ranked entries. The slice belongs to the scoreboard.
func (sb *Scoreboard) Entries() []Entry {
	if sb == nil {
		return nil
	}
	return sb.entries
}

// Print writes the ranked block:
//
//	2 matches ranked below
//	Score   4 | Doc   2: http://example.com/b
//	Score   2 | Doc   1: http://example.com/a
//
// followed by a blank line. A URL that cannot be resolved prints as
// "(unknown)".
func (sb *Scoreboard) Print(w io.Writer, urls URLSource) error {
	if sb.Len() == 0 {
		_, err := fmt.Fprint(w, "No matches found\n\n")
		return err
	}
	if _, err := fmt.Fprintf(w, "%d matches ranked below\n", len(sb.entries)); err != nil {
		return err
	}
	for _, e := range sb.entries {
		url, err := urls.URL(e.DocID)
		if err != nil {
			slog.Warn("url lookup failed", slog.Int("docID", e.DocID), slog.Any("err", err))
			url = "(unknown)"
		}
		if _, err := fmt.Fprintf(w, "Score %3d | Doc %3d: %s\n", e.Score, e.DocID, url); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w)
	return err
}

// Delete releases the entries.
func (sb *Scoreboard) Delete() {
	if sb == nil {
		return
	}
	sb.entries = nil
}
