package querier

import (
	"TSE/internal/union"
	"TSE/types"
	"TSE/util"
)

// PostingSource yields the postings of one word, or nil when the word is not
// indexed. *reverse_index.InvertedIndex satisfies it.
type PostingSource interface {
	Get(word string) *util.CountingMap
}

// Evaluate scores a query tree against src and returns a new docID -> score
// map owned by the caller. A nil tree matches nothing.
//
// Inside an AND node the first child seeds the accumulator and every later
// child is intersected into it, keeping the smaller score. Children of an OR
// node are unioned with their scores added.
func Evaluate(src PostingSource, q *types.TermQuery) (*util.CountingMap, error) {
	acc := union.New()
	if q.Empty() {
		return acc.Consume(), nil
	}

	switch {
	case q.Keyword != "":
		if err := acc.Disjunction(src.Get(q.Keyword)); err != nil {
			return nil, err
		}
	case len(q.Must) > 0:
		for i, sub := range q.Must {
			scores, err := evaluateChild(src, sub)
			if err != nil {
				acc.Delete()
				return nil, err
			}
			if i == 0 {
				err = acc.Disjunction(scores)
			} else {
				err = acc.Conjunction(scores)
			}
			if err != nil {
				return nil, err
			}
		}
	default:
		for _, sub := range q.Should {
			scores, err := evaluateChild(src, sub)
			if err != nil {
				acc.Delete()
				return nil, err
			}
			if err := acc.Disjunction(scores); err != nil {
				return nil, err
			}
		}
	}
	return acc.Consume(), nil
}

// evaluateChild avoids copying leaf postings: the index map is only read.
func evaluateChild(src PostingSource, q *types.TermQuery) (*util.CountingMap, error) {
	if q != nil && q.Keyword != "" {
		return src.Get(q.Keyword), nil
	}
	return Evaluate(src, q)
}

// Query parses, validates and evaluates one line of user input. The returned
// words are the normalized query, suitable for echoing back.
func Query(src PostingSource, line string) ([]string, *util.CountingMap, error) {
	words, err := Parse(line)
	if err != nil {
		return nil, nil, err
	}
	scores, err := Evaluate(src, Build(words))
	if err != nil {
		return nil, nil, err
	}
	return words, scores, nil
}
