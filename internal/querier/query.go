// Package querier turns a line of user input into a boolean query and
// evaluates it against an inverted index.
//
// A query is a sequence of words. Adjacent words and words joined by "and"
// form an AND-run; runs are separated by "or". AND binds tighter than OR.
package querier

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"TSE/types"
)

const (
	OpAnd = "and"
	OpOr  = "or"
)

var (
	ErrBadCharacter      = errors.New("bad character")
	ErrOperatorFirst     = errors.New("operator first")
	ErrOperatorLast      = errors.New("operator last")
	ErrAdjacentOperators = errors.New("adjacent operators")
)

// QueryError describes why a query was rejected. Err is one of the sentinel
// errors above; Tokens holds the offending words and Char the offending
// character for ErrBadCharacter.
type QueryError struct {
	Err     error
	Tokens  []string
	Char    rune
	Message string
}

func (e *QueryError) Error() string {
	return e.Message
}

func (e *QueryError) Unwrap() error {
	return e.Err
}

// Tokenize splits a query on runs of white space. Any character that is
// neither an ASCII letter nor white space rejects the whole query.
func Tokenize(query string) ([]string, error) {
	for _, r := range query {
		if !isLetter(r) && !unicode.IsSpace(r) {
			return nil, &QueryError{
				Err:     ErrBadCharacter,
				Char:    r,
				Message: fmt.Sprintf("bad character '%c' in query.", r),
			}
		}
	}
	return strings.Fields(query), nil
}

// Normalize lower-cases every word in place.
func Normalize(words []string) {
	for i, w := range words {
		words[i] = strings.ToLower(w)
	}
}

func IsOperator(word string) bool {
	return word == OpAnd || word == OpOr
}

// Validate checks operator placement on a normalized word sequence: no
// operator first, last, or next to another operator. An empty sequence is
// valid.
func Validate(words []string) error {
	for i, w := range words {
		if !IsOperator(w) {
			continue
		}
		if i == 0 {
			return &QueryError{
				Err:     ErrOperatorFirst,
				Tokens:  []string{w},
				Message: fmt.Sprintf("'%s' cannot be first.", w),
			}
		}
		if IsOperator(words[i-1]) {
			return &QueryError{
				Err:     ErrAdjacentOperators,
				Tokens:  []string{words[i-1], w},
				Message: fmt.Sprintf("'%s' and '%s' cannot be adjacent.", words[i-1], w),
			}
		}
	}
	if n := len(words); n > 0 && IsOperator(words[n-1]) {
		return &QueryError{
			Err:     ErrOperatorLast,
			Tokens:  []string{words[n-1]},
			Message: fmt.Sprintf("'%s' cannot be last.", words[n-1]),
		}
	}
	return nil
}

// Parse tokenizes, normalizes and validates query, returning the normalized
// words. An empty or blank query yields no words and no error.
func Parse(query string) ([]string, error) {
	words, err := Tokenize(query)
	if err != nil {
		return nil, err
	}
	Normalize(words)
	if err := Validate(words); err != nil {
		return nil, err
	}
	return words, nil
}

// Build turns a validated word sequence into a query tree: an OR of AND-runs.
// It returns nil for an empty sequence.
func Build(words []string) *types.TermQuery {
	var result, run *types.TermQuery
	for _, w := range words {
		switch w {
		case OpAnd:
			continue
		case OpOr:
			result = result.Or(run)
			run = nil
		default:
			run = run.And(types.NewTermQuery(w))
		}
	}
	return result.Or(run)
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
