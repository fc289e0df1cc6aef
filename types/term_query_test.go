package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTermQuery_AndFlattens(t *testing.T) {
	q := NewTermQuery("cat").And(NewTermQuery("dog")).And(NewTermQuery("fish"))
	assert.Len(t, q.Must, 3)
	assert.Equal(t, "cat and dog and fish", q.String())
}

func TestTermQuery_OrFlattens(t *testing.T) {
	run := NewTermQuery("cat").And(NewTermQuery("dog"))
	q := run.Or(NewTermQuery("bird")).Or(NewTermQuery("owl"))
	assert.Len(t, q.Should, 3)
	assert.Equal(t, "(cat and dog) or bird or owl", q.String())
}

func TestTermQuery_SingleChildCollapses(t *testing.T) {
	var empty *TermQuery
	q := empty.And(NewTermQuery("cat"))
	assert.Equal(t, "cat", q.Keyword)
	assert.True(t, empty.Empty())
	assert.Equal(t, "", empty.String())
	assert.Equal(t, q, q.Or())
}

func TestTermQuery_AllEmptyIsNil(t *testing.T) {
	var empty *TermQuery
	assert.Nil(t, empty.Or(nil))
	assert.Nil(t, empty.And(&TermQuery{}))
}
