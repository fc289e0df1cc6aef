package types

import "strings"

// 查询表达式的语法树，builder模式
// Must 之间是 AND（交集，取最小分），Should 之间是 OR（并集，分数相加）

type TermQuery struct {
	Must    []*TermQuery
	Should  []*TermQuery
	Keyword string
}

// NewTermQuery 叶子节点
func NewTermQuery(keyword string) *TermQuery {
	return &TermQuery{Keyword: keyword}
}

func (q *TermQuery) Empty() bool {
	return q == nil || (q.Keyword == "" && len(q.Must) == 0 && len(q.Should) == 0)
}

// And 实现 AND 逻辑
func (q *TermQuery) And(queries ...*TermQuery) *TermQuery {
	if len(queries) == 0 {
		return q
	}

	mergedMust := make([]*TermQuery, 0, 1+len(queries))

	// 扁平化：纯 Must 容器直接展开子节点
	if q.isPureMust() {
		mergedMust = append(mergedMust, q.Must...)
	} else if !q.Empty() {
		mergedMust = append(mergedMust, q)
	}

	for _, ele := range queries {
		if ele.Empty() {
			continue
		}
		if ele.isPureMust() {
			mergedMust = append(mergedMust, ele.Must...)
		} else {
			mergedMust = append(mergedMust, ele)
		}
	}

	switch len(mergedMust) {
	case 0:
		return nil
	case 1:
		return mergedMust[0]
	}
	return &TermQuery{Must: mergedMust}
}

// Or 实现 OR 逻辑 (对应 Should 字段)
func (q *TermQuery) Or(queries ...*TermQuery) *TermQuery {
	if len(queries) == 0 {
		return q
	}

	mergedShould := make([]*TermQuery, 0, 1+len(queries))

	if q.isPureShould() {
		mergedShould = append(mergedShould, q.Should...)
	} else if !q.Empty() {
		mergedShould = append(mergedShould, q)
	}

	for _, ele := range queries {
		if ele.Empty() {
			continue
		}
		if ele.isPureShould() {
			mergedShould = append(mergedShould, ele.Should...)
		} else {
			mergedShould = append(mergedShould, ele)
		}
	}

	switch len(mergedShould) {
	case 0:
		return nil
	case 1:
		return mergedShould[0]
	}
	return &TermQuery{Should: mergedShould}
}

func (q *TermQuery) isPureMust() bool {
	return q != nil && q.Keyword == "" && len(q.Should) == 0 && len(q.Must) > 0
}

func (q *TermQuery) isPureShould() bool {
	return q != nil && q.Keyword == "" && len(q.Must) == 0 && len(q.Should) > 0
}

// String renders the tree with explicit operators, e.g. "(cat and dog) or bird".
func (q *TermQuery) String() string {
	switch {
	case q.Empty():
		return ""
	case q.Keyword != "":
		return q.Keyword
	case len(q.Must) > 0:
		return join(q.Must, " and ")
	default:
		return join(q.Should, " or ")
	}
}

func join(queries []*TermQuery, sep string) string {
	parts := make([]string, 0, len(queries))
	for _, sub := range queries {
		s := sub.String()
		if sub.Keyword == "" && len(queries) > 1 {
			s = "(" + s + ")"
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, sep)
}
