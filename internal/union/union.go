// Package union 查询结果的集合运算：AND 求交集取最小分，OR 求并集分数相加
package union

import (
	"errors"

	"github.com/RoaringBitmap/roaring/roaring64"

	"TSE/util"
)

var ErrConsumed = errors.New("union already consumed")

// Union wraps an accumulator of docID -> score. A nil posting map passed to
// Conjunction or Disjunction behaves as an empty one.
type Union struct {
	acc *util.CountingMap
}

func New() *Union {
	return &Union{acc: util.NewCountingMap()}
}

// Conjunction keeps only the docIDs present in both the accumulator and
// other, each scored with the smaller of the two counts.
func (u *Union) Conjunction(other *util.CountingMap) error {
	if u == nil || u.acc == nil {
		return ErrConsumed
	}
	result := util.NewCountingMap()
	if other.Len() > 0 && u.acc.Len() > 0 {
		common := roaring64.And(docSet(u.acc), docSet(other))
		it := common.Iterator()
		for it.HasNext() {
			id := int(it.Next())
			result.Set(id, min(u.acc.Get(id), other.Get(id)))
		}
	}
	u.acc.Delete()
	u.acc = result
	return nil
}

// Disjunction adds every count of other onto the accumulator. DocIDs only in
// the accumulator are left as they are.
func (u *Union) Disjunction(other *util.CountingMap) error {
	if u == nil || u.acc == nil {
		return ErrConsumed
	}
	other.Iterate(func(id, count int) {
		u.acc.Set(id, u.acc.Get(id)+count)
	})
	return nil
}

// Counter exposes the accumulator; the Union still owns it.
func (u *Union) Counter() *util.CountingMap {
	if u == nil {
		return nil
	}
	return u.acc
}

// Consume hands the accumulator to the caller and invalidates the Union.
// Later calls on the Union return ErrConsumed.
func (u *Union) Consume() *util.CountingMap {
	if u == nil {
		return nil
	}
	acc := u.acc
	u.acc = nil
	return acc
}

// Delete releases the accumulator together with the Union.
func (u *Union) Delete() {
	if u == nil || u.acc == nil {
		return
	}
	u.acc.Delete()
	u.acc = nil
}

// docSet 把计数表的 key 放进 bitmap，方便求交集；docID 是非负 int，64 位不会截断
func docSet(m *util.CountingMap) *roaring64.Bitmap {
	set := roaring64.New()
	m.Iterate(func(id, _ int) {
		set.Add(uint64(id))
	})
	return set
}
