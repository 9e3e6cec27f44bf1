package answers

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOverlap(t *testing.T) {
	s, m := overlap("photosynthesis", "photosynthesis")
	assert.Equal(t, 1.0, s)
	assert.Len(t, m, 14)

	s, m = overlap("cat", "the cat sat")
	assert.InDelta(t, 0.8+0.2*3.0/11.0, s, 1e-9)
	assert.Equal(t, []int{4, 5, 6}, m)

	s, m = overlap("abc", "axbxc")
	assert.InDelta(t, 0.6, s, 1e-9)
	assert.Equal(t, []int{0, 2, 4}, m)

	s, m = overlap("abd", "abxd")
	assert.InDelta(t, 0.8, s, 1e-9)
	assert.Equal(t, []int{0, 1, 3}, m)

	s, _ = overlap("xyz", "abc")
	assert.Zero(t, s)
}

func TestOverlapUsesRuneOffsets(t *testing.T) {
	_, m := overlap("叶绿体", "在叶绿体中")
	assert.Equal(t, []int{1, 2, 3}, m)

	s, _ := overlap("ab", "ab叶绿")
	assert.InDelta(t, 0.9, s, 1e-9)
}

func TestScoreItemWeighsOptionsLower(t *testing.T) {
	item := Item{Question: "zzz", Options: []string{"Paris"}}
	s, _ := scoreItem("paris", item)
	assert.InDelta(t, 0.8, s, 1e-9)

	item.Answer = []string{"paris"}
	s, _ = scoreItem("paris", item)
	assert.Equal(t, 1.0, s)
}

func testBank() *Bank {
	return NewBank([]Item{
		{Type: "单选题", Question: "光合作用发生在哪里", Options: []string{"叶绿体", "线粒体"}, Answer: []string{"叶绿体"}},
		{Type: "判断题", Question: "叶绿体含有叶绿素", Answer: []string{"正确"}},
		{Type: "单选题", Question: "Capital of France", Options: []string{"Paris", "Lyon"}, Answer: []string{"Paris"}},
	})
}

func TestBankSearchRanksAndFilters(t *testing.T) {
	bank := testBank()
	require.Equal(t, 3, bank.Len())

	results := bank.Search("  叶绿体 ", nil)
	require.Len(t, results, 2)
	assert.Equal(t, "光合作用发生在哪里", results[0].Item.Question)
	assert.Equal(t, 1.0, results[0].Score)
	assert.Equal(t, "叶绿体", results[0].Matched)
	assert.GreaterOrEqual(t, results[0].Score, results[1].Score)

	typed := bank.Search("叶绿体", map[string]any{FilterType: "判断题"})
	require.Len(t, typed, 1)
	assert.Equal(t, "叶绿体含有叶绿素", typed[0].Item.Question)

	limited := bank.Search("叶绿体", map[string]any{FilterLimit: float64(1)})
	assert.Len(t, limited, 1)

	strict := bank.Search("叶绿体", map[string]any{FilterMinScore: "0.99"})
	assert.Len(t, strict, 1)
}

func TestBankSearchIgnoresUnboundedLimits(t *testing.T) {
	bank := testBank()
	for _, limit := range []any{1e300, -1e300, "1e30", "Inf", "-Inf", "NaN", math.Inf(1), math.NaN()} {
		assert.NotPanics(t, func() {
			results := bank.Search("叶绿体", map[string]any{FilterLimit: limit})
			assert.Len(t, results, 2, "limit %v", limit)
		})
	}

	results := bank.Search("叶绿体", map[string]any{FilterMinScore: "NaN"})
	assert.Len(t, results, 2)
}

func TestBankSearchCaseInsensitive(t *testing.T) {
	results := testBank().Search("PARIS", map[string]any{"unknown": true})
	require.Len(t, results, 1)
	assert.Equal(t, "Capital of France", results[0].Item.Question)
}

func TestBankSearchEmptyQuery(t *testing.T) {
	results := testBank().Search("   ", nil)
	assert.NotNil(t, results)
	assert.Empty(t, results)
}

func TestBankReplace(t *testing.T) {
	bank := NewBank(nil)
	assert.Zero(t, bank.Len())
	bank.Replace([]Item{{Question: "q"}})
	assert.Equal(t, 1, bank.Len())
}
