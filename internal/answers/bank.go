package answers

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"sync"
)

// Filter keys understood by Bank.Search. Unknown keys are ignored.
const (
	FilterType     = "type"
	FilterMinScore = "min_score"
	FilterLimit    = "limit"
)

// Bank is an in-memory question bank safe for concurrent reads and swaps.
type Bank struct {
	mu    sync.RWMutex
	items []Item
}

// NewBank returns a bank holding items.
func NewBank(items []Item) *Bank {
	b := &Bank{}
	b.Replace(items)
	return b
}

// Replace swaps the bank content.
func (b *Bank) Replace(items []Item) {
	cp := make([]Item, len(items))
	copy(cp, items)

	b.mu.Lock()
	b.items = cp
	b.mu.Unlock()
}

// Len returns the number of questions.
func (b *Bank) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.items)
}

// Search scores every question against query and returns positive hits, best first.
func (b *Bank) Search(query string, filters map[string]any) []Match {
	results := []Match{}
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return results
	}

	typ := strings.TrimSpace(stringFilter(filters, FilterType))
	minScore, _ := floatFilter(filters, FilterMinScore)
	limit, hasLimit := floatFilter(filters, FilterLimit)

	b.mu.RLock()
	for _, item := range b.items {
		if typ != "" && item.Type != typ {
			continue
		}
		score, matches := scoreItem(query, item)
		if score <= 0 || score < minScore {
			continue
		}
		if matches == nil {
			matches = []int{}
		}
		results = append(results, Match{
			Item:    item,
			Score:   score,
			Matched: query,
			Matches: matches,
		})
	}
	b.mu.RUnlock()

	sort.SliceStable(results, func(i, j int) bool { return results[i].Score > results[j].Score })
	if hasLimit && limit > 0 && limit < float64(len(results)) {
		results = results[:int(limit)]
	}
	return results
}

func stringFilter(filters map[string]any, key string) string {
	if v, ok := filters[key].(string); ok {
		return v
	}
	return ""
}

// floatFilter reads a numeric filter. NaN and infinities count as absent.
func floatFilter(filters map[string]any, key string) (float64, bool) {
	var f float64
	switch v := filters[key].(type) {
	case float64:
		f = v
	case int:
		f = float64(v)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
