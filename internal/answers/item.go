// Package answers holds the question bank served by the search API: CSV import and fuzzy matching.
package answers

// Item is one question with its options and accepted answers.
type Item struct {
	Type     string   `json:"type"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Answer   []string `json:"answer"`
}

// Match is a scored search hit.
type Match struct {
	Item    Item    `json:"item"`
	Score   float64 `json:"score"`
	Matched string  `json:"matched"`
	// Matches holds rune offsets into the field that produced Score.
	Matches []int `json:"matches"`
}
