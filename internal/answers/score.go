package answers

import "strings"

const optionWeight = 0.8

// scoreItem returns the best score across question, answers and options (options weigh less).
func scoreItem(query string, item Item) (float64, []int) {
	best, matches := overlap(query, strings.ToLower(item.Question))

	for _, ans := range item.Answer {
		if s, m := overlap(query, strings.ToLower(ans)); s > best {
			best, matches = s, m
		}
	}
	for _, opt := range item.Options {
		s, m := overlap(query, strings.ToLower(opt))
		if s *= optionWeight; s > best {
			best, matches = s, m
		}
	}

	if best > 1 {
		best = 1
	}
	return best, matches
}

// overlap scores how well query covers text. Both must already be lower-cased.
//
//	exact match      1.0
//	substring        0.8 + 0.2 * len(query)/len(text)
//	otherwise        lcs/len(query) * (0.6 + 0.4*continuity)
func overlap(query, text string) (float64, []int) {
	if query == "" || text == "" {
		return 0, nil
	}
	q, t := []rune(query), []rune(text)

	if query == text {
		return 1, span(0, len(q))
	}
	if i := strings.Index(text, query); i >= 0 {
		start := len([]rune(text[:i]))
		return 0.8 + 0.2*float64(len(q))/float64(len(t)), span(start, len(q))
	}
	return fuzzy(q, t)
}

func fuzzy(q, t []rune) (float64, []int) {
	dp := make([][]int, len(q)+1)
	for i := range dp {
		dp[i] = make([]int, len(t)+1)
	}
	for i := 1; i <= len(q); i++ {
		for j := 1; j <= len(t); j++ {
			if q[i-1] == t[j-1] {
				dp[i][j] = dp[i-1][j-1] + 1
			} else {
				dp[i][j] = max(dp[i-1][j], dp[i][j-1])
			}
		}
	}

	lcs := dp[len(q)][len(t)]
	if lcs == 0 {
		return 0, nil
	}

	matches := make([]int, lcs)
	for i, j, k := len(q), len(t), lcs-1; i > 0 && j > 0; {
		switch {
		case q[i-1] == t[j-1]:
			matches[k] = j - 1
			k--
			i--
			j--
		case dp[i-1][j] > dp[i][j-1]:
			i--
		default:
			j--
		}
	}

	score := float64(lcs) / float64(len(q))
	return score * (0.6 + 0.4*continuity(matches)), matches
}

// continuity is the share of adjacent match positions.
func continuity(matches []int) float64 {
	if len(matches) <= 1 {
		return 0
	}
	adjacent := 0
	for i := 1; i < len(matches); i++ {
		if matches[i] == matches[i-1]+1 {
			adjacent++
		}
	}
	return float64(adjacent) / float64(len(matches)-1)
}

func span(start, n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = start + i
	}
	return out
}
