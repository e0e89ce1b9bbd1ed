package mapping

// maxSuggestDistance bounds the edit distance of a suggested field name.
const maxSuggestDistance = 2

// Suggest returns the mapped field name closest to name, for "did you mean"
// hints on unknown fields. Ties go to the lexically smallest name.
func (m *Mapping) Suggest(name string) (string, bool) {
	best, bestDist := "", maxSuggestDistance+1
	for _, f := range m.Fields() {
		candidate := f.Name()
		diff := len([]rune(candidate)) - len([]rune(name))
		if diff < 0 {
			diff = -diff
		}
		if diff > maxSuggestDistance {
			continue
		}
		if d := editDistance(name, candidate); d < bestDist {
			best, bestDist = candidate, d
		}
	}
	return best, best != ""
}

// editDistance is the Damerau-Levenshtein distance of a and b: insertions,
// deletions, substitutions and adjacent transpositions each cost one.
func editDistance(a, b string) int {
	if a == b {
		return 0
	}
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	d := make([][]int, len(ra)+1)
	for i := range d {
		d[i] = make([]int, len(rb)+1)
		d[i][0] = i
	}
	for j := range d[0] {
		d[0][j] = j
	}
	for i := 1; i <= len(ra); i++ {
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			d[i][j] = min(d[i-1][j]+1, d[i][j-1]+1, d[i-1][j-1]+cost)
			if i > 1 && j > 1 && ra[i-1] == rb[j-2] && ra[i-2] == rb[j-1] {
				d[i][j] = min(d[i][j], d[i-2][j-2]+cost)
			}
		}
	}
	return d[len(ra)][len(rb)]
}
