package similarity

// Ops counts the edit operations that turn a pattern into a text.
// Insertions are runes present in the text only, deletions are pattern
// runes missing from the text.
type Ops struct {
	Insertions    int
	Deletions     int
	Substitutions int
}

// Total returns the number of edits
func (o Ops) Total() int {
	return o.Insertions + o.Deletions + o.Substitutions
}

// EditOps aligns pattern against text with unit cost Levenshtein and
// returns the operation breakdown of one optimal alignment. On ties the
// backtrace prefers substitutions, then deletions, then insertions.
func EditOps(pattern, text string) Ops {
	p, t := []rune(pattern), []rune(text)
	rows, cols := len(p)+1, len(t)+1
	dist := make([][]int, rows)
	for i := range dist {
		dist[i] = make([]int, cols)
		dist[i][0] = i
	}
	for j := 0; j < cols; j++ {
		dist[0][j] = j
	}
	for i := 1; i < rows; i++ {
		for j := 1; j < cols; j++ {
			cost := 1
			if p[i-1] == t[j-1] {
				cost = 0
			}
			dist[i][j] = min(dist[i-1][j-1]+cost, dist[i-1][j]+1, dist[i][j-1]+1)
		}
	}

	var ops Ops
	i, j := len(p), len(t)
	for i > 0 || j > 0 {
		switch {
		case i > 0 && j > 0 && p[i-1] == t[j-1] && dist[i][j] == dist[i-1][j-1]:
			i, j = i-1, j-1
		case i > 0 && j > 0 && dist[i][j] == dist[i-1][j-1]+1:
			ops.Substitutions++
			i, j = i-1, j-1
		case i > 0 && dist[i][j] == dist[i-1][j]+1:
			ops.Deletions++
			i--
		default:
			ops.Insertions++
			j--
		}
	}
	return ops
}
