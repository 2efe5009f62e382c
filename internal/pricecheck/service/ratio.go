package service

// indelDistance is the insert/delete edit distance: len(a)+len(b)-2*LCS(a,b), over runes.
func indelDistance(ra, rb []rune) int {
	al, bl := len(ra), len(rb)
	if al == 0 || bl == 0 {
		return al + bl
	}
	// two rolling LCS rows
	prev := make([]int, bl+1)
	cur := make([]int, bl+1)
	for i := 1; i <= al; i++ {
		for j := 1; j <= bl; j++ {
			switch {
			case ra[i-1] == rb[j-1]:
				cur[j] = prev[j-1] + 1
			case prev[j] >= cur[j-1]:
				cur[j] = prev[j]
			default:
				cur[j] = cur[j-1]
			}
		}
		prev, cur = cur, prev
	}
	return al + bl - 2*prev[bl]
}

// Ratio is the normalized indel similarity on a 0..100 scale.
// Identical strings (including two empty ones) score 100.
func Ratio(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	total := len(ra) + len(rb)
	if total == 0 {
		return 100
	}
	return 100 * (1 - float64(indelDistance(ra, rb))/float64(total))
}
