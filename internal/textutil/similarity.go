package textutil

// Similarity computes a normalized edit-distance similarity between two
// strings over Unicode code points. Both inputs are normalized with
// NormalizeForCompare first. The result is symmetric, 1.0 for identical
// strings and 0.0 for maximally different strings; strings whose normalized
// lengths differ by more than 30% score 0.0 outright, since OCR noise never
// changes length that much within one on-screen subtitle.
func Similarity(a, b string) float64 {
	na := NormalizeForCompare(a)
	nb := NormalizeForCompare(b)
	if na == nb {
		return 1.0
	}
	if na == "" || nb == "" {
		return 0.0
	}
	ra := []rune(na)
	rb := []rune(nb)
	shorter, longer := len(ra), len(rb)
	if shorter > longer {
		shorter, longer = longer, shorter
	}
	if float64(shorter)/float64(longer) < 0.7 {
		return 0.0
	}
	distance := editDistance(ra, rb)
	return 1.0 - float64(distance)/float64(longer)
}

// editDistance computes the Levenshtein distance between two rune slices
// using a rolling single-row table.
func editDistance(a, b []rune) int {
	if len(a) < len(b) {
		a, b = b, a
	}
	if len(b) == 0 {
		return len(a)
	}
	row := make([]int, len(b)+1)
	for j := range row {
		row[j] = j
	}
	for i, ca := range a {
		prev := row[0]
		row[0] = i + 1
		for j, cb := range b {
			insert := row[j+1] + 1
			remove := row[j] + 1
			replace := prev
			if ca != cb {
				replace++
			}
			prev = row[j+1]
			row[j+1] = min(insert, remove, replace)
		}
	}
	return row[len(b)]
}
