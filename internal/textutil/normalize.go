package textutil

import (
	"strings"
	"unicode"
)

// strippedPunctuation lists punctuation that OCR renders inconsistently and
// that carries no weight when comparing subtitle text.
const strippedPunctuation = "。、．，.,!！?？・…‥:：;；「」『』()（）[]【】\"'"

// NormalizeForCompare folds text into a canonical form for similarity
// comparison: lowercase, full-width alphanumerics folded to ASCII, listed
// punctuation removed, and all whitespace removed.
func NormalizeForCompare(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range strings.ToLower(text) {
		switch {
		case unicode.IsSpace(r):
			continue
		case strings.ContainsRune(strippedPunctuation, r):
			continue
		case r >= 'ａ' && r <= 'ｚ':
			b.WriteRune(r - 'ａ' + 'a')
		case r >= 'Ａ' && r <= 'Ｚ':
			b.WriteRune(r - 'Ａ' + 'a')
		case r >= '０' && r <= '９':
			b.WriteRune(r - '０' + '0')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// CleanSubtitleText strips control characters and collapses runs of four or
// more identical characters down to one, both common OCR artifacts. Newlines
// are preserved.
func CleanSubtitleText(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	runes := make([]rune, 0, len(text))
	for _, r := range text {
		if unicode.IsControl(r) && r != '\n' {
			continue
		}
		runes = append(runes, r)
	}
	var b strings.Builder
	b.Grow(len(runes))
	for i := 0; i < len(runes); {
		j := i
		for j < len(runes) && runes[j] == runes[i] {
			j++
		}
		if j-i >= 4 {
			b.WriteRune(runes[i])
		} else {
			for k := i; k < j; k++ {
				b.WriteRune(runes[k])
			}
		}
		i = j
	}
	return strings.TrimSpace(b.String())
}
