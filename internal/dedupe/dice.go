// SPDX-License-Identifier: Apache-2.0

package dedupe

// Bigrams returns the overlapping two-rune substrings of s in order.
// A one-rune string is its own single bigram; an empty string has none.
func Bigrams(s string) []string {
	runes := []rune(s)
	switch len(runes) {
	case 0:
		return nil
	case 1:
		return []string{s}
	}
	grams := make([]string, 0, len(runes)-1)
	for i := 0; i < len(runes)-1; i++ {
		grams = append(grams, string(runes[i:i+2]))
	}
	return grams
}

// Dice returns the bigram Dice coefficient of a and b in [0,1]. Each shared
// bigram occurrence is counted once.
func Dice(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 1
	}
	aGrams, bGrams := Bigrams(a), Bigrams(b)
	counts := make(map[string]int, len(aGrams))
	for _, g := range aGrams {
		counts[g]++
	}
	overlap := 0
	for _, g := range bGrams {
		if counts[g] > 0 {
			overlap++
			counts[g]--
		}
	}
	return 2 * float64(overlap) / float64(len(aGrams)+len(bGrams))
}
