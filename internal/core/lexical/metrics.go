package lexical

import (
	"math"
	"sort"
	"strings"
	"unicode"
)

// jaccard returns the token Jaccard similarity of two standardized
// strings in [0,1].
func jaccard(a, b string) float64 {
	setA := tokenSet(a)
	setB := tokenSet(b)
	if len(setA) == 0 && len(setB) == 0 {
		return 0.0
	}

	inter := 0
	for tok := range setA {
		if _, ok := setB[tok]; ok {
			inter++
		}
	}
	union := len(setA) + len(setB) - inter
	if union == 0 {
		return 0.0
	}
	return float64(inter) / float64(union)
}

func tokenSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, tok := range strings.Fields(s) {
		set[tok] = struct{}{}
	}
	return set
}

// qgramVector counts the character q-grams of s.
func qgramVector(s string, q int) map[string]int {
	if s == "" || q <= 0 {
		return nil
	}
	runes := []rune(s)
	if len(runes) < q {
		return nil
	}
	vec := make(map[string]int, len(runes)-q+1)
	for i := 0; i+q <= len(runes); i++ {
		vec[string(runes[i:i+q])]++
	}
	return vec
}

// cosineQGrams returns the cosine similarity of the character q-gram
// count vectors of two standardized strings, in [0,1].
func cosineQGrams(a, b string, q int) float64 {
	va := qgramVector(a, q)
	vb := qgramVector(b, q)
	if len(va) == 0 || len(vb) == 0 {
		return 0.0
	}

	dot := 0
	var na, nb float64
	for gram, ca := range va {
		na += float64(ca * ca)
		if cb, ok := vb[gram]; ok {
			dot += ca * cb
		}
	}
	for _, cb := range vb {
		nb += float64(cb * cb)
	}
	if na == 0 || nb == 0 {
		return 0.0
	}
	return float64(dot) / (math.Sqrt(na) * math.Sqrt(nb))
}

// jaroSimilarity returns the Jaro similarity of two strings in [0,1].
func jaroSimilarity(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	la, lb := len(ra), len(rb)
	if la == 0 && lb == 0 {
		return 1.0
	}
	if la == 0 || lb == 0 {
		return 0.0
	}

	window := la
	if lb > window {
		window = lb
	}
	window = window/2 - 1
	if window < 0 {
		window = 0
	}

	matchedA := make([]bool, la)
	matchedB := make([]bool, lb)
	matches := 0
	for i := 0; i < la; i++ {
		lo := i - window
		if lo < 0 {
			lo = 0
		}
		hi := i + window + 1
		if hi > lb {
			hi = lb
		}
		for j := lo; j < hi; j++ {
			if matchedB[j] || ra[i] != rb[j] {
				continue
			}
			matchedA[i] = true
			matchedB[j] = true
			matches++
			break
		}
	}
	if matches == 0 {
		return 0.0
	}

	transpositions := 0
	j := 0
	for i := 0; i < la; i++ {
		if !matchedA[i] {
			continue
		}
		for !matchedB[j] {
			j++
		}
		if ra[i] != rb[j] {
			transpositions++
		}
		j++
	}

	m := float64(matches)
	t := float64(transpositions) / 2.0
	return (m/float64(la) + m/float64(lb) + (m-t)/m) / 3.0
}

// jaroWinkler returns the Jaro-Winkler similarity of two strings in
// [0,1], boosting pairs sharing a common prefix of up to four runes.
// The boost only applies above a Jaro score of 0.7; below that the
// pair is too dissimilar for a shared prefix to mean anything.
func jaroWinkler(a, b string) float64 {
	jaro := jaroSimilarity(a, b)
	if jaro <= 0.7 {
		return jaro
	}

	ra, rb := []rune(a), []rune(b)
	prefix := 0
	for prefix < len(ra) && prefix < len(rb) && prefix < 4 && ra[prefix] == rb[prefix] {
		prefix++
	}
	return jaro + float64(prefix)*0.1*(1.0-jaro)
}

// processTokens lowercases s, replaces every non-alphanumeric rune with
// a space and splits into fields. Diacritics are deliberately kept: the
// token-set ratio stays sensitive to accent differences while ignoring
// case and punctuation.
func processTokens(s string) map[string]struct{} {
	var sb strings.Builder
	sb.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			sb.WriteRune(unicode.ToLower(r))
		} else {
			sb.WriteByte(' ')
		}
	}
	return tokenSet(sb.String())
}

// tokenSetRatio compares the intersection-anchored token combinations
// of two strings, returning the best diff ratio in [0,1]. Word order,
// casing, punctuation and repeated tokens are ignored, so "Perez, Juan"
// scores 1 against "JUAN PEREZ".
func tokenSetRatio(a, b string) float64 {
	setA := processTokens(a)
	setB := processTokens(b)

	var inter, onlyA, onlyB []string
	for tok := range setA {
		if _, ok := setB[tok]; ok {
			inter = append(inter, tok)
		} else {
			onlyA = append(onlyA, tok)
		}
	}
	for tok := range setB {
		if _, ok := setA[tok]; !ok {
			onlyB = append(onlyB, tok)
		}
	}
	sort.Strings(inter)
	sort.Strings(onlyA)
	sort.Strings(onlyB)

	base := strings.Join(inter, " ")
	combined1 := joinNonEmpty(base, strings.Join(onlyA, " "))
	combined2 := joinNonEmpty(base, strings.Join(onlyB, " "))

	best := ratio([]rune(base), []rune(combined1))
	if r := ratio([]rune(base), []rune(combined2)); r > best {
		best = r
	}
	if r := ratio([]rune(combined1), []rune(combined2)); r > best {
		best = r
	}
	return best
}

func joinNonEmpty(a, b string) string {
	if a == "" {
		return b
	}
	if b == "" {
		return a
	}
	return a + " " + b
}
