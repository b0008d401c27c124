package lexical

import (
	"github.com/baditaflorin/go_titular_frequency/internal/core/domain"
)

// emptyMark stands for the missing side of an insertion or deletion in
// a conflict pair.
const emptyMark = "∅"

// match describes a common run of runes: a[aIdx:aIdx+size] equals
// b[bIdx:bIdx+size].
type match struct {
	aIdx int
	bIdx int
	size int
}

// opcode describes how to turn a[i1:i2] into b[j1:j2]. Tag is one of
// "equal", "replace", "delete" or "insert".
type opcode struct {
	tag            string
	i1, i2, j1, j2 int
}

// longestMatch finds the longest common run of a[alo:ahi] and
// b[blo:bhi], preferring the earliest match on ties, using a
// position index of b.
func longestMatch(a, b []rune, alo, ahi, blo, bhi int, b2j map[rune][]int) match {
	best := match{alo, blo, 0}
	j2len := make(map[int]int)
	for i := alo; i < ahi; i++ {
		newJ2len := make(map[int]int)
		for _, j := range b2j[a[i]] {
			if j < blo {
				continue
			}
			if j >= bhi {
				break
			}
			k := j2len[j-1] + 1
			newJ2len[j] = k
			if k > best.size {
				best = match{i - k + 1, j - k + 1, k}
			}
		}
		j2len = newJ2len
	}
	return best
}

// matchingBlocks returns the maximal common runs of a and b in order,
// terminated by a zero-length sentinel block.
func matchingBlocks(a, b []rune) []match {
	b2j := make(map[rune][]int, len(b))
	for j, r := range b {
		b2j[r] = append(b2j[r], j)
	}

	type span struct{ alo, ahi, blo, bhi int }
	queue := []span{{0, len(a), 0, len(b)}}
	var blocks []match

	for len(queue) > 0 {
		s := queue[len(queue)-1]
		queue = queue[:len(queue)-1]

		m := longestMatch(a, b, s.alo, s.ahi, s.blo, s.bhi, b2j)
		if m.size == 0 {
			continue
		}
		blocks = append(blocks, m)
		if s.alo < m.aIdx && s.blo < m.bIdx {
			queue = append(queue, span{s.alo, m.aIdx, s.blo, m.bIdx})
		}
		if m.aIdx+m.size < s.ahi && m.bIdx+m.size < s.bhi {
			queue = append(queue, span{m.aIdx + m.size, s.ahi, m.bIdx + m.size, s.bhi})
		}
	}

	// Order by position and merge adjacent runs.
	sortMatches(blocks)
	merged := blocks[:0]
	for _, m := range blocks {
		if n := len(merged); n > 0 {
			last := &merged[n-1]
			if last.aIdx+last.size == m.aIdx && last.bIdx+last.size == m.bIdx {
				last.size += m.size
				continue
			}
		}
		merged = append(merged, m)
	}

	return append(merged, match{len(a), len(b), 0})
}

func sortMatches(blocks []match) {
	// Insertion sort; block lists are short for titular-length strings.
	for i := 1; i < len(blocks); i++ {
		for j := i; j > 0 && blocks[j].aIdx < blocks[j-1].aIdx; j-- {
			blocks[j], blocks[j-1] = blocks[j-1], blocks[j]
		}
	}
}

// opcodes derives the edit script from the matching blocks.
func opcodes(a, b []rune) []opcode {
	var ops []opcode
	i, j := 0, 0
	for _, m := range matchingBlocks(a, b) {
		switch {
		case i < m.aIdx && j < m.bIdx:
			ops = append(ops, opcode{"replace", i, m.aIdx, j, m.bIdx})
		case i < m.aIdx:
			ops = append(ops, opcode{"delete", i, m.aIdx, j, m.bIdx})
		case j < m.bIdx:
			ops = append(ops, opcode{"insert", i, m.aIdx, j, m.bIdx})
		}
		if m.size > 0 {
			ops = append(ops, opcode{"equal", m.aIdx, m.aIdx + m.size, m.bIdx, m.bIdx + m.size})
		}
		i, j = m.aIdx+m.size, m.bIdx+m.size
	}
	return ops
}

// ratio returns the similarity of two rune sequences in [0,1]:
// twice the number of matched runes over the total length.
func ratio(a, b []rune) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1.0
	}
	matched := 0
	for _, m := range matchingBlocks(a, b) {
		matched += m.size
	}
	return 2.0 * float64(matched) / float64(len(a)+len(b))
}

// conflictPairs extracts the character substitutions needed to turn a
// into b, deduplicated in first-appearance order. Deletions pair the
// removed character with the empty mark and insertions the reverse.
func conflictPairs(a, b string) []domain.ConflictPair {
	ra, rb := []rune(a), []rune(b)
	var pairs []domain.ConflictPair
	seen := make(map[domain.ConflictPair]struct{})

	add := func(from, to string) {
		p := domain.ConflictPair{From: from, To: to}
		if _, ok := seen[p]; ok {
			return
		}
		seen[p] = struct{}{}
		pairs = append(pairs, p)
	}

	for _, op := range opcodes(ra, rb) {
		aSub := ra[op.i1:op.i2]
		bSub := rb[op.j1:op.j2]
		switch op.tag {
		case "replace":
			m := len(aSub)
			if len(bSub) < m {
				m = len(bSub)
			}
			for k := 0; k < m; k++ {
				add(string(aSub[k]), string(bSub[k]))
			}
			for _, r := range aSub[m:] {
				add(string(r), emptyMark)
			}
			for _, r := range bSub[m:] {
				add(emptyMark, string(r))
			}
		case "delete":
			for _, r := range aSub {
				add(string(r), emptyMark)
			}
		case "insert":
			for _, r := range bSub {
				add(emptyMark, string(r))
			}
		}
	}
	return pairs
}
