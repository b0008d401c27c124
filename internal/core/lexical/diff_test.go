package lexical

import (
	"reflect"
	"testing"

	"github.com/baditaflorin/go_titular_frequency/internal/core/domain"
)

func TestRatio(t *testing.T) {
	tests := []struct {
		a, b     string
		expected float64
	}{
		{"", "", 1.0},
		{"abc", "abc", 1.0},
		{"abc", "xyz", 0.0},
		{"abcd", "bcde", 0.75}, // 2*3/(4+4)
	}
	for _, tc := range tests {
		if got := ratio([]rune(tc.a), []rune(tc.b)); got != tc.expected {
			t.Errorf("ratio(%q, %q) = %v, want %v", tc.a, tc.b, got, tc.expected)
		}
	}
}

func TestConflictPairs(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want []domain.ConflictPair
	}{
		{
			name: "Replacement",
			a:    "JOSE",
			b:    "JOSÉ",
			want: []domain.ConflictPair{{From: "E", To: "É"}},
		},
		{
			name: "Deletion",
			a:    "S.A.",
			b:    "SA",
			want: []domain.ConflictPair{{From: ".", To: "∅"}},
		},
		{
			name: "Insertion",
			a:    "SA",
			b:    "S.A.",
			want: []domain.ConflictPair{{From: "∅", To: "."}},
		},
		{
			name: "Equal strings",
			a:    "GARCIA",
			b:    "GARCIA",
			want: nil,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := conflictPairs(tc.a, tc.b)
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("conflictPairs(%q, %q) = %v, want %v", tc.a, tc.b, got, tc.want)
			}
		})
	}
}

func TestOpcodesRoundTrip(t *testing.T) {
	a := []rune("GARCIA S.A. FILIAL")
	b := []rune("GARCIA SA (FILIAL)")

	// Replaying the opcodes over a must reproduce b exactly.
	var rebuilt []rune
	for _, op := range opcodes(a, b) {
		switch op.tag {
		case "equal":
			rebuilt = append(rebuilt, a[op.i1:op.i2]...)
		case "replace", "insert":
			rebuilt = append(rebuilt, b[op.j1:op.j2]...)
		case "delete":
			// dropped
		}
	}
	if string(rebuilt) != string(b) {
		t.Errorf("opcode replay = %q, want %q", string(rebuilt), string(b))
	}
}
