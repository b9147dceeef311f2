package textutil

import (
	"reflect"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Hello, World!", "hello world"},
		{"TACTICAL...", "tactical"},
		{"  extra   spaces  ", "extra spaces"},
		{"Line 1\nLine 2", "line 1 line 2"},
		{"well-known", "well known"},
		{"pause—then go", "pause then go"},
		{"One, two, THREE", "1 2 3"},
		{"twenty-one", "21"},
		{"Twenty-Nine.", "29"},
		{"twenty one", "20 1"},
		{"thirty-one", "30 1"},
		{"thirty", "30"},
		{"forty", "forty"},
		{"don't", "dont"},
		{"snake_case", "snake_case"},
		{"Việt Nam", "việt nam"},
		{"...", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.expected {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNormalizeDeterministic(t *testing.T) {
	in := "The Twenty-Two quick-brown foxes, jumped!"
	first := Normalize(in)
	for i := 0; i < 5; i++ {
		if got := Normalize(in); got != first {
			t.Fatalf("Normalize not deterministic: %q vs %q", got, first)
		}
	}
	if first != "the 22 quick brown foxes jumped" {
		t.Fatalf("unexpected normalization %q", first)
	}
}

func TestNormalizeComposesDecomposedText(t *testing.T) {
	decomposed := "cafe\u0301"
	composed := "caf\u00e9"
	if Normalize(decomposed) != Normalize(composed) {
		t.Fatalf("expected decomposed and composed forms to normalize equally: %q vs %q",
			Normalize(decomposed), Normalize(composed))
	}
}

func TestWords(t *testing.T) {
	got := Words("Hello -- world, ten!")
	want := []string{"hello", "world", "10"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Words() = %v, want %v", got, want)
	}
	if got := Words("   "); len(got) != 0 {
		t.Fatalf("Words(blank) = %v, want empty", got)
	}
}
