package textutil

import (
	"reflect"
	"testing"
)

func TestSegmentsSeparatesScripts(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{
			name: "han and latin in one word",
			in:   "abc春晓def",
			want: []string{"abc", "春晓", "def"},
		},
		{
			name: "spaces preserved",
			in:   "春眠不觉晓 Spring sleep",
			want: []string{"春眠不觉晓", " ", "Spring", " ", "sleep"},
		},
		{
			name: "punctuation forms its own run",
			in:   "hello, world!",
			want: []string{"hello", ",", " ", "world", "!"},
		},
		{
			name: "consecutive spaces kept",
			in:   "a  b",
			want: []string{"a", " ", " ", "b"},
		},
		{
			name: "blank line becomes single break",
			in:   "a\n\nb",
			want: []string{"a", "\n", "\n", "b"},
		},
		{
			name: "crlf normalized",
			in:   "a\r\nb",
			want: []string{"a", "\n", "b"},
		},
		{
			name: "trailing newline collapses",
			in:   "a\n",
			want: []string{"a", "\n"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Segments(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("Segments(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSegmentsEmptyInput(t *testing.T) {
	if got := Segments(""); len(got) != 0 {
		t.Fatalf("Segments(\"\") = %q, want empty", got)
	}
}

func TestHanRatio(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"", 0},
		{"hello", 0},
		{"春晓", 1},
		{"春a", 0.5},
	}
	for _, tt := range tests {
		if got := HanRatio(tt.in); got != tt.want {
			t.Errorf("HanRatio(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
