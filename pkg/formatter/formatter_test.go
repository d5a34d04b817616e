package formatter

import (
	"reflect"
	"testing"
)

func TestNormalizeHashtags(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "bare tags get a hash",
			in:   []string{"golang", "backend"},
			want: []string{"#golang", "#backend"},
		},
		{
			name: "existing hashes are not doubled",
			in:   []string{"#golang", "##backend"},
			want: []string{"#golang", "#backend"},
		},
		{
			name: "whitespace stripped and empties dropped",
			in:   []string{" #go lang ", "", "  ", "#"},
			want: []string{"#golang"},
		},
		{
			name: "nil input",
			in:   nil,
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeHashtags(tt.in); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("NormalizeHashtags(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestComposeCaption(t *testing.T) {
	tests := []struct {
		name     string
		caption  string
		hashtags []string
		want     string
	}{
		{
			name:     "caption with tags",
			caption:  "Launch day!",
			hashtags: []string{"launch", "startup"},
			want:     "Launch day!\n\n#launch #startup",
		},
		{
			name:    "caption only",
			caption: "Launch day!",
			want:    "Launch day!",
		},
		{
			name:     "tags only",
			hashtags: []string{"launch"},
			want:     "#launch",
		},
		{
			name: "both empty",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ComposeCaption(tt.caption, tt.hashtags); got != tt.want {
				t.Errorf("ComposeCaption() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatCount(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1K"},
		{1234, "1.2K"},
		{56000, "56K"},
		{1_000_000, "1M"},
		{5_600_000, "5.6M"},
	}
	for _, tt := range tests {
		if got := FormatCount(tt.in); got != tt.want {
			t.Errorf("FormatCount(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
