// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{
			name: "short string unchanged",
			in:   "exit status 1",
			max:  40,
			want: "exit status 1",
		},
		{
			name: "exact length unchanged",
			in:   strings.Repeat("a", 40),
			max:  40,
			want: strings.Repeat("a", 40),
		},
		{
			name: "long ASCII truncated with ellipsis",
			in:   strings.Repeat("a", 50),
			max:  40,
			want: strings.Repeat("a", 37) + "...",
		},
		{
			name: "multibyte text cut on rune boundaries",
			in:   strings.Repeat("拆分工具无法打开文件", 6),
			max:  40,
			want: strings.Repeat("拆分工具无法打开文件", 3) + "拆分工具无法打...",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncate(tt.in, tt.max)
			if got != tt.want {
				t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
			}
			if !utf8.ValidString(got) {
				t.Errorf("truncate produced invalid UTF-8: %q", got)
			}
		})
	}
}
