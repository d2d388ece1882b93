package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Hello World", "hello-world"},
		{"  Leading and trailing  ", "leading-and-trailing"},
		{"Multiple   spaces---and-hyphens", "multiple-spaces-and-hyphens"},
		{"XXML 1.4 Released!", "xxml-1-4-released"},
		{"What's new?", "what-s-new"},
		{"ALLCAPS", "allcaps"},
		{"héllo wörld", "h-llo-w-rld"},
		{"日本語のみ", ""},
		{"---", ""},
		{"", ""},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, Slugify(tc.in), "input %q", tc.in)
	}
}
