package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanHTML(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "bold with ampersand", input: "<b>Breaking &amp; News</b>", want: "Breaking & News"},
		{name: "quotes", input: "&quot;quoted&quot; and &#39;single&#39;", want: `"quoted" and 'single'`},
		{name: "angle entities", input: "a &lt; b &gt; c", want: "a < b > c"},
		{name: "nbsp becomes space", input: "one&nbsp;two", want: "one two"},
		{name: "apos", input: "it&apos;s", want: "it's"},
		{name: "nested tags", input: `<p>Hello <a href="x">world</a></p>`, want: "Hello world"},
		{name: "plain text", input: "세계 뉴스", want: "세계 뉴스"},
		{name: "empty", input: "", want: ""},
		{name: "trims", input: "  <b>x</b>  ", want: "x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanHTML(tt.input))
		})
	}
}
