package markup

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeForMarkdown(t *testing.T) {
	assert.Equal(t, `2026\.02\.09 10:15`, EscapeForMarkdown("2026.02.09 10:15"))
	assert.Equal(t, `a\_b\*c\[d\]\(e\)\!`, EscapeForMarkdown("a_b*c[d](e)!"))
	assert.Equal(t, `back\\slash`, EscapeForMarkdown(`back\slash`))
	assert.Equal(t, "세계 뉴스", EscapeForMarkdown("세계 뉴스"))
}

func TestFormatting(t *testing.T) {
	assert.Equal(t, `*Breaking & News\!*`, Bold("Breaking & News!"))
	assert.Equal(t, `_1\.5_`, Italic("1.5"))
	assert.Equal(t, `[원문 보기](https://x.com/a_(b\))`, Link("원문 보기", "https://x.com/a_(b)"))
}
