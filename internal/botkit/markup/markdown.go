package markup

import (
	"fmt"
	"strings"
)

// Символы, которые MarkdownV2 телеграма требует экранировать в обычном тексте
const specialChars = "_*[]()~`>#+-=|{}.!\\"

var (
	replacer    = newEscapeReplacer(specialChars)
	urlReplacer = newEscapeReplacer(")\\")
)

func newEscapeReplacer(chars string) *strings.Replacer {
	pairs := make([]string, 0, len(chars)*2)
	for _, c := range chars {
		pairs = append(pairs, string(c), "\\"+string(c))
	}
	return strings.NewReplacer(pairs...)
}

// Функция которая делает escape спец символы markdown специально для телеграма
func EscapeForMarkdown(src string) string {
	return replacer.Replace(src)
}

func Bold(src string) string {
	return "*" + EscapeForMarkdown(src) + "*"
}

func Italic(src string) string {
	return "_" + EscapeForMarkdown(src) + "_"
}

// Link ссылка с подписью. Внутри адреса экранируются только ) и \
func Link(text, url string) string {
	return fmt.Sprintf("[%s](%s)", EscapeForMarkdown(text), urlReplacer.Replace(url))
}
