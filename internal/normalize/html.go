package normalize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Строгая политика bluemonday выбрасывает все теги, оставляя только текст.
// Политика потокобезопасна, поэтому создаем ее один раз.
var strictPolicy = bluemonday.StrictPolicy()

// Неразрывный пробел после декодирования превращаем в обычный
var spaceReplacer = strings.NewReplacer("\u00a0", " ")

// CleanHTML убирает разметку из текстового поля API и декодирует HTML-сущности.
// "<b>Breaking &amp; News</b>" -> "Breaking & News"
func CleanHTML(text string) string {
	if text == "" {
		return ""
	}

	// bluemonday экранирует текст на выходе, поэтому сущности декодируем уже после очистки
	sanitized := strictPolicy.Sanitize(text)

	return strings.TrimSpace(spaceReplacer.Replace(html.UnescapeString(sanitized)))
}
