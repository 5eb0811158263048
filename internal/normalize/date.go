package normalize

import (
	"strings"
	"time"
)

const (
	// Формат даты публикации в ответе API: "Wed, 9 Feb 2026 10:15:00 +0900"
	SourceDateLayout = "Mon, 2 Jan 2006 15:04:05 -0700"
	// Формат даты для показа
	DisplayDateLayout = "2006.01.02 15:04"
)

// DateFormatter переводит дату из формата API в формат для показа.
type DateFormatter struct {
	// Часовой пояс отображения. Если nil, дата показывается в поясе источника
	location *time.Location
}

func NewDateFormatter(location *time.Location) *DateFormatter {
	return &DateFormatter{location: location}
}

// Format возвращает дату в виде "yyyy.MM.dd HH:mm".
// Если дату разобрать не удалось, строка возвращается как есть.
func (f *DateFormatter) Format(raw string) string {
	t, err := time.Parse(SourceDateLayout, strings.TrimSpace(raw))
	if err != nil {
		return raw
	}

	if f != nil && f.location != nil {
		t = t.In(f.location)
	}

	return t.Format(DisplayDateLayout)
}
