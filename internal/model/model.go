package model

import "time"

// Статья в том виде, в котором ее отдает API поиска.
// Стабильного id у источника нет, поэтому идентичностью служит ссылка.
type RawArticle struct {
	Title          string `json:"title"`
	OriginalLink   string `json:"originallink"`
	Link           string `json:"link"`
	Description    string `json:"description"`
	PublishedAtRaw string `json:"pubDate"`
}

// Статья, подготовленная к показу. После создания не меняется
type DisplayArticle struct {
	// Стабильный id, выводится из ссылки
	ID                 string
	DisplayTitle       string
	DisplayDescription string
	DisplayDate        string
	Link               string
}

// Закрепленная пользователем статья
type PinnedArticle struct {
	ID                 string
	DisplayTitle       string
	DisplayDescription string
	DisplayDate        string
	Link               string
	// Время закрепления
	PinnedAt time.Time
}

// Пара ключей для API поиска
type Credentials struct {
	ClientID     string
	ClientSecret string
}

func (c Credentials) Valid() bool {
	return c.ClientID != "" && c.ClientSecret != ""
}

// Запрос одной страницы выдачи
type PageRequest struct {
	Query string
	// Позиция первой статьи страницы, начиная с 1
	Offset      int
	PageSize    int
	Credentials Credentials
}
