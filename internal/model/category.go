package model

import "strings"

// Категория ленты и поисковый запрос, которым она наполняется
type Category struct {
	Name  string
	Query string
}

const DefaultQuery = "세계 뉴스"

var Categories = []Category{
	{Name: "전체", Query: DefaultQuery},
	{Name: "정치", Query: "정치"},
	{Name: "경제", Query: "경제"},
	{Name: "사회", Query: "사회"},
	{Name: "생활/문화", Query: "생활 문화"},
	{Name: "IT/과학", Query: "IT 과학"},
	{Name: "세계", Query: "세계"},
}

// Поиск категории по имени без учета регистра
func CategoryByName(name string) (Category, bool) {
	name = strings.TrimSpace(name)
	for _, c := range Categories {
		if strings.EqualFold(c.Name, name) {
			return c, true
		}
	}
	return Category{}, false
}
