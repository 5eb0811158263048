package model

// Статус ленты
type FeedStatus int

const (
	StatusIdle FeedStatus = iota
	StatusRefreshing
	StatusLoadingMore
	StatusError
)

func (s FeedStatus) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusRefreshing:
		return "refreshing"
	case StatusLoadingMore:
		return "loading_more"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// Состояние ленты. Владеет им только движок синхронизации,
// наружу уходят копии.
type FeedState struct {
	Query string
	// Курсор: позиция следующей страницы и флаг наличия продолжения
	PageOffset int
	PageSize   int
	HasMore    bool

	IsLoading     bool
	IsLoadingMore bool
	LastError     string
	Status        FeedStatus

	// Увеличивается при каждой смене запроса.
	// По нему подписчики отличают замену списка от дозагрузки
	Generation uint64

	// Уникальны по Link
	Items []DisplayArticle
}

// Копия состояния, которую можно безопасно отдать другой горутине
func (s FeedState) Clone() FeedState {
	c := s
	if s.Items != nil {
		c.Items = make([]DisplayArticle, len(s.Items))
		copy(c.Items, s.Items)
	}
	return c
}
