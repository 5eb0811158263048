package bot

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kovalyov-valentin/world-news-bot/internal/botkit"
	"github.com/kovalyov-valentin/world-news-bot/internal/botkit/bottest"
	"github.com/kovalyov-valentin/world-news-bot/internal/model"
	pinstore "github.com/kovalyov-valentin/world-news-bot/internal/pins"
	"github.com/kovalyov-valentin/world-news-bot/internal/reader"
)

const chatID = 42

type fakeFeed struct {
	state     model.FeedState
	queries   []string
	refreshes int
	more      bool
	err       error
}

func (f *fakeFeed) SetQuery(q string) error {
	if f.err != nil {
		return f.err
	}
	f.queries = append(f.queries, q)
	return nil
}

func (f *fakeFeed) Refresh() error {
	f.refreshes++
	return f.err
}

func (f *fakeFeed) LoadMore() bool         { return f.more }
func (f *fakeFeed) State() model.FeedState { return f.state.Clone() }

type fakePins struct {
	pinned []model.PinnedArticle
	err    error
}

func (p *fakePins) Pin(_ context.Context, a model.DisplayArticle) error {
	if p.err != nil {
		return p.err
	}
	p.pinned = append([]model.PinnedArticle{{ID: a.ID, DisplayTitle: a.DisplayTitle, Link: a.Link}}, p.pinned...)
	return nil
}

func (p *fakePins) Unpin(_ context.Context, id string) error {
	if p.err != nil {
		return p.err
	}
	for i, pin := range p.pinned {
		if pin.ID == id {
			p.pinned = append(p.pinned[:i], p.pinned[i+1:]...)
			break
		}
	}
	return nil
}

func (p *fakePins) List() []model.PinnedArticle {
	return append([]model.PinnedArticle(nil), p.pinned...)
}

func (p *fakePins) IsPinned(id string) bool {
	for _, pin := range p.pinned {
		if pin.ID == id {
			return true
		}
	}
	return false
}

type fakeReader struct {
	article reader.Article
	err     error
	links   []string
}

func (r *fakeReader) Read(_ context.Context, link string) (reader.Article, error) {
	r.links = append(r.links, link)
	return r.article, r.err
}

func article(id string) model.DisplayArticle {
	return model.DisplayArticle{
		ID:                 id,
		DisplayTitle:       "제목 " + id,
		DisplayDescription: "설명 " + id,
		DisplayDate:        "2024.01.01 10:00",
		Link:               "https://news.example.com/" + id,
	}
}

func feedWith(items ...model.DisplayArticle) *fakeFeed {
	return &fakeFeed{state: model.FeedState{Query: "세계 뉴스", Items: items, HasMore: true}}
}

func run(t *testing.T, view botkit.ViewFunc, text string) *bottest.Sender {
	t.Helper()
	sender := &bottest.Sender{}
	require.NoError(t, view(context.Background(), sender, bottest.Command(chatID, text)))
	return sender
}

func TestViewCmdCategory(t *testing.T) {
	feed := feedWith()

	sender := run(t, ViewCmdCategory(feed), "/category IT/과학")
	assert.Equal(t, []string{"IT 과학"}, feed.queries)
	assert.Contains(t, sender.Last(), "IT/과학")

	sender = run(t, ViewCmdCategory(feed), "/category 날씨")
	assert.Len(t, feed.queries, 1)
	assert.Contains(t, sender.Last(), "생활/문화")
}

func TestViewCmdCategory_EngineError(t *testing.T) {
	feed := feedWith()
	feed.err = errors.New("stopped")

	err := ViewCmdCategory(feed)(context.Background(), &bottest.Sender{}, bottest.Command(chatID, "/category 정치"))
	assert.Error(t, err)
}

func TestViewCmdSearch(t *testing.T) {
	feed := feedWith()

	run(t, ViewCmdSearch(feed), "/search  우주 탐사 ")
	assert.Equal(t, []string{"우주 탐사"}, feed.queries)

	sender := run(t, ViewCmdSearch(feed), "/search")
	assert.Len(t, feed.queries, 1)
	assert.Contains(t, sender.Last(), "검색어를 입력하세요")
}

func TestViewCmdRefresh(t *testing.T) {
	feed := feedWith()
	run(t, ViewCmdRefresh(feed), "/refresh")
	assert.Equal(t, 1, feed.refreshes)
}

func TestViewCmdMore(t *testing.T) {
	tests := []struct {
		name  string
		more  bool
		state model.FeedState
		want  string
	}{
		{name: "accepted", more: true, want: "다음 기사를 불러오는 중"},
		{name: "loading", state: model.FeedState{IsLoadingMore: true, HasMore: true}, want: "이미 불러오는 중입니다"},
		{name: "exhausted", state: model.FeedState{HasMore: false}, want: "더 불러올 기사가 없습니다"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			feed := &fakeFeed{state: tt.state, more: tt.more}
			sender := run(t, ViewCmdMore(feed), "/more")
			assert.Contains(t, sender.Last(), tt.want)
		})
	}
}

func TestViewCmdFeed(t *testing.T) {
	feed := feedWith(article("a"), article("b"))
	feed.state.HasMore = false
	pins := &fakePins{pinned: []model.PinnedArticle{{ID: "b"}}}

	sender := run(t, ViewCmdFeed(feed, pins), "/feed")
	require.Len(t, sender.Messages, 1)

	text := sender.Last()
	assert.Contains(t, text, "*1\\. 제목 a*\n")
	assert.Contains(t, text, "*2\\. 제목 b* "+pinMark)
	assert.Contains(t, text, "[원문 링크](https://news.example.com/a)")
	assert.Contains(t, text, "마지막 기사입니다")
	assert.Contains(t, text, "\\(2건\\)")
}

func TestViewCmdFeed_Empty(t *testing.T) {
	tests := []struct {
		name  string
		state model.FeedState
		want  string
	}{
		{name: "loading", state: model.FeedState{IsLoading: true}, want: "불러오는 중"},
		{name: "error", state: model.FeedState{Status: model.StatusError, LastError: "no data in response"}, want: "no data in response"},
		{name: "empty", state: model.FeedState{}, want: "표시할 기사가 없습니다"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sender := run(t, ViewCmdFeed(&fakeFeed{state: tt.state}, &fakePins{}), "/feed")
			assert.Contains(t, sender.Last(), tt.want)
		})
	}
}

func TestViewCmdPin(t *testing.T) {
	feed := feedWith(article("a"), article("b"))
	pins := &fakePins{}

	sender := run(t, ViewCmdPin(feed, pins), "/pin 2")
	assert.True(t, pins.IsPinned("b"))
	assert.Contains(t, sender.Last(), "고정했습니다")

	sender = run(t, ViewCmdPin(feed, pins), "/pin 2")
	assert.Len(t, pins.pinned, 1)
	assert.Contains(t, sender.Last(), "이미 고정된 기사입니다")

	sender = run(t, ViewCmdPin(feed, pins), "/pin 3")
	assert.Len(t, pins.pinned, 1)
	assert.Contains(t, sender.Last(), "/pin <번호>")

	sender = run(t, ViewCmdPin(feed, pins), "/pin abc")
	assert.Contains(t, sender.Last(), "not a number")
}

func TestViewCmdPin_EmptyFeed(t *testing.T) {
	pins := &fakePins{}
	sender := run(t, ViewCmdPin(feedWith(), pins), "/pin 1")
	assert.Empty(t, pins.pinned)
	assert.Contains(t, sender.Last(), "표시할 기사가 없습니다")
}

func TestViewCmdPin_ArticleWithoutLink(t *testing.T) {
	pins := &fakePins{err: pinstore.ErrNoLink}
	sender := run(t, ViewCmdPin(feedWith(article("a")), pins), "/pin 1")
	assert.Contains(t, sender.Last(), "고정할 수 없습니다")
}

func TestViewCmdPin_StorageError(t *testing.T) {
	pins := &fakePins{err: errors.New("disk full")}
	err := ViewCmdPin(feedWith(article("a")), pins)(context.Background(), &bottest.Sender{}, bottest.Command(chatID, "/pin 1"))
	assert.Error(t, err)
}

func TestViewCmdUnpin(t *testing.T) {
	feed := feedWith(article("a"))
	pins := &fakePins{}

	sender := run(t, ViewCmdUnpin(feed, pins), "/unpin 1")
	assert.Contains(t, sender.Last(), "고정되지 않은 기사입니다")

	run(t, ViewCmdPin(feed, pins), "/pin 1")
	sender = run(t, ViewCmdUnpin(feed, pins), "/unpin 1")
	assert.False(t, pins.IsPinned("a"))
	assert.Contains(t, sender.Last(), "고정 해제했습니다")
}

func TestViewCmdPins(t *testing.T) {
	pins := &fakePins{}

	sender := run(t, ViewCmdPins(pins), "/pins")
	assert.Contains(t, sender.Last(), "핀된 기사가 없습니다")

	pins.pinned = []model.PinnedArticle{
		{ID: "new", DisplayTitle: "새 기사", Link: "https://news.example.com/new"},
		{ID: "old", DisplayTitle: "옛 기사", Link: "https://news.example.com/old"},
	}
	sender = run(t, ViewCmdPins(pins), "/pins")

	text := sender.Last()
	assert.Contains(t, text, "*1\\. 새 기사*")
	assert.Contains(t, text, "*2\\. 옛 기사*")
	assert.Less(t, strings.Index(text, "새 기사"), strings.Index(text, "옛 기사"))
}

func TestViewCmdUnpinSaved(t *testing.T) {
	pins := &fakePins{pinned: []model.PinnedArticle{
		{ID: "new", DisplayTitle: "새 기사"},
		{ID: "old", DisplayTitle: "옛 기사"},
	}}

	sender := run(t, ViewCmdUnpinSaved(pins), "/unpinsaved 2")
	assert.Contains(t, sender.Last(), "옛 기사")
	require.Len(t, pins.pinned, 1)
	assert.Equal(t, "new", pins.pinned[0].ID)

	sender = run(t, ViewCmdUnpinSaved(pins), "/unpinsaved 5")
	assert.Len(t, pins.pinned, 1)
	assert.Contains(t, sender.Last(), "/unpinsaved <번호>")
}

func TestViewCmdRead(t *testing.T) {
	feed := feedWith(article("a"))
	articles := &fakeReader{article: reader.Article{Title: "전체 제목", Text: "요약 내용.", Summarized: true}}

	sender := run(t, ViewCmdRead(feed, articles), "/read 1")
	assert.Equal(t, []string{"https://news.example.com/a"}, articles.links)

	text := sender.Last()
	assert.Contains(t, text, "*전체 제목*")
	assert.Contains(t, text, "_요약_")
	assert.Contains(t, text, "요약 내용\\.")
}

func TestViewCmdRead_Failure(t *testing.T) {
	articles := &fakeReader{err: errors.New("timeout")}

	sender := run(t, ViewCmdRead(feedWith(article("a")), articles), "/read 1")
	assert.Contains(t, sender.Last(), "본문을 불러오지 못했습니다")
	assert.Contains(t, sender.Last(), "https://news.example.com/a")
}

func TestViewCmdStart(t *testing.T) {
	sender := run(t, ViewCmdStart(), "/start")
	assert.Contains(t, sender.Last(), "/unpinsaved")
	assert.Contains(t, sender.Last(), "IT/과학")
}
