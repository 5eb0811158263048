package feed

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"github.com/tomakado/containers/set"

	"github.com/kovalyov-valentin/world-news-bot/internal/fetcher"
	"github.com/kovalyov-valentin/world-news-bot/internal/model"
	"github.com/kovalyov-valentin/world-news-bot/internal/normalize"
)

var (
	ErrEmptyQuery             = errors.New("empty query")
	ErrStopped                = errors.New("feed engine stopped")
	ErrCredentialsUnavailable = errors.New("api credentials are not available")
)

const (
	DefaultPageSize      = 10
	DefaultRetryDelay    = 500 * time.Millisecond
	DefaultMaxRetryDelay = 8 * time.Second
	DefaultMaxRetries    = 20
)

// Поставщик ключей API
type CredentialProvider interface {
	Credentials() (model.Credentials, bool)
	// Закрывается, когда ключи появились
	Ready() <-chan struct{}
}

type Config struct {
	PageSize int
	// Пауза перед повтором запроса, пока нет ключей. Удваивается с каждой попыткой
	RetryDelay    time.Duration
	MaxRetryDelay time.Duration
	// После стольких попыток без ключей лента переходит в ошибку
	MaxRetries int
}

func (c Config) withDefaults() Config {
	if c.PageSize <= 0 {
		c.PageSize = DefaultPageSize
	}
	if c.RetryDelay <= 0 {
		c.RetryDelay = DefaultRetryDelay
	}
	if c.MaxRetryDelay < c.RetryDelay {
		c.MaxRetryDelay = c.RetryDelay
	}
	if c.MaxRetries <= 0 {
		c.MaxRetries = DefaultMaxRetries
	}
	return c
}

type requestMode int

const (
	modeRefresh requestMode = iota
	modeMore
)

func (m requestMode) String() string {
	if m == modeMore {
		return "more"
	}
	return "refresh"
}

// Запрос, отложенный до появления ключей
type pendingRequest struct {
	generation uint64
	mode       requestMode
	timer      *time.Timer
}

// Engine движок синхронизации ленты.
// Состояние меняет только горутина Run: все операции становятся командами в очереди,
// а результаты загрузок возвращаются в ту же очередь.
type Engine struct {
	slot       *fetcher.Slot
	creds      CredentialProvider
	normalizer *normalize.Normalizer
	cfg        Config

	cmds chan func()
	done chan struct{}

	subsMu sync.Mutex
	subs   []func(model.FeedState)

	// Поля ниже принадлежат горутине Run
	ctx        context.Context
	state      model.FeedState
	generation uint64
	pending    *pendingRequest
	attempts   int
	readySeen  bool
}

func NewEngine(pages fetcher.PageFetcher, creds CredentialProvider, normalizer *normalize.Normalizer, cfg Config) *Engine {
	cfg = cfg.withDefaults()
	if normalizer == nil {
		normalizer = normalize.NewNormalizer(nil)
	}

	return &Engine{
		slot:       fetcher.NewSlot(pages),
		creds:      creds,
		normalizer: normalizer,
		cfg:        cfg,
		cmds:       make(chan func(), 64),
		done:       make(chan struct{}),
		state: model.FeedState{
			PageOffset: 1,
			PageSize:   cfg.PageSize,
			Status:     model.StatusIdle,
		},
	}
}

// Subscribe регистрирует наблюдателя. Наблюдатель вызывается из горутины Run
// с копией состояния после каждого изменения и не должен вызывать методы Engine.
func (e *Engine) Subscribe(fn func(model.FeedState)) {
	e.subsMu.Lock()
	defer e.subsMu.Unlock()

	e.subs = append(e.subs, fn)
}

// Run обрабатывает команды до отмены контекста. Вызывается один раз
func (e *Engine) Run(ctx context.Context) error {
	e.ctx = ctx
	defer close(e.done)
	defer e.stop()

	for {
		// Ждем события о ключах, только пока есть отложенный запрос
		var ready <-chan struct{}
		if e.pending != nil && !e.readySeen {
			ready = e.creds.Ready()
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case cmd := <-e.cmds:
			cmd()
		case <-ready:
			e.readySeen = true
			e.onCredentialsReady()
		}
	}
}

// SetQuery сбрасывает курсор и загружает первую страницу нового запроса
func (e *Engine) SetQuery(query string) error {
	query = strings.TrimSpace(query)
	if query == "" {
		return ErrEmptyQuery
	}

	return e.call(func() { e.setQuery(query) })
}

// Refresh перезагружает текущий запрос с первой страницы
func (e *Engine) Refresh() error {
	return e.call(func() {
		if e.state.Query == "" {
			return
		}
		e.setQuery(e.state.Query)
	})
}

// LoadMore запрашивает следующую страницу. Возвращает false, если запрос не принят:
// продолжения нет или загрузка уже идет
func (e *Engine) LoadMore() bool {
	var accepted bool
	if err := e.call(func() { accepted = e.loadMore() }); err != nil {
		return false
	}
	return accepted
}

// State возвращает согласованный снимок состояния
func (e *Engine) State() model.FeedState {
	var snapshot model.FeedState
	if err := e.call(func() { snapshot = e.state.Clone() }); err != nil {
		return model.FeedState{}
	}
	return snapshot
}

func (e *Engine) post(cmd func()) bool {
	select {
	case e.cmds <- cmd:
		return true
	case <-e.done:
		return false
	}
}

// call ставит команду в очередь и ждет ее выполнения
func (e *Engine) call(fn func()) error {
	finished := make(chan struct{})
	if !e.post(func() {
		fn()
		close(finished)
	}) {
		return ErrStopped
	}

	select {
	case <-finished:
		return nil
	case <-e.done:
		select {
		case <-finished:
			return nil
		default:
			return ErrStopped
		}
	}
}

func (e *Engine) setQuery(query string) {
	e.cancelRequests()
	e.generation++

	s := &e.state
	s.Query = query
	s.PageOffset = 1
	s.HasMore = true
	s.LastError = ""
	s.IsLoading = true
	s.IsLoadingMore = false
	s.Status = model.StatusRefreshing
	s.Generation = e.generation

	log.Debug().Str("query", query).Uint64("generation", e.generation).Msg("feed query set")

	e.attempts = 0
	e.request(modeRefresh)
	e.publish()
}

func (e *Engine) loadMore() bool {
	s := &e.state
	if s.Query == "" || !s.HasMore || s.IsLoading || s.IsLoadingMore || e.slot.InFlight() || e.pending != nil {
		log.Debug().
			Bool("has_more", s.HasMore).
			Bool("loading", s.IsLoading).
			Bool("loading_more", s.IsLoadingMore).
			Msg("load more skipped")
		return false
	}

	s.PageOffset += s.PageSize
	s.IsLoadingMore = true
	s.LastError = ""
	s.Status = model.StatusLoadingMore

	e.attempts = 0
	e.request(modeMore)
	e.publish()
	return true
}

// request запускает загрузку текущей страницы или откладывает ее до появления ключей
func (e *Engine) request(mode requestMode) {
	creds, ok := e.creds.Credentials()
	if !ok {
		e.deferRequest(mode)
		return
	}
	e.attempts = 0

	req := model.PageRequest{
		Query:       e.state.Query,
		Offset:      e.state.PageOffset,
		PageSize:    e.state.PageSize,
		Credentials: creds,
	}
	generation := e.generation

	log.Debug().
		Str("query", req.Query).
		Int("offset", req.Offset).
		Stringer("mode", mode).
		Msg("fetching page")

	e.slot.Go(e.ctx, req, func(res fetcher.Result) {
		e.post(func() { e.complete(generation, mode, res) })
	})
}

func (e *Engine) deferRequest(mode requestMode) {
	e.attempts++
	if e.attempts > e.cfg.MaxRetries {
		log.Warn().Int("attempts", e.attempts-1).Msg("credentials did not arrive, giving up")
		e.attempts = 0
		e.fail(mode, ErrCredentialsUnavailable)
		return
	}

	delay := e.retryDelay(e.attempts)
	p := &pendingRequest{generation: e.generation, mode: mode}
	p.timer = time.AfterFunc(delay, func() {
		e.post(func() { e.retryPending(p) })
	})
	e.pending = p

	log.Debug().Int("attempt", e.attempts).Dur("delay", delay).Msg("credentials not ready, request deferred")
}

func (e *Engine) retryDelay(attempt int) time.Duration {
	delay := e.cfg.RetryDelay
	for i := 1; i < attempt && delay < e.cfg.MaxRetryDelay; i++ {
		delay *= 2
	}
	if delay > e.cfg.MaxRetryDelay {
		delay = e.cfg.MaxRetryDelay
	}
	return delay
}

func (e *Engine) retryPending(p *pendingRequest) {
	if e.pending != p || p.generation != e.generation {
		return
	}
	e.pending = nil
	e.request(p.mode)
	e.publish()
}

func (e *Engine) onCredentialsReady() {
	p := e.pending
	if p == nil {
		return
	}
	p.timer.Stop()
	e.pending = nil

	log.Info().Msg("credentials ready, resuming deferred request")

	e.request(p.mode)
	e.publish()
}

func (e *Engine) complete(generation uint64, mode requestMode, res fetcher.Result) {
	s := &e.state
	loading := (mode == modeRefresh && s.IsLoading) || (mode == modeMore && s.IsLoadingMore)
	if generation != e.generation || !loading {
		log.Debug().Uint64("generation", generation).Msg("stale page result dropped")
		return
	}

	if res.Err != nil {
		log.Warn().Err(res.Err).Str("query", s.Query).Int("offset", res.Request.Offset).Msg("page fetch failed")
		e.fail(mode, res.Err)
		e.publish()
		return
	}

	page := lo.UniqBy(e.normalizer.Articles(res.Articles), func(a model.DisplayArticle) string {
		return a.Link
	})

	switch mode {
	case modeRefresh:
		s.Items = page
	case modeMore:
		seen := set.New(lo.Map(s.Items, func(a model.DisplayArticle, _ int) string {
			return a.Link
		})...)
		fresh := lo.Filter(page, func(a model.DisplayArticle, _ int) bool {
			return !seen.Contains(a.Link)
		})
		s.Items = append(s.Items, fresh...)
	}

	s.HasMore = len(res.Articles) >= s.PageSize
	s.IsLoading = false
	s.IsLoadingMore = false
	s.LastError = ""
	s.Status = model.StatusIdle

	log.Debug().
		Str("query", s.Query).
		Int("received", len(res.Articles)).
		Int("total", len(s.Items)).
		Bool("has_more", s.HasMore).
		Msg("page applied")

	e.publish()
}

// fail переводит ленту в ошибку. Список статей не трогается,
// а курсор неудачной дозагрузки возвращается назад, чтобы ее можно было повторить.
// После неудачной первой страницы в списке лежат статьи прошлого запроса,
// дозагружать к ним страницы нового нельзя, поэтому продолжение закрывается до Refresh
func (e *Engine) fail(mode requestMode, err error) {
	s := &e.state
	switch {
	case mode == modeMore && s.IsLoadingMore:
		s.PageOffset -= s.PageSize
	case mode == modeRefresh:
		s.HasMore = false
	}
	s.IsLoading = false
	s.IsLoadingMore = false
	s.LastError = err.Error()
	s.Status = model.StatusError
}

func (e *Engine) cancelRequests() {
	e.slot.Cancel()
	if e.pending != nil {
		e.pending.timer.Stop()
		e.pending = nil
	}
}

func (e *Engine) stop() {
	e.cancelRequests()
}

func (e *Engine) publish() {
	e.subsMu.Lock()
	subs := append(([]func(model.FeedState))(nil), e.subs...)
	e.subsMu.Unlock()

	for _, fn := range subs {
		fn(e.state.Clone())
	}
}
