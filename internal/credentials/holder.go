package credentials

import (
	"sync"

	"github.com/kovalyov-valentin/world-news-bot/internal/model"
)

// Holder хранит ключи API, которые приходят асинхронно.
// Ядро знает только "ключей еще нет" и "ключи есть".
type Holder struct {
	mu    sync.RWMutex
	creds model.Credentials
	ready chan struct{}
	once  sync.Once
}

func NewHolder() *Holder {
	return &Holder{ready: make(chan struct{})}
}

// Static сразу готовый Holder, например для RSS лент без ключей
func Static(creds model.Credentials) *Holder {
	h := NewHolder()
	h.Set(creds)
	return h
}

// Set сохраняет ключи. Ready закрывается при первой валидной паре
func (h *Holder) Set(creds model.Credentials) {
	h.mu.Lock()
	h.creds = creds
	h.mu.Unlock()

	if creds.Valid() {
		h.once.Do(func() { close(h.ready) })
	}
}

func (h *Holder) Credentials() (model.Credentials, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return h.creds, h.creds.Valid()
}

// Ready закрывается, когда появляются валидные ключи
func (h *Holder) Ready() <-chan struct{} {
	return h.ready
}
