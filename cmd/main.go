package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/kovalyov-valentin/world-news-bot/internal/bot"
	"github.com/kovalyov-valentin/world-news-bot/internal/bot/middleware"
	"github.com/kovalyov-valentin/world-news-bot/internal/botkit"
	"github.com/kovalyov-valentin/world-news-bot/internal/config"
	"github.com/kovalyov-valentin/world-news-bot/internal/credentials"
	"github.com/kovalyov-valentin/world-news-bot/internal/feed"
	"github.com/kovalyov-valentin/world-news-bot/internal/model"
	"github.com/kovalyov-valentin/world-news-bot/internal/normalize"
	"github.com/kovalyov-valentin/world-news-bot/internal/notifier"
	"github.com/kovalyov-valentin/world-news-bot/internal/pins"
	"github.com/kovalyov-valentin/world-news-bot/internal/reader"
	"github.com/kovalyov-valentin/world-news-bot/internal/source"
	"github.com/kovalyov-valentin/world-news-bot/internal/storage"
	"github.com/kovalyov-valentin/world-news-bot/internal/summary"
)

func main() {
	cfg := config.Get()
	setupLogger(cfg.LogLevel)

	if err := run(cfg); err != nil {
		log.Error().Err(err).Msg("world news bot failed")
		os.Exit(1)
	}
}

func run(cfg config.Config) error {
	//Graceful Shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Создаем бота, используя токен из конфига
	botAPI, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		return fmt.Errorf("create bot: %w", err)
	}

	// Инициализируем подключение к БД
	db, err := storage.Open(ctx, cfg.DatabaseDriver, cfg.DatabaseDSN)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close()

	pinStore := pins.New(storage.NewPinStorage(db))
	if err := pinStore.Load(ctx); err != nil {
		return fmt.Errorf("load pinned articles: %w", err)
	}

	location := displayLocation(cfg.DisplayTimezone)

	// Инициализируем наши зависимости
	var (
		holder = credentials.NewHolder()
		pages  = newPageFetcher(cfg)
		engine = feed.NewEngine(
			pages,
			holder,
			normalize.NewNormalizer(normalize.NewDateFormatter(location)),
			feed.Config{
				PageSize:      cfg.PageSize,
				RetryDelay:    cfg.CredentialRetryDelay,
				MaxRetryDelay: cfg.CredentialRetryMaxDelay,
				MaxRetries:    cfg.CredentialRetryAttempts,
			},
		)
		articleReader = reader.New(cfg.RequestTimeout, newSummarizer(cfg))
		feedNotifier  = notifier.New(botAPI, cfg.TelegramChatID, pinStore)
	)

	engine.Subscribe(feedNotifier.Observe)

	chatOnly := func(view botkit.ViewFunc) botkit.ViewFunc {
		return middleware.ChatOnly(cfg.TelegramChatID, view)
	}

	newsBot := botkit.New(botAPI)
	newsBot.RegisterCmdView("start", bot.ViewCmdStart())
	newsBot.RegisterCmdView("category", chatOnly(bot.ViewCmdCategory(engine)))
	newsBot.RegisterCmdView("search", chatOnly(bot.ViewCmdSearch(engine)))
	newsBot.RegisterCmdView("refresh", chatOnly(bot.ViewCmdRefresh(engine)))
	newsBot.RegisterCmdView("more", chatOnly(bot.ViewCmdMore(engine)))
	newsBot.RegisterCmdView("feed", chatOnly(bot.ViewCmdFeed(engine, pinStore)))
	newsBot.RegisterCmdView("pin", chatOnly(bot.ViewCmdPin(engine, pinStore)))
	newsBot.RegisterCmdView("unpin", chatOnly(bot.ViewCmdUnpin(engine, pinStore)))
	newsBot.RegisterCmdView("pins", bot.ViewCmdPins(pinStore))
	newsBot.RegisterCmdView("unpinsaved", chatOnly(bot.ViewCmdUnpinSaved(pinStore)))
	newsBot.RegisterCmdView("read", chatOnly(bot.ViewCmdRead(engine, articleReader)))

	// Воркер ленты
	go func(ctx context.Context) {
		if err := engine.Run(ctx); err != nil {
			if !errors.Is(err, context.Canceled) {
				log.Error().Err(err).Msg("feed engine stopped with error")
				return
			}

			log.Info().Msg("feed engine stopped")
		}
	}(ctx)

	// Воркер notifier
	go func(ctx context.Context) {
		if err := feedNotifier.Start(ctx); err != nil {
			if !errors.Is(err, context.Canceled) {
				log.Error().Err(err).Msg("failed to start notifier")
				return
			}

			log.Info().Msg("notifier stopped")
		}
	}(ctx)

	// Первая загрузка уходит сразу и ждет ключей, если их еще нет
	if err := engine.SetQuery(cfg.DefaultQuery); err != nil {
		return fmt.Errorf("start initial fetch: %w", err)
	}

	creds := model.Credentials{ClientID: cfg.ClientID, ClientSecret: cfg.ClientSecret}
	if creds.Valid() {
		holder.Set(creds)
	} else {
		log.Warn().Msg("search api credentials are not configured, feed is waiting for them")
	}

	// Запуск бота
	if err := newsBot.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("run bot: %w", err)
	}

	log.Info().Msg("bot stopped")
	return nil
}

func setupLogger(level string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	zerolog.SetGlobalLevel(lvl)
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()
}

// Без пояса в конфиге дата показывается в поясе источника
func displayLocation(name string) *time.Location {
	if name == "" {
		return nil
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Warn().Err(err).Str("timezone", name).Msg("unknown display timezone, using source offset")
		return nil
	}
	return loc
}

// API поиска и RSS для запросов, перечисленных в конфиге
func newPageFetcher(cfg config.Config) *source.Router {
	router := source.NewRouter(source.NewSearchClient(source.SearchConfig{
		Endpoint:       cfg.SearchEndpoint,
		ClientIDHeader: cfg.ClientIDHeader,
		SecretHeader:   cfg.SecretHeader,
		Timeout:        cfg.RequestTimeout,
	}))

	for _, entry := range cfg.RSSFeeds {
		query, url, ok := source.ParseRoute(entry)
		if !ok {
			log.Warn().Str("entry", entry).Msg("invalid rss feed entry")
			continue
		}
		router.Route(query, source.NewRSSSource(query, url))
		log.Info().Str("query", query).Str("url", url).Msg("rss feed routed")
	}

	return router
}

func newSummarizer(cfg config.Config) reader.Summarizer {
	s := summary.NewOpenAISummarizer(summary.Config{
		APIKey: cfg.OpenAIKey,
		Prompt: cfg.OpenAIPrompt,
		Model:  cfg.OpenAIModel,
	})
	if !s.Enabled() {
		return nil
	}
	return s
}
