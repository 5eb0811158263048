package config

import (
	"sync"
	"time"

	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfighcl"
	"github.com/rs/zerolog/log"
)

// Конфиг читается из hcl файла и переменных окружения с префиксом WNF
type Config struct {
	TelegramBotToken string `hcl:"telegram_bot_token" env:"TELEGRAM_BOT_TOKEN" required:"true"`
	// Чат, в котором живет лента. Управлять лентой можно только из него
	TelegramChatID int64 `hcl:"telegram_chat_id" env:"TELEGRAM_CHAT_ID" required:"true"`

	// Ключи API поиска. Могут прийти позже, лента их дождется
	ClientID     string `hcl:"client_id" env:"CLIENT_ID"`
	ClientSecret string `hcl:"client_secret" env:"CLIENT_SECRET"`

	SearchEndpoint string        `hcl:"search_endpoint" env:"SEARCH_ENDPOINT" default:"https://openapi.naver.com/v1/search/news.json"`
	ClientIDHeader string        `hcl:"client_id_header" env:"CLIENT_ID_HEADER" default:"X-Client-Id"`
	SecretHeader   string        `hcl:"secret_header" env:"SECRET_HEADER" default:"X-Client-Secret"`
	RequestTimeout time.Duration `hcl:"request_timeout" env:"REQUEST_TIMEOUT" default:"10s"`
	// Запросы, которые берутся из RSS вместо API поиска, в виде "запрос=url"
	RSSFeeds []string `hcl:"rss_feeds" env:"RSS_FEEDS"`

	PageSize     int    `hcl:"page_size" env:"PAGE_SIZE" default:"10"`
	DefaultQuery string `hcl:"default_query" env:"DEFAULT_QUERY" default:"세계 뉴스"`
	// Пустой пояс означает пояс источника
	DisplayTimezone string `hcl:"display_timezone" env:"DISPLAY_TIMEZONE"`

	CredentialRetryDelay    time.Duration `hcl:"credential_retry_delay" env:"CREDENTIAL_RETRY_DELAY" default:"500ms"`
	CredentialRetryMaxDelay time.Duration `hcl:"credential_retry_max_delay" env:"CREDENTIAL_RETRY_MAX_DELAY" default:"8s"`
	CredentialRetryAttempts int           `hcl:"credential_retry_attempts" env:"CREDENTIAL_RETRY_ATTEMPTS" default:"20"`

	DatabaseDriver string `hcl:"database_driver" env:"DATABASE_DRIVER" default:"sqlite3"`
	DatabaseDSN    string `hcl:"database_dsn" env:"DATABASE_DSN" default:"./world_news.db"`

	OpenAIKey    string `hcl:"openai_key" env:"OPENAI_KEY"`
	OpenAIPrompt string `hcl:"openai_prompt" env:"OPENAI_PROMPT"`
	OpenAIModel  string `hcl:"openai_model" env:"OPENAI_MODEL"`

	LogLevel string `hcl:"log_level" env:"LOG_LEVEL" default:"info"`
}

var (
	cfg  Config
	once sync.Once
)

// Get читает конфиг один раз и дальше отдает его из памяти
func Get() Config {
	once.Do(func() {
		loaded, err := Load("./config.hcl", "./config.local.hcl")
		if err != nil {
			log.Error().Err(err).Msg("failed to load config")
		}
		cfg = loaded
	})

	return cfg
}

// Load читает конфиг из указанных файлов и окружения
func Load(files ...string) (Config, error) {
	var c Config

	loader := aconfig.LoaderFor(&c, aconfig.Config{
		EnvPrefix: "WNF",
		SkipFlags: true,
		Files:     files,
		FileDecoders: map[string]aconfig.FileDecoder{
			".hcl": aconfighcl.New(),
		},
	})

	err := loader.Load()
	return c, err
}
