package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("WNF_TELEGRAM_BOT_TOKEN", "token")
	t.Setenv("WNF_TELEGRAM_CHAT_ID", "42")

	c, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "token", c.TelegramBotToken)
	assert.Equal(t, int64(42), c.TelegramChatID)
	assert.Equal(t, 10, c.PageSize)
	assert.Equal(t, "세계 뉴스", c.DefaultQuery)
	assert.Equal(t, "X-Client-Id", c.ClientIDHeader)
	assert.Equal(t, 500*time.Millisecond, c.CredentialRetryDelay)
	assert.Equal(t, 8*time.Second, c.CredentialRetryMaxDelay)
	assert.Equal(t, 20, c.CredentialRetryAttempts)
	assert.Equal(t, "sqlite3", c.DatabaseDriver)
	assert.Equal(t, 10*time.Second, c.RequestTimeout)
}

func TestLoad_FileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.hcl")
	require.NoError(t, os.WriteFile(path, []byte(`
telegram_bot_token = "file-token"
telegram_chat_id = 7
client_id = "file-id"
page_size = 20
`), 0o600))

	t.Setenv("WNF_CLIENT_ID", "env-id")

	c, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "file-token", c.TelegramBotToken)
	assert.Equal(t, int64(7), c.TelegramChatID)
	assert.Equal(t, 20, c.PageSize)
	// Окружение перекрывает файл
	assert.Equal(t, "env-id", c.ClientID)
}
