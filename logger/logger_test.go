package logger

import (
	"bytes"
	"errors"
	"os"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestGetLogLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("LICITACAO_ENVIRONMENT", "production")
	assert.Equal(t, zerolog.InfoLevel, getLogLevel())

	t.Setenv("LICITACAO_ENVIRONMENT", "development")
	assert.Equal(t, zerolog.DebugLevel, getLogLevel())

	t.Setenv("LOG_LEVEL", "warn")
	assert.Equal(t, zerolog.WarnLevel, getLogLevel())

	t.Setenv("LOG_LEVEL", "loud")
	assert.Equal(t, zerolog.InfoLevel, getLogLevel())
}

func TestComponentLogger(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	var buf bytes.Buffer
	InitWithWriter(&buf)
	defer InitWithWriter(os.Stderr)

	ForCrawler().Info().Int("page", 2).Msg("listing page parsed")
	LogError("publisher", errors.New("connection refused"), "publish %d records", 3)

	out := buf.String()
	assert.Contains(t, out, "listing page parsed")
	assert.Contains(t, out, "crawler")
	assert.Contains(t, out, "publish 3 records")
	assert.Contains(t, out, "connection refused")
	assert.True(t, IsDebugEnabled())
}

func TestIsDebugEnabledFollowsLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "info")
	InitWithWriter(&bytes.Buffer{})
	defer InitWithWriter(os.Stderr)

	assert.False(t, IsDebugEnabled())
}

func TestWithError(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	var buf bytes.Buffer
	InitWithWriter(&buf)
	defer InitWithWriter(os.Stderr)

	ForCrawler().WithError(errors.New("status code: 503")).Warn().Msg("Listing page fetch failed")

	assert.Contains(t, buf.String(), "status code: 503")
	assert.Contains(t, buf.String(), "Listing page fetch failed")
}
