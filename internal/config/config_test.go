package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "mongodb://localhost:27017", cfg.MongoURI)
	assert.Equal(t, "checkflow", cfg.MongoDatabase)
	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.Empty(t, cfg.QuestionCatalogPath)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("MONGO_URI", "mongodb://db:27017")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("SESSION_TTL_MINUTES", "5")
	t.Setenv("QUESTION_CATALOG", "/etc/checkflow/questions.yaml")

	cfg := Load()

	assert.Equal(t, "mongodb://db:27017", cfg.MongoURI)
	assert.Equal(t, "9090", cfg.HTTPPort)
	assert.Equal(t, 5*time.Minute, cfg.SessionTTL)
	assert.Equal(t, "/etc/checkflow/questions.yaml", cfg.QuestionCatalogPath)
}

func TestSessionTTLIgnoresBadValues(t *testing.T) {
	t.Setenv("SESSION_TTL_MINUTES", "not-a-number")
	assert.Equal(t, 30*time.Minute, Load().SessionTTL)

	t.Setenv("SESSION_TTL_MINUTES", "-10")
	assert.Equal(t, 30*time.Minute, Load().SessionTTL)
}
