package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	t.Parallel()

	cfg := Default()
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, "replay/data", cfg.Data.Dir)
	assert.Equal(t, "replay/index.html", cfg.Site.Output)
}

func TestLoadFromYAML(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "replay.yaml", `
data:
  dir: archive/run-42
site:
  output: out/index.html
  label: run-42
journal:
  type: sqlite
  db_path: out/replay.sqlite
notify:
  webhook: https://oapi.dingtalk.com/robot/send?access_token=abc
  secret_env: DINGTALK_SECRET
log:
  level: debug
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "archive/run-42", cfg.Data.Dir)
	assert.Equal(t, "run-42", cfg.Site.Label)
	assert.Equal(t, "sqlite", cfg.Journal.Type)
	assert.Equal(t, "out/replay.sqlite", cfg.Journal.DBPath)
	assert.Equal(t, "DINGTALK_SECRET", cfg.Notify.SecretEnv)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadFromJSON(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "replay.json", `{
  "data": {"dir": "archive/run-7"},
  "site": {"output": "out/index.html"},
  "journal": {"type": "csv", "trades_file": "t.csv", "snapshots_file": "s.csv"}
}`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "archive/run-7", cfg.Data.Dir)
	assert.Equal(t, "csv", cfg.Journal.Type)
}

func TestValidateJournal(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Journal.Type = "sqlite"
	assert.ErrorContains(t, cfg.Validate(), "db_path")

	cfg = Default()
	cfg.Journal.Type = "csv"
	assert.ErrorContains(t, cfg.Validate(), "trades_file")

	cfg = Default()
	cfg.Journal.Type = "postgres"
	assert.ErrorContains(t, cfg.Validate(), "journal.type")
}

func TestValidateWebhook(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Notify.Webhook = "http://insecure.example.com/hook"
	assert.ErrorContains(t, cfg.Validate(), "https")
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	_, err := LoadFromFile(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.ErrorContains(t, err, "read config file")
}

func TestLoadGarbage(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "broken.yaml", "data: [unclosed")
	_, err := LoadFromFile(path)
	assert.Error(t, err)
}
