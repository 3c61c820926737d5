package records

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadCSV(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "portfolio_state.csv",
		"timestamp,total_equity,btc_price\n2024-01-01T00:00:00Z,1000,40000\n2024-01-02T00:00:00Z,,42000\n")

	rows, err := Load(filepath.Join(dir, "portfolio_state"))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "2024-01-01T00:00:00Z", rows[0].String("timestamp"))
	require.NotNil(t, rows[0].Float("total_equity"))
	assert.Equal(t, 1000.0, *rows[0].Float("total_equity"))
	assert.Nil(t, rows[1].Float("total_equity"))
}

func TestLoadCSVPrefersCSVOverJSON(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "trade_history.csv", "timestamp,coin\nt1,BTC\n")
	writeFile(t, dir, "trade_history.json", `[{"timestamp":"t2","coin":"ETH"}]`)

	rows, err := Load(filepath.Join(dir, "trade_history"))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "BTC", rows[0].String("coin"))
}

func TestLoadJSONList(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "trade_history.json",
		`[{"timestamp":"2024-01-01T00:00:00Z","price":30000,"quantity":"1.5"}]`)

	rows, err := Load(filepath.Join(dir, "trade_history"))
	require.NoError(t, err)
	require.Len(t, rows, 1)

	require.NotNil(t, rows[0].Float("price"))
	assert.Equal(t, 30000.0, *rows[0].Float("price"))
	require.NotNil(t, rows[0].Float("quantity"))
	assert.Equal(t, 1.5, *rows[0].Float("quantity"))
}

func TestLoadJSONRowsPayload(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "portfolio_state.json",
		`{"rows":[{"timestamp":"2024-01-01T00:00:00Z"},{"timestamp":"2024-01-02T00:00:00Z"}]}`)

	rows, err := Load(filepath.Join(dir, "portfolio_state"))
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestLoadJSONObjectWithoutRows(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "portfolio_state.json", `{"data": []}`)

	_, err := Load(filepath.Join(dir, "portfolio_state"))
	assert.ErrorContains(t, err, "must contain a list of rows")
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	_, err := Load(filepath.Join(dir, "nothing"))
	assert.ErrorContains(t, err, "no csv/json file found")
}

func TestRowFloat(t *testing.T) {
	t.Parallel()

	row := Row{
		"native":  42.5,
		"integer": 7,
		"text":    " 1.25 ",
		"empty":   "",
		"junk":    "not-a-number",
		"null":    nil,
	}

	require.NotNil(t, row.Float("native"))
	assert.Equal(t, 42.5, *row.Float("native"))
	require.NotNil(t, row.Float("integer"))
	assert.Equal(t, 7.0, *row.Float("integer"))
	require.NotNil(t, row.Float("text"))
	assert.Equal(t, 1.25, *row.Float("text"))

	assert.Nil(t, row.Float("empty"))
	assert.Nil(t, row.Float("junk"))
	assert.Nil(t, row.Float("null"))
	assert.Nil(t, row.Float("absent"))
}

func TestRowString(t *testing.T) {
	t.Parallel()

	row := Row{"side": " long ", "count": 3.0, "null": nil}

	assert.Equal(t, "long", row.String("side"))
	assert.Equal(t, "3", row.String("count"))
	assert.Equal(t, "", row.String("null"))
	assert.Equal(t, "", row.String("absent"))
}

func TestParseTime(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want time.Time
	}{
		{"2024-01-01T12:30:00Z", time.Date(2024, 1, 1, 12, 30, 0, 0, time.UTC)},
		{"2024-01-01T12:30:00+02:00", time.Date(2024, 1, 1, 10, 30, 0, 0, time.UTC)},
		{"2024-01-01T12:30:00", time.Date(2024, 1, 1, 12, 30, 0, 0, time.UTC)},
		{"2024-01-01 12:30:00", time.Date(2024, 1, 1, 12, 30, 0, 0, time.UTC)},
	}
	for _, tc := range cases {
		got, err := ParseTime(tc.in)
		require.NoError(t, err, tc.in)
		assert.True(t, tc.want.Equal(got), "parse %s", tc.in)
	}
}

func TestParseTimeErrors(t *testing.T) {
	t.Parallel()

	_, err := ParseTime("")
	assert.Error(t, err)

	_, err = ParseTime("yesterday at noon")
	assert.ErrorContains(t, err, "bad timestamp")
}
