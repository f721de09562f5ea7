package catalog

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeQuery(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func TestLoadFullTemplate(t *testing.T) {
	dir := t.TempDir()
	writeQuery(t, dir, "q1.json", `{
		"query": {"match": {"review_text": "guitar"}},
		"aggs": {"by_score": {"terms": {"field": "score"}}},
		"size": 20,
		"sort": [{"time": "desc"}],
		"_source": ["title", "score"],
		"from": 10,
		"track_total_hits": false
	}`)

	templates, err := Load(dir)
	require.NoError(t, err)
	require.Len(t, templates, 1)

	tpl := templates[0]
	assert.Equal(t, "q1.json", tpl.Name)
	assert.NotNil(t, tpl.Query)
	assert.NotNil(t, tpl.Aggs)
	require.NotNil(t, tpl.Size)
	assert.Equal(t, 20, *tpl.Size)
	require.NotNil(t, tpl.From)
	assert.Equal(t, 10, *tpl.From)
	assert.False(t, tpl.TrackTotalHits)
}

func TestLoadToleratesMissingFields(t *testing.T) {
	dir := t.TempDir()
	writeQuery(t, dir, "minimal.json", `{"query": {"match_all": {}}}`)

	templates, err := Load(dir)
	require.NoError(t, err)
	require.Len(t, templates, 1)

	tpl := templates[0]
	assert.Nil(t, tpl.Size)
	assert.Nil(t, tpl.Sort)
	assert.Nil(t, tpl.Source)
	assert.Nil(t, tpl.From)
	assert.True(t, tpl.TrackTotalHits, "track_total_hits defaults to true")
}

func TestLoadSortsByFileName(t *testing.T) {
	dir := t.TempDir()
	writeQuery(t, dir, "b.json", `{"query": {"match_all": {}}}`)
	writeQuery(t, dir, "a.json", `{"query": {"match_all": {}}}`)
	writeQuery(t, dir, "c.json", `{"query": {"match_all": {}}}`)
	writeQuery(t, dir, "notes.txt", `ignored`)

	templates, err := Load(dir)
	require.NoError(t, err)
	require.Len(t, templates, 3)
	assert.Equal(t, "a.json", templates[0].Name)
	assert.Equal(t, "b.json", templates[1].Name)
	assert.Equal(t, "c.json", templates[2].Name)
}

func TestLoadMissingDirectory(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "query directory not found")
}

func TestLoadEmptyCatalog(t *testing.T) {
	_, err := Load(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no queries found")
}

func TestBodyIncludesOnlyPresentFields(t *testing.T) {
	dir := t.TempDir()
	writeQuery(t, dir, "q.json", `{"query": {"match_all": {}}, "size": 5}`)

	templates, err := Load(dir)
	require.NoError(t, err)

	body := templates[0].Body()
	assert.Contains(t, body, "query")
	assert.Contains(t, body, "size")
	assert.Contains(t, body, "track_total_hits")
	assert.NotContains(t, body, "aggs")
	assert.NotContains(t, body, "sort")
	assert.NotContains(t, body, "from")

	// The assembled body must still be valid JSON end to end.
	data, err := json.Marshal(body)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"size":5`)
}
