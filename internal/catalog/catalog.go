package catalog

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// Template is one named search request loaded from the query directory.
// Templates are immutable after load and safe to share across goroutines.
type Template struct {
	Name           string
	Query          json.RawMessage
	Aggs           json.RawMessage
	Size           *int
	Sort           json.RawMessage
	Source         json.RawMessage
	From           *int
	TrackTotalHits bool
}

type rawTemplate struct {
	Query          json.RawMessage `json:"query"`
	Aggs           json.RawMessage `json:"aggs"`
	Size           *int            `json:"size"`
	Sort           json.RawMessage `json:"sort"`
	Source         json.RawMessage `json:"_source"`
	From           *int            `json:"from"`
	TrackTotalHits *bool           `json:"track_total_hits"`
}

// Load reads every *.json file in dir (sorted by name) into a Template.
// Any subset of the optional fields may be absent; track_total_hits
// defaults to true. A missing directory or an empty catalog is fatal.
func Load(dir string) ([]Template, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "query directory not found: %s", dir)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	templates := make([]Template, 0, len(names))
	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, errors.Wrapf(err, "reading query file %s", name)
		}

		var raw rawTemplate
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, errors.Wrapf(err, "parsing query file %s", name)
		}

		t := Template{
			Name:           name,
			Query:          raw.Query,
			Aggs:           raw.Aggs,
			Size:           raw.Size,
			Sort:           raw.Sort,
			Source:         raw.Source,
			From:           raw.From,
			TrackTotalHits: true,
		}
		if raw.TrackTotalHits != nil {
			t.TrackTotalHits = *raw.TrackTotalHits
		}
		templates = append(templates, t)
	}

	if len(templates) == 0 {
		return nil, errors.Errorf("no queries found in %s", dir)
	}
	return templates, nil
}

// Body assembles the search request body, including only the fields the
// template actually carries.
func (t Template) Body() map[string]interface{} {
	body := map[string]interface{}{
		"track_total_hits": t.TrackTotalHits,
	}
	if t.Query != nil {
		body["query"] = t.Query
	}
	if t.Aggs != nil {
		body["aggs"] = t.Aggs
	}
	if t.Size != nil {
		body["size"] = *t.Size
	}
	if t.Sort != nil {
		body["sort"] = t.Sort
	}
	if t.Source != nil {
		body["_source"] = t.Source
	}
	if t.From != nil {
		body["from"] = *t.From
	}
	return body
}
