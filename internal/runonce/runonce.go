// Package runonce executes every catalog template once, sequentially,
// saving each raw response for inspection.
package runonce

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"searchbench/internal/catalog"
)

// Searcher returns the raw response body for one template.
type Searcher interface {
	SearchRaw(ctx context.Context, tpl catalog.Template) ([]byte, error)
}

// Run writes <out>/queries_outputs/<name>_result.json per template,
// pretty-printed. Unlike the load harness, a failing query here is a real
// error and stops the run.
func Run(ctx context.Context, client Searcher, templates []catalog.Template, outDir string, log logrus.FieldLogger) error {
	dir := filepath.Join(outDir, "queries_outputs")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrap(err, "creating query output directory")
	}

	for _, tpl := range templates {
		log.WithField("query", tpl.Name).Info("running query")

		body, err := client.SearchRaw(ctx, tpl)
		if err != nil {
			return errors.Wrapf(err, "query %s failed", tpl.Name)
		}

		var pretty bytes.Buffer
		if err := json.Indent(&pretty, body, "", "  "); err != nil {
			// Not JSON? Save it as-is.
			pretty.Write(body)
		}

		name := strings.TrimSuffix(tpl.Name, ".json") + "_result.json"
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, pretty.Bytes(), 0644); err != nil {
			return errors.Wrapf(err, "saving result for %s", tpl.Name)
		}

		log.WithField("output", path).Info("saved query result")
	}
	return nil
}
