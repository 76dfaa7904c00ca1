// Package export runs an extraction pass over a page: it resolves card
// identities, builds the records and exports artwork for records that
// changed since the previous pass.
package export

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/arcanaland/cardsmith/internal/cache"
	"github.com/arcanaland/cardsmith/internal/card"
	"github.com/arcanaland/cardsmith/internal/design"
	"github.com/arcanaland/cardsmith/internal/identity"
	"github.com/arcanaland/cardsmith/internal/scanner"
)

// RecordsFile is the name of the exported records file.
const RecordsFile = "cards.json"

// ImageWriter writes the artwork of an element under filename.
type ImageWriter interface {
	WriteImage(el *design.Element, filename string) error
}

// Options controls one export pass
type Options struct {
	Depth        int
	ExportImages bool
	Force        bool // export artwork even for unchanged records
}

// Result summarizes an export pass
type Result struct {
	Records  map[string]card.Record
	Cards    int
	Tokens   int
	Exported []string // artwork filenames written
	Skipped  int      // unchanged records whose artwork was not exported
	Failures []identity.RenameFailure
}

// Exporter wires the collaborators of an export pass. Cache and Images may
// be nil.
type Exporter struct {
	Renamer identity.Renamer
	Builder *card.Builder
	Cache   *cache.Store
	Images  ImageWriter
	Logger  *slog.Logger
	Now     func() time.Time
}

// Run exports every card and token found on page. Cards come first in
// sequence order, then tokens in name order. The context is checked between
// elements.
func (e *Exporter) Run(ctx context.Context, page *design.Element, opts Options) (*Result, error) {
	logger := e.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Depth <= 0 {
		opts.Depth = scanner.DefaultDepth
	}

	res := identity.ScanAndResolve(page, opts.Depth, e.Renamer, logger)
	total := len(res.Cards) + len(res.Tokens)
	logger.Info("scan complete", "page", page.Name, "cards", len(res.Cards), "tokens", len(res.Tokens))

	result := &Result{
		Records:  make(map[string]card.Record, total),
		Cards:    len(res.Cards),
		Tokens:   len(res.Tokens),
		Failures: res.Failures,
	}

	// records whose artwork is current on disk, the next pass compares against these
	current := make(map[string]any, total)

	processed := 0
	process := func(el *design.Element, rec card.Record) {
		result.Records[rec.RecordID()] = rec
		processed++

		if opts.ExportImages && e.exportImage(logger, el, rec, opts.Force, result) {
			current[rec.RecordID()] = rec
		}
		logger.Debug("processed", "id", rec.RecordID(), "current", processed, "total", total)
	}

	for _, c := range res.Cards {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		process(c.Element, e.Builder.Card(c.Element, c.Seq))
	}
	for _, el := range res.Tokens {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		process(el, e.Builder.Token(el))
	}

	if opts.ExportImages && e.Images != nil && e.Cache != nil {
		now := time.Now
		if e.Now != nil {
			now = e.Now
		}
		if err := e.Cache.Save(current, now()); err != nil {
			logger.Warn("export cache not saved", "error", err)
		}
	}

	return result, nil
}

// exportImage writes the artwork of rec unless the cache has it unchanged.
// It reports whether the artwork on disk matches rec afterwards.
func (e *Exporter) exportImage(logger *slog.Logger, el *design.Element, rec card.Record, force bool, result *Result) bool {
	if e.Images == nil {
		return false
	}
	if !force && e.Cache != nil && e.Cache.Unchanged(rec.RecordID(), rec) {
		result.Skipped++
		return true
	}
	if err := e.Images.WriteImage(el, rec.ImageFile()); err != nil {
		logger.Error("export failed", "id", rec.RecordID(), "file", rec.ImageFile(), "error", err)
		return false
	}
	result.Exported = append(result.Exported, rec.ImageFile())
	return true
}

// WriteRecords writes records as an indented JSON object keyed by id.
func WriteRecords(path string, records map[string]card.Record) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("error encoding records: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("error creating output directory: %v", err)
	}
	return os.WriteFile(path, data, 0644)
}

// ReadRecords reads a records file. Tokens decode into card.Card with their
// card-only fields left empty.
func ReadRecords(path string) (map[string]card.Card, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	records := map[string]card.Card{}
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("error parsing records: %v", err)
	}
	for id, r := range records {
		r.Filename = card.FilenameForID(id)
		records[id] = r
	}
	return records, nil
}
