// Package maint implements dataset maintenance tooling that operates
// directly on the converged place dataset, currently the idempotent
// menu-placeholder backfill for restaurant entries.
package maint

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/muscat-guide/places-cli/internal/dataset"
	"github.com/muscat-guide/places-cli/internal/model"
)

// restaurantTag is the category that qualifies an entry for a menu.
const restaurantTag = "restaurants"

// Options configures one backfill run. Currency is passed explicitly
// into the placeholder construction rather than living in shared state,
// so flag parsing and record processing cannot get out of order.
type Options struct {
	File     string
	Write    bool
	Currency string
	Debug    bool
}

// Outcome reports what a backfill run did (or, in a dry run, would do).
type Outcome struct {
	Scanned     int
	Restaurants int
	Changed     []string // identifying keys of entries receiving a placeholder
	Skipped     []string // identifying keys of malformed entries
	BackupPath  string   // set only when a write happened
	Wrote       bool
}

// Backfiller adds menu placeholders to restaurant entries.
type Backfiller struct {
	log *zap.Logger
	now func() time.Time
}

// NewBackfiller returns a Backfiller using the global zap logger and
// wall-clock time.
func NewBackfiller() *Backfiller {
	return &Backfiller{log: zap.L().Named("menu"), now: time.Now}
}

// Run loads the dataset, inserts placeholders on qualifying entries,
// and in write mode persists the result behind a timestamped backup.
// A missing file or a malformed top-level array is fatal; a malformed
// individual entry is logged with its identifying key and skipped.
func (b *Backfiller) Run(opts Options) (*Outcome, error) {
	entries, err := dataset.Load(opts.File)
	if err != nil {
		return nil, err
	}

	placeholder := NewPlaceholder(opts.Currency, b.now().UTC())
	out := &Outcome{Scanned: len(entries)}

	for i, raw := range entries {
		var entry map[string]any
		if err := json.Unmarshal(raw, &entry); err != nil {
			key := entryKey(nil, i)
			out.Skipped = append(out.Skipped, key)
			b.log.Warn("skipping malformed entry", zap.String("key", key), zap.Error(err))
			continue
		}

		key := entryKey(entry, i)
		restaurant := isRestaurant(entry)
		if opts.Debug {
			b.log.Debug("classified entry",
				zap.String("key", key),
				zap.Bool("restaurant", restaurant),
			)
		}
		if !restaurant {
			continue
		}
		out.Restaurants++

		// Presence alone gates insertion: an existing menu value of
		// any shape, including malformed, is left entirely untouched.
		if _, exists := entry["menu"]; exists {
			continue
		}

		entry["menu"] = placeholder
		updated, err := json.Marshal(entry)
		if err != nil {
			return nil, eris.Wrapf(err, "maint: encode entry %s", key)
		}
		entries[i] = updated
		out.Changed = append(out.Changed, key)
	}

	if len(out.Changed) == 0 || !opts.Write {
		return out, nil
	}

	backupPath, err := dataset.Backup(opts.File)
	if err != nil {
		return nil, err
	}
	out.BackupPath = backupPath

	if err := dataset.Save(opts.File, entries); err != nil {
		return nil, err
	}
	out.Wrote = true
	return out, nil
}

// NewPlaceholder builds the menu placeholder inserted on restaurant
// entries lacking one.
func NewPlaceholder(currency string, now time.Time) model.Menu {
	return model.Menu{
		Status: model.MenuStatusPlaceholder,
		Source: model.MenuSource{
			Type: "manual",
			URL:  "",
		},
		Currency:    currency,
		LastUpdated: now.Truncate(time.Second).Format(time.RFC3339),
		Sections: []model.MenuSection{
			{
				Title: "Popular",
				Items: []model.MenuItem{
					{
						Name:  "Example Dish",
						Price: 3.5,
						Desc:  "Short description of the dish.",
						Tags:  []string{},
					},
				},
			},
		},
		Notes: "Placeholder added automatically.",
	}
}

// isRestaurant reports whether the entry's normalized category set
// contains the restaurant tag. Categories come from "categories" with
// a singular "category" fallback; a scalar value is coerced to a
// one-element set.
func isRestaurant(entry map[string]any) bool {
	cats, ok := entry["categories"]
	if !ok || cats == nil {
		cats = entry["category"]
	}

	for _, cat := range toStrings(cats) {
		if strings.ToLower(strings.TrimSpace(cat)) == restaurantTag {
			return true
		}
	}
	return false
}

// toStrings coerces a decoded JSON value into a list of strings:
// arrays keep their string elements, a scalar becomes a single-element
// list, anything else is empty.
func toStrings(v any) []string {
	switch val := v.(type) {
	case []any:
		var out []string
		for _, item := range val {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case string:
		return []string{val}
	default:
		return nil
	}
}

// entryKey derives the identifier used when reporting on an entry:
// slug, else name, else its array index.
func entryKey(entry map[string]any, idx int) string {
	if s, ok := entry["slug"].(string); ok && s != "" {
		return s
	}
	if s, ok := entry["name"].(string); ok && s != "" {
		return s
	}
	return fmt.Sprintf("idx:%d", idx)
}
