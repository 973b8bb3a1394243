// Package wordlist parses quiz word lists from JSON, CSV and XLSX files.
// Pure functions: readers in, domain words out. No database dependencies.
package wordlist

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/heartmarshall/lugatlab/internal/domain"
)

// Format is a supported file format.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ErrUnknownFormat is returned for unsupported file extensions.
var ErrUnknownFormat = errors.New("unknown word list format")

// RowError is a skipped input row. Row is 1-based and counts the header for
// tabular formats.
type RowError struct {
	Row    int
	Reason string
}

func (e RowError) Error() string { return fmt.Sprintf("row %d: %s", e.Row, e.Reason) }

// Result holds the parsed words in input order and the rows that were skipped.
type Result struct {
	Words   []domain.Word
	Skipped []RowError
}

// FormatFromPath derives the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".csv":
		return FormatCSV, nil
	case ".xlsx":
		return FormatXLSX, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, filepath.Ext(path))
}

// ParseFile opens path and parses it according to its extension.
func ParseFile(path string) (*Result, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open word list: %w", err)
	}
	defer f.Close()

	return Parse(f, format)
}

// Parse reads a word list in the given format.
func Parse(r io.Reader, format Format) (*Result, error) {
	switch format {
	case FormatJSON:
		return ParseJSON(r)
	case FormatCSV:
		return ParseCSV(r)
	case FormatXLSX:
		return ParseXLSX(r)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// entry is one raw word before normalization. Field names follow the
// words table export.
type entry struct {
	ID          string
	Word        string
	Translation string
	Example     string
	Level       string
	Category    string
	Active      *bool
}

// collector normalizes entries and drops duplicates; the first occurrence of
// an id wins.
type collector struct {
	res  Result
	seen map[string]bool
}

func newCollector() *collector {
	return &collector{seen: make(map[string]bool)}
}

func (c *collector) add(row int, e entry) {
	w, reason := normalize(e)
	if reason != "" {
		c.res.Skipped = append(c.res.Skipped, RowError{Row: row, Reason: reason})
		return
	}
	if c.seen[w.ID] {
		c.res.Skipped = append(c.res.Skipped, RowError{Row: row, Reason: "duplicate id " + w.ID})
		return
	}
	c.seen[w.ID] = true
	c.res.Words = append(c.res.Words, w)
}

func (c *collector) result() *Result {
	return &c.res
}

func normalize(e entry) (domain.Word, string) {
	w := domain.Word{
		ID:          strings.TrimSpace(e.ID),
		Word:        strings.TrimSpace(e.Word),
		Translation: strings.TrimSpace(e.Translation),
		Example:     strings.TrimSpace(e.Example),
		Level:       domain.WordLevel(strings.ToUpper(strings.TrimSpace(e.Level))),
		Category:    strings.TrimSpace(e.Category),
		Active:      e.Active == nil || *e.Active,
	}

	switch {
	case w.ID == "":
		return w, "id is required"
	case w.Word == "":
		return w, "word is required"
	case w.Translation == "":
		return w, "translation is required"
	}

	if w.Level == "" {
		w.Level = domain.WordLevelA1
	}
	if !w.Level.IsValid() {
		return w, fmt.Sprintf("unsupported level %q", e.Level)
	}
	if w.Category == "" {
		w.Category = domain.DefaultCategory
	}
	return w, ""
}

// ---------------------------------------------------------------------------
// JSON
// ---------------------------------------------------------------------------

// flexID accepts both numeric and string ids.
type flexID string

func (f *flexID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("id must be a string or number: %w", err)
	}
	*f = flexID(n.String())
	return nil
}

type jsonEntry struct {
	ID            flexID `json:"id"`
	Word          string `json:"word"`
	TranslationUz string `json:"translation_uz"`
	Translation   string `json:"translation"`
	Example       string `json:"example"`
	Level         string `json:"level"`
	Category      string `json:"category"`
	IsActive      *bool  `json:"is_active"`
}

// ParseJSON reads a JSON array of word objects.
func ParseJSON(r io.Reader) (*Result, error) {
	var raw []jsonEntry
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode word list: %w", err)
	}

	c := newCollector()
	for i, je := range raw {
		translation := je.TranslationUz
		if translation == "" {
			translation = je.Translation
		}
		c.add(i+1, entry{
			ID:          string(je.ID),
			Word:        je.Word,
			Translation: translation,
			Example:     je.Example,
			Level:       je.Level,
			Category:    je.Category,
			Active:      je.IsActive,
		})
	}
	return c.result(), nil
}

// ---------------------------------------------------------------------------
// Tabular (CSV, XLSX)
// ---------------------------------------------------------------------------

var headerAliases = map[string]string{
	"id":             "id",
	"word":           "word",
	"translation_uz": "translation",
	"translation":    "translation",
	"example":        "example",
	"level":          "level",
	"category":       "category",
	"is_active":      "is_active",
	"active":         "is_active",
}

// parseTable maps rows with a header line onto entries.
func parseTable(rows [][]string) (*Result, error) {
	if len(rows) == 0 {
		return &Result{}, nil
	}

	index := make(map[string]int)
	for i, h := range rows[0] {
		if field, ok := headerAliases[strings.ToLower(strings.TrimSpace(h))]; ok {
			if _, dup := index[field]; !dup {
				index[field] = i
			}
		}
	}
	for _, required := range []string{"id", "word", "translation"} {
		if _, ok := index[required]; !ok {
			return nil, fmt.Errorf("header: missing %q column", required)
		}
	}

	cell := func(row []string, field string) string {
		i, ok := index[field]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	c := newCollector()
	for n, row := range rows[1:] {
		if isBlank(row) {
			continue
		}
		rowNum := n + 2

		var active *bool
		if v := strings.TrimSpace(cell(row, "is_active")); v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				c.res.Skipped = append(c.res.Skipped, RowError{Row: rowNum, Reason: fmt.Sprintf("invalid is_active %q", v)})
				continue
			}
			active = &b
		}

		c.add(rowNum, entry{
			ID:          cell(row, "id"),
			Word:        cell(row, "word"),
			Translation: cell(row, "translation"),
			Example:     cell(row, "example"),
			Level:       cell(row, "level"),
			Category:    cell(row, "category"),
			Active:      active,
		})
	}
	return c.result(), nil
}

func isBlank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
