package localstore

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"slices"
	"sync"

	"github.com/heartmarshall/lugatlab/internal/domain"
	"github.com/heartmarshall/lugatlab/internal/wordlist"
)

//go:embed a1a2-words.json
var catalogJSON []byte

var loadCatalog = sync.OnceValues(func() ([]domain.Word, error) {
	res, err := wordlist.ParseJSON(bytes.NewReader(catalogJSON))
	if err != nil {
		return nil, fmt.Errorf("localstore: built-in catalog: %w", err)
	}
	return res.Words, nil
})

// Catalog serves the built-in A1/A2 word list.
type Catalog struct{}

// NewCatalog returns the built-in catalog.
func NewCatalog() *Catalog { return &Catalog{} }

// ListActive returns active catalog words of the given levels in file order.
func (c *Catalog) ListActive(_ context.Context, levels []domain.WordLevel) ([]domain.Word, error) {
	all, err := loadCatalog()
	if err != nil {
		return nil, err
	}

	out := make([]domain.Word, 0, len(all))
	for _, w := range all {
		if w.Active && slices.Contains(levels, w.Level) {
			out = append(out, w)
		}
	}
	return out, nil
}
