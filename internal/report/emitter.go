package report

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/kredmint/bureauscrub/pkg/models"
)

// Emitter writes view documents as <name>.json files under Dir.
type Emitter struct {
	Dir string
}

// NewEmitter returns an emitter rooted at dir.
func NewEmitter(dir string) *Emitter {
	return &Emitter{Dir: dir}
}

// WriteAll emits every document concurrently. Each write is independent
// so one failed document never blocks the rest; the first error is
// returned after all writes have been attempted.
func (e *Emitter) WriteAll(ctx context.Context, vs *models.ViewSet) error {
	if err := os.MkdirAll(e.Dir, 0o755); err != nil {
		return fmt.Errorf("create output dir %s: %w", e.Dir, err)
	}

	g, _ := errgroup.WithContext(ctx)
	for _, nv := range vs.Named() {
		nv := nv
		g.Go(func() error {
			return e.write(nv)
		})
	}
	return g.Wait()
}

func (e *Emitter) write(nv models.NamedView) error {
	data, err := json.MarshalIndent(nv.Doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal view %s: %w", nv.Name, err)
	}
	data = append(data, '\n')

	path := filepath.Join(e.Dir, nv.Name+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write view %s: %w", nv.Name, err)
	}
	return nil
}
