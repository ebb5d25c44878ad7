// Package pipeline runs the full extract-to-views flow: stream the
// records, fold the population, run the analysis stages, and assemble
// the view documents.
package pipeline

import (
	"context"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/kredmint/bureauscrub/internal/aggregate"
	"github.com/kredmint/bureauscrub/internal/classify"
	"github.com/kredmint/bureauscrub/internal/config"
	"github.com/kredmint/bureauscrub/internal/curves"
	"github.com/kredmint/bureauscrub/internal/funnel"
	"github.com/kredmint/bureauscrub/internal/quality"
	"github.com/kredmint/bureauscrub/internal/report"
	"github.com/kredmint/bureauscrub/internal/source"
	"github.com/kredmint/bureauscrub/pkg/models"
	"github.com/kredmint/bureauscrub/pkg/utils"
)

// Options tune a single run.
type Options struct {
	Policy config.PolicyConfig

	// Now anchors freshness checks and the bureau-date fallback.
	// Zero means the current IST date.
	Now time.Time

	// Progress shows a row spinner on stderr during the scan.
	Progress bool
}

// Stats summarizes the scan for run logging.
type Stats struct {
	Rows      int
	Dropped   int
	Customers int
}

// Result bundles everything a run produces.
type Result struct {
	Views      *models.ViewSet
	Population *models.Population
	Funnel     *funnel.Result
	Stats      Stats
}

// Run executes the pipeline against src. The record scan is a single
// forward pass; everything after it operates on the folded population.
func Run(ctx context.Context, src source.Source, opts Options) (*Result, error) {
	now := opts.Now
	if now.IsZero() {
		now = utils.TodayIST()
	}

	col := aggregate.NewCollector(opts.Policy.AnchorCodes, opts.Policy.TargetCodes)

	var bar *progressbar.ProgressBar
	if opts.Progress {
		bar = progressbar.Default(-1, "scanning tradelines")
	}

	err := src.Each(ctx, func(rec source.Record) error {
		col.Add(rec)
		if bar != nil {
			_ = bar.Add(1)
		}
		return nil
	})
	if bar != nil {
		_ = bar.Finish()
	}
	if err != nil {
		return nil, err
	}

	pop := col.Finalize(now)

	cls := classify.Run(pop, opts.Policy)
	crv := curves.Run(pop, opts.Policy)
	fn := funnel.Run(pop, cls, opts.Policy)
	qa := quality.Run(pop, cls, crv, now, opts.Policy.Quality)

	return &Result{
		Views:      report.Build(pop, cls, crv, fn, qa, opts.Policy),
		Population: pop,
		Funnel:     fn,
		Stats: Stats{
			Rows:      col.Rows(),
			Dropped:   col.Dropped(),
			Customers: pop.Size(),
		},
	}, nil
}
