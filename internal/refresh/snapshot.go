package refresh

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/tinytelemetry/quiniela/internal/model"
	"github.com/tinytelemetry/quiniela/internal/reveal"
	"github.com/tinytelemetry/quiniela/internal/surface"
)

// Snapshot fetches every region concurrently and renders each surface once
// without animation. Region failures are rendered in place; the returned
// error is only set when ctx ends first.
func Snapshot(ctx context.Context, q model.DrawQuerier, width int, metrics *Metrics) (string, error) {
	var results [3]RegionDataMsg
	g, gctx := errgroup.WithContext(ctx)
	for _, r := range model.Regions {
		r := r
		g.Go(func() error {
			msg, _ := fetchCmd(gctx, q, r, 1)().(RegionDataMsg)
			results[r] = msg
			metrics.RecordFetch(r, msg.Err, msg.Elapsed)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	animator := reveal.NewAnimator(reveal.Config{ReduceMotion: true}, nil)
	blocks := make([]string, 0, len(model.Regions))
	for _, r := range model.Regions {
		s := surface.New(r, animator)
		s.Apply(results[r].Data, results[r].Err)
		blocks = append(blocks, s.View(width))
	}
	return strings.Join(blocks, "\n\n") + "\n", nil
}
