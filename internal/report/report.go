// Package report assembles the pipeline overview from one snapshot.
package report

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/HendryAvila/introflow/internal/digest"
	"github.com/HendryAvila/introflow/internal/intro"
	"github.com/HendryAvila/introflow/internal/store"
	"github.com/HendryAvila/introflow/internal/trends"
)

// Source is the slice of the store the report reads.
type Source interface {
	ListIntroductions(ctx context.Context, f store.Filter) ([]intro.Introduction, error)
	ListFounders(ctx context.Context) ([]intro.Founder, error)
}

// Report is the admin-facing pipeline overview.
type Report struct {
	GeneratedAt     time.Time               `json:"generated_at"`
	Today           string                  `json:"today"`
	Stats           *digest.PipelineStats   `json:"stats"`
	Admin           *digest.AdminDigest     `json:"admin"`
	PendingFounders *digest.PendingFounders `json:"pending_founders"`
	Trends          *trends.Report          `json:"trends"`
}

// Build fetches one snapshot and computes the stats, admin digest, pending
// founders and trends in parallel over it. The computations share the
// snapshot read-only.
func Build(ctx context.Context, src Source, now time.Time) (*Report, error) {
	var (
		all      []intro.Introduction
		founders []intro.Founder
	)
	fetch, fctx := errgroup.WithContext(ctx)
	fetch.Go(func() (err error) {
		all, err = src.ListIntroductions(fctx, store.Filter{})
		return err
	})
	fetch.Go(func() (err error) {
		founders, err = src.ListFounders(fctx)
		return err
	})
	if err := fetch.Wait(); err != nil {
		return nil, fmt.Errorf("loading snapshot: %w", err)
	}

	today := intro.Today(now)
	r := &Report{GeneratedAt: now.UTC(), Today: today}

	var g errgroup.Group
	g.Go(func() (err error) {
		r.Stats, err = digest.ComputePipelineStats(all, today)
		return err
	})
	g.Go(func() (err error) {
		r.Admin, err = digest.BuildAdminDigest(all, founders, today)
		return err
	})
	g.Go(func() (err error) {
		r.PendingFounders, err = digest.BuildPendingFounders(all, today)
		return err
	})
	g.Go(func() (err error) {
		r.Trends, err = trends.ComputeTrends(all, now)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return r, nil
}

// Warnings merges the tolerated-condition warnings of every section.
func (r *Report) Warnings() []string {
	var out []string
	if r.Admin != nil {
		out = append(out, r.Admin.Warnings...)
	}
	if r.PendingFounders != nil {
		out = append(out, r.PendingFounders.Warnings...)
	}
	return out
}
