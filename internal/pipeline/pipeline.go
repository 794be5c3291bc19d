// Package pipeline drives the fetch, mirror, transform and emit sequence for
// every catalog source. All source pipelines run concurrently and settle
// independently: a failure is captured in that source's Result and never
// crosses to another source or unwinds past the task boundary.
package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/sourcegraph/conc"

	"github.com/TimurManjosov/rulebridge/internal/artifact"
	"github.com/TimurManjosov/rulebridge/internal/catalog"
	"github.com/TimurManjosov/rulebridge/internal/convert"
	"github.com/TimurManjosov/rulebridge/internal/fetch"
	"github.com/TimurManjosov/rulebridge/internal/telemetry"
)

// Status classifies the outcome of one source pipeline.
type Status string

const (
	StatusDone    Status = "done"
	StatusSkipped Status = "skipped"
	StatusFailed  Status = "failed"
)

// Result records the outcome of one source pipeline.
type Result struct {
	Source   catalog.Source
	Status   Status
	Err      error
	Rules    int
	RawBytes int
	Checksum string
	Duration time.Duration
}

// Runner orchestrates the source pipelines of a single run.
type Runner struct {
	fetcher *fetch.Fetcher
	outDir  string
	log     zerolog.Logger
}

// New creates a Runner emitting JSON artifacts under outDir. Raw mirrors go
// to each source's own path.
func New(f *fetch.Fetcher, outDir string, log zerolog.Logger) *Runner {
	return &Runner{
		fetcher: f,
		outDir:  outDir,
		log:     log.With().Str("component", "pipeline").Logger(),
	}
}

// Run executes every source pipeline concurrently and returns once all of
// them have settled, one Result per source in catalog order.
func (r *Runner) Run(ctx context.Context, sources []catalog.Source) []Result {
	runLog := r.log.With().Str("run_id", uuid.NewString()).Logger()
	runLog.Info().Int("sources", len(sources)).Msg("starting run")

	results := make([]Result, len(sources))
	var wg conc.WaitGroup
	for i, src := range sources {
		wg.Go(func() {
			results[i] = r.processSource(ctx, src, runLog)
		})
	}
	wg.Wait()

	runLog.Info().Msg("all rule files processed")
	return results
}

// processSource runs the full sequence for one source. Panics are recovered
// here so an unexpected defect in one pipeline is reported like any other
// per-source failure.
func (r *Runner) processSource(ctx context.Context, src catalog.Source, log zerolog.Logger) (res Result) {
	start := time.Now()
	res = Result{Source: src}
	srcLog := log.With().Str("source", src.Name).Str("behavior", string(src.Behavior)).Logger()

	defer func() {
		res.Duration = time.Since(start)
		if p := recover(); p != nil {
			res.Status = StatusFailed
			res.Err = fmt.Errorf("source pipeline panicked: %v", p)
			telemetry.SourcesProcessed.WithLabelValues(string(StatusFailed)).Inc()
			srcLog.Error().Err(res.Err).Msg("source pipeline panicked")
		}
	}()

	if err := src.Validate(); err != nil {
		res.Status = StatusSkipped
		res.Err = err
		telemetry.SourcesProcessed.WithLabelValues(string(StatusSkipped)).Inc()
		srcLog.Warn().Err(err).Msg("skipping source")
		return res
	}

	srcLog.Info().Str("url", src.URL).Msg("processing source")

	raw, err := r.fetcher.Fetch(ctx, src.URL)
	if err != nil {
		return r.fail(res, srcLog, fmt.Errorf("fetch failed: %w", err))
	}
	res.RawBytes = len(raw)
	telemetry.FetchBytes.Add(float64(len(raw)))

	// Mirror the raw capture before transforming, so a converter defect can
	// never lose the fetched text.
	if err := artifact.Write(src.Path, []byte(raw)); err != nil {
		return r.fail(res, srcLog, err)
	}
	srcLog.Debug().Str("path", src.Path).Int("bytes", res.RawBytes).Msg("mirrored raw rule list")

	ruleSet := convert.Transform(raw, src.Behavior)
	data, err := artifact.Render(convert.NewDocument(ruleSet))
	if err != nil {
		return r.fail(res, srcLog, err)
	}

	outPath := filepath.Join(r.outDir, src.Name+".json")
	if err := artifact.Write(outPath, data); err != nil {
		return r.fail(res, srcLog, err)
	}

	res.Status = StatusDone
	res.Rules = ruleSet.Len()
	res.Checksum = artifact.Checksum(data)
	telemetry.SourcesProcessed.WithLabelValues(string(StatusDone)).Inc()
	srcLog.Info().
		Int("rules", res.Rules).
		Str("checksum", res.Checksum).
		Str("path", outPath).
		Msg("emitted rule-set")
	return res
}

func (r *Runner) fail(res Result, log zerolog.Logger, err error) Result {
	res.Status = StatusFailed
	res.Err = err
	telemetry.SourcesProcessed.WithLabelValues(string(StatusFailed)).Inc()
	log.Error().Err(err).Msg("source pipeline failed")
	return res
}
