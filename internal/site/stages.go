package site

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/lucawellmeier/octoblog/internal/content"
	"github.com/lucawellmeier/octoblog/internal/dates"
	berrors "github.com/lucawellmeier/octoblog/internal/errors"
	"github.com/lucawellmeier/octoblog/internal/logfields"
	"github.com/lucawellmeier/octoblog/internal/metrics"
	"github.com/lucawellmeier/octoblog/internal/render"
)

// StageName identifies a generation stage.
type StageName string

// Stages in execution order.
const (
	StageClean      StageName = "clean_output"
	StageIndex      StageName = "index_content"
	StageContext    StageName = "build_context"
	StageHome       StageName = "render_home"
	StageCategories StageName = "render_categories"
	StageArticles   StageName = "render_articles"
	StagePages      StageName = "render_pages"
	StageAssets     StageName = "copy_assets"
)

// Stage is a discrete unit of work in a generation run.
type Stage func(ctx context.Context, bs *buildState) error

type stageDef struct {
	name StageName
	fn   Stage
}

// buildState carries what earlier stages produce for later ones.
type buildState struct {
	gen    *Generator
	report *Report
	finder dates.Finder
	index  *content.Index
	ctx    *render.Context
	engine *render.Engine
}

var pipeline = []stageDef{
	{StageClean, stageClean},
	{StageIndex, stageIndex},
	{StageContext, stageContext},
	{StageHome, stageHome},
	{StageCategories, stageCategories},
	{StageArticles, stageArticles},
	{StagePages, stagePages},
	{StageAssets, stageAssets},
}

// runStages executes stages in order, recording timing and stopping on the first error.
func runStages(ctx context.Context, bs *buildState, stages []stageDef) error {
	rec := bs.gen.recorder
	for _, st := range stages {
		if err := ctx.Err(); err != nil {
			rec.IncStageResult(string(st.name), metrics.ResultCanceled)
			bs.report.setOutcome(metrics.OutcomeCanceled)
			return err
		}

		slog.Debug("Stage started", logfields.Stage(string(st.name)), logfields.BuildID(bs.report.BuildID))
		t0 := time.Now()
		err := st.fn(ctx, bs)
		dur := time.Since(t0)
		bs.report.StageDurations[string(st.name)] = dur
		rec.ObserveStageDuration(string(st.name), dur)

		if err != nil {
			result := metrics.ResultFatal
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				result = metrics.ResultCanceled
			}
			if _, classified := berrors.As(err); !classified && result == metrics.ResultFatal {
				err = berrors.BuildFailed(string(st.name), err)
			}
			rec.IncStageResult(string(st.name), result)
			bs.report.setOutcome(metrics.OutcomeFor(result))
			bs.report.Error = err.Error()
			slog.Error("Stage failed", logfields.Stage(string(st.name)), logfields.Error(err))
			return err
		}
		rec.IncStageResult(string(st.name), metrics.ResultSuccess)
		slog.Debug("Stage finished", logfields.Stage(string(st.name)), logfields.DurationMS(float64(dur.Microseconds())/1000))
	}
	bs.report.setOutcome(metrics.OutcomeSuccess)
	return nil
}
