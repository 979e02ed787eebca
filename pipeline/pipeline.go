// ABOUTME: Pipeline orchestration from raw sheet rows to the dashboard payload
// ABOUTME: Fetches configured ranges concurrently, maps rows, and rolls up companies
package pipeline

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/oklog/ulid/v2"
	"golang.org/x/sync/errgroup"

	"github.com/harperreed/stoneledger/mapper"
	"github.com/harperreed/stoneledger/models"
	"github.com/harperreed/stoneledger/rollup"
	"github.com/harperreed/stoneledger/sheets"
)

// SourceSpec ties one entity to the sheet range it is read from and the
// column layout of that range.
type SourceSpec struct {
	Entity        mapper.Entity
	SpreadsheetID string
	Range         string
	// DebugRange is read instead of Range in debug mode; empty means Range.
	DebugRange string
	Schema     mapper.Schema
}

// RawRows holds fetched rows per entity before mapping.
type RawRows map[mapper.Entity][][]any

// Recorder receives a summary of every run.
type Recorder interface {
	RecordRun(ctx context.Context, run *models.FetchRun) error
}

type Pipeline struct {
	source   sheets.RowSource
	specs    []SourceSpec
	recorder Recorder
	logger   *log.Logger
	now      func() time.Time
}

type Option func(*Pipeline)

func WithRecorder(r Recorder) Option {
	return func(p *Pipeline) { p.recorder = r }
}

func WithLogger(l *log.Logger) Option {
	return func(p *Pipeline) {
		if l != nil {
			p.logger = l
		}
	}
}

// New creates a pipeline over the given specs. Entities without a spec
// produce empty collections.
func New(source sheets.RowSource, specs []SourceSpec, opts ...Option) *Pipeline {
	p := &Pipeline{
		source: source,
		specs:  specs,
		logger: log.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.logger = p.logger.WithPrefix("pipeline")
	return p
}

// Specs returns the configured sources.
func (p *Pipeline) Specs() []SourceSpec {
	return p.specs
}

// Run fetches every configured range and builds the payload. Any fetch
// failure fails the whole run with a *SourceFetchError.
func (p *Pipeline) Run(ctx context.Context) (*models.Payload, error) {
	run := p.startRun(models.RunModeFull)

	raw, err := p.fetch(ctx, run, false)
	if err != nil {
		p.finishRun(ctx, run, err)
		return nil, err
	}

	payload := p.Build(raw)
	run.Orders = len(payload.Orders)
	run.Contacts = len(payload.Contacts)
	run.Notes = len(payload.Notes)
	run.Companies = len(payload.Companies)
	p.finishRun(ctx, run, nil)

	return payload, nil
}

// FetchRaw returns unmapped rows keyed "raw<Entity>", reading each
// source's debug range. It is a diagnostic view, not a transformation.
func (p *Pipeline) FetchRaw(ctx context.Context) (models.RawPayload, error) {
	run := p.startRun(models.RunModeDebug)

	raw, err := p.fetch(ctx, run, true)
	if err != nil {
		p.finishRun(ctx, run, err)
		return nil, err
	}

	out := make(models.RawPayload, len(raw))
	for entity, rows := range raw {
		out[RawKey(entity)] = rows
	}
	p.finishRun(ctx, run, nil)
	return out, nil
}

// RawKey names an entity's rows in debug output, e.g. "rawOrders".
func RawKey(entity mapper.Entity) string {
	name := string(entity)
	if name == "" {
		return "raw"
	}
	return "raw" + strings.ToUpper(name[:1]) + name[1:]
}

// Build maps raw rows and aggregates companies. It is pure: identical input
// yields identical output.
func (p *Pipeline) Build(raw RawRows) *models.Payload {
	payload := models.NewPayload()

	for _, spec := range p.specs {
		rows := raw[spec.Entity]
		switch spec.Entity {
		case mapper.EntityOrders:
			payload.Orders = mapper.MapOrders(spec.Schema, rows)
		case mapper.EntityContacts:
			payload.Contacts = mapper.MapContacts(spec.Schema, rows)
		case mapper.EntityNotes:
			payload.Notes = mapper.MapNotes(spec.Schema, rows)
		}
	}

	payload.Companies = rollup.Aggregate(payload.Orders)
	return payload
}

func (p *Pipeline) fetch(ctx context.Context, run *models.FetchRun, debug bool) (RawRows, error) {
	results := make([][][]any, len(p.specs))
	errs := make([]error, len(p.specs))
	ranges := make([]string, len(p.specs))

	g, gctx := errgroup.WithContext(ctx)
	for i, spec := range p.specs {
		ranges[i] = spec.Range
		if debug && spec.DebugRange != "" {
			ranges[i] = spec.DebugRange
		}

		g.Go(func() error {
			rows, err := p.source.FetchRows(gctx, spec.SpreadsheetID, ranges[i])
			if err != nil {
				errs[i] = err
				p.logger.Error("failed to fetch sheet",
					"entity", spec.Entity, "sheet", spec.SpreadsheetID, "range", ranges[i], "err", err)
				return &SourceFetchError{
					Entity:        spec.Entity,
					SpreadsheetID: spec.SpreadsheetID,
					Range:         ranges[i],
					Err:           err,
				}
			}
			results[i] = rows
			return nil
		})
	}
	err := g.Wait()

	raw := make(RawRows, len(p.specs))
	for i, spec := range p.specs {
		fetch := models.SourceFetch{
			Entity:        string(spec.Entity),
			SpreadsheetID: spec.SpreadsheetID,
			Range:         ranges[i],
			Rows:          len(results[i]),
		}
		if errs[i] != nil {
			fetch.Error = errs[i].Error()
		}
		run.Sources = append(run.Sources, fetch)

		rows := results[i]
		if rows == nil {
			rows = [][]any{}
		}
		raw[spec.Entity] = rows
	}

	if err != nil {
		return nil, err
	}
	return raw, nil
}

func (p *Pipeline) startRun(mode string) *models.FetchRun {
	now := p.now()
	return &models.FetchRun{
		ID:        ulid.MustNew(ulid.Timestamp(now), ulid.DefaultEntropy()).String(),
		Mode:      mode,
		StartedAt: now,
	}
}

func (p *Pipeline) finishRun(ctx context.Context, run *models.FetchRun, err error) {
	run.FinishedAt = p.now()
	run.Status = models.RunStatusOK
	if err != nil {
		run.Status = models.RunStatusError
		run.Error = err.Error()
	} else {
		p.logger.Info("pipeline run complete",
			"run", run.ID, "mode", run.Mode, "orders", run.Orders, "contacts", run.Contacts,
			"notes", run.Notes, "companies", run.Companies, "took", run.Duration())
	}

	if p.recorder == nil {
		return
	}
	// Record even when the request context is done so failures are kept.
	if err := p.recorder.RecordRun(context.WithoutCancel(ctx), run); err != nil {
		p.logger.Warn("failed to record run", "run", run.ID, "err", err)
	}
}
