package search

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/johnleydelgado/legacy-app-sub005/internal/db"
	"github.com/johnleydelgado/legacy-app-sub005/internal/domain"
	"github.com/johnleydelgado/legacy-app-sub005/internal/domain/record"
	"github.com/johnleydelgado/legacy-app-sub005/internal/domain/search/entity"
	"github.com/johnleydelgado/legacy-app-sub005/internal/domain/search/mode"
	"github.com/johnleydelgado/legacy-app-sub005/internal/domain/search/predicate"
	"github.com/johnleydelgado/legacy-app-sub005/internal/domain/search/request"
	"github.com/johnleydelgado/legacy-app-sub005/internal/domain/search/result"
	"github.com/johnleydelgado/legacy-app-sub005/internal/domain/search/token"
	"github.com/johnleydelgado/legacy-app-sub005/internal/logger"
	"github.com/johnleydelgado/legacy-app-sub005/internal/metrics"
)

// DefaultConcurrency bounds in-flight enrichment calls per search.
const DefaultConcurrency = 8

// Service runs free-text searches over the registered entities.
type Service struct {
	repo        Repository
	registry    Registry
	enrichments map[string][]Enrichment
	concurrency int
}

// Option configures a Service.
type Option func(*Service)

// WithEnrichment registers enrichments for an entity, applied in order.
func WithEnrichment(entityName string, e ...Enrichment) Option {
	return func(s *Service) {
		s.enrichments[entityName] = append(s.enrichments[entityName], e...)
	}
}

// WithConcurrency bounds in-flight enrichment calls. Non-positive values
// keep the default.
func WithConcurrency(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// New creates a search service.
func New(repo Repository, registry Registry, opts ...Option) *Service {
	s := &Service{
		repo:        repo,
		registry:    registry,
		enrichments: make(map[string][]Enrichment),
		concurrency: DefaultConcurrency,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Search matches req against entityName and returns one enriched page.
// An empty query returns an empty page without touching the record source.
func (s *Service) Search(ctx context.Context, entityName string, req request.Request) (result.Page, error) {
	start := time.Now()
	ctx = logger.With(ctx, zap.String("entity", entityName))
	log := logger.FromContext(ctx)

	e, err := s.registry.Get(entityName)
	if err != nil {
		return result.Page{}, err
	}
	if err := req.CheckLimit(e.MaxLimit()); err != nil {
		return result.Page{}, err
	}

	q := token.Tokenize(req.Query())
	if q.IsEmpty() {
		metrics.SearchEmptyQueriesTotal.WithLabelValues(e.Name()).Inc()
		log.Debug("Empty query, skipping record source")
		return result.Empty(req.Page(), req.Limit()), nil
	}

	plan, m, err := s.plan(e, q, req)
	if err != nil {
		return result.Page{}, err
	}

	rows, total, err := s.execute(ctx, e, plan)
	if err != nil {
		return result.Page{}, err
	}

	if err := s.enrich(ctx, e, rows); err != nil {
		return result.Page{}, err
	}

	page := result.New(rows, result.NewMeta(total, req.Page(), req.Limit()))

	metrics.SearchDuration.WithLabelValues(e.Name(), string(m)).Observe(time.Since(start).Seconds())
	metrics.SearchResultsTotal.WithLabelValues(e.Name()).Add(float64(len(rows)))
	log.Debug("Search completed",
		zap.String("query", q.Normalized()),
		zap.String("mode", string(m)),
		zap.Int("words", len(q.Words())),
		zap.Int("placeholders", len(plan.Args)),
		zap.Int64("total", total),
		zap.Int("returned", len(rows)),
		zap.Duration("took", time.Since(start)),
	)
	return page, nil
}

// Explain returns the plan a search would execute. The second result is
// false when the query is empty and nothing would run.
func (s *Service) Explain(entityName string, req request.Request) (db.QueryPlan, bool, error) {
	e, err := s.registry.Get(entityName)
	if err != nil {
		return db.QueryPlan{}, false, err
	}
	if err := req.CheckLimit(e.MaxLimit()); err != nil {
		return db.QueryPlan{}, false, err
	}
	q := token.Tokenize(req.Query())
	if q.IsEmpty() {
		return db.QueryPlan{}, false, nil
	}
	plan, _, err := s.plan(e, q, req)
	if err != nil {
		return db.QueryPlan{}, false, err
	}
	return plan, true, nil
}

func (s *Service) plan(e *entity.Entity, q token.Query, req request.Request) (db.QueryPlan, mode.Mode, error) {
	fields := e.ResolveFields(req.Fields())
	m := mode.Parse(req.Mode(), e.DefaultMode())

	tree := predicate.Plan(q, fields, m)
	if filters := filterNodes(e, req); len(filters) > 0 {
		tree = predicate.And(append([]predicate.Node{tree}, filters...)...)
	}

	plan, err := db.Render(e, tree, e.Ordering(req.Sort()), db.Pagination{Page: req.Page(), Limit: req.Limit()})
	if err != nil {
		return db.QueryPlan{}, "", fmt.Errorf("plan %s: %w", e.Name(), err)
	}
	return plan, m, nil
}

// filterNodes turns structured filters into equality leaves. Keys the entity
// does not declare filterable are ignored.
func filterNodes(e *entity.Entity, req request.Request) []predicate.Node {
	var nodes []predicate.Node
	for _, c := range req.Filters().Conditions() {
		f, ok := e.Filter(c.Key())
		if !ok {
			continue
		}
		nodes = append(nodes, predicate.NewLeaf(predicate.EqualTo(f, c.Value())))
	}
	return nodes
}

// execute runs the page fetch and the total count concurrently.
func (s *Service) execute(ctx context.Context, e *entity.Entity, plan db.QueryPlan) ([]record.Record, int64, error) {
	var (
		rows  []record.Record
		total int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if rows, err = s.repo.Fetch(gctx, plan); err != nil {
			metrics.SearchErrorsTotal.WithLabelValues(e.Name(), "fetch").Inc()
			return domain.NewSearchExecution(e.Name(), "fetch", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if total, err = s.repo.Count(gctx, plan); err != nil {
			metrics.SearchErrorsTotal.WithLabelValues(e.Name(), "count").Inc()
			return domain.NewSearchExecution(e.Name(), "count", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}
	if rows == nil {
		rows = []record.Record{}
	}
	return rows, total, nil
}

// enrich runs every registered enrichment for every row. Results are merged
// after all calls finish so rows are never written concurrently.
func (s *Service) enrich(ctx context.Context, e *entity.Entity, rows []record.Record) error {
	enrichments := s.enrichments[e.Name()]
	if len(enrichments) == 0 || len(rows) == 0 {
		return nil
	}
	log := logger.FromContext(ctx)

	extra := make([][]map[string]any, len(rows))
	for i := range extra {
		extra[i] = make([]map[string]any, len(enrichments))
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, row := range rows {
		for j, en := range enrichments {
			g.Go(func() error {
				fields, err := en.Enricher.Enrich(gctx, row)
				if err == nil {
					extra[i][j] = fields
					return nil
				}
				metrics.SearchErrorsTotal.WithLabelValues(e.Name(), "enrich").Inc()
				if en.Policy == FailPage {
					return fmt.Errorf("%w: %s %s: %w", domain.ErrEnrichment, e.Name(), en.Enricher.Name(), err)
				}
				metrics.EnrichmentFallbacksTotal.WithLabelValues(e.Name(), en.Enricher.Name()).Inc()
				log.Warn("Enrichment failed, using defaults",
					zap.String("entity", e.Name()),
					zap.String("enrichment", en.Enricher.Name()),
					zap.Error(err),
				)
				extra[i][j] = en.Enricher.Defaults()
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for i, row := range rows {
		for _, fields := range extra[i] {
			for k, v := range fields {
				row[k] = v
			}
		}
	}
	return nil
}
