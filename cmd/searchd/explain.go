package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/johnleydelgado/legacy-app-sub005/internal/catalog"
	"github.com/johnleydelgado/legacy-app-sub005/internal/db"
	"github.com/johnleydelgado/legacy-app-sub005/internal/db/memory"
	"github.com/johnleydelgado/legacy-app-sub005/internal/domain/record"
	"github.com/johnleydelgado/legacy-app-sub005/internal/domain/search/filter"
	"github.com/johnleydelgado/legacy-app-sub005/internal/domain/search/request"
	searchuc "github.com/johnleydelgado/legacy-app-sub005/internal/usecase/search"
)

type explainOptions struct {
	page      int
	limit     int
	fields    string
	match     string
	sortField string
	sortDir   string
	filters   map[string]string
	eval      string
}

// explainOutput is what explain prints as JSON.
type explainOutput struct {
	Entity    string `json:"entity"`
	Empty     bool   `json:"empty,omitempty"`
	SelectSQL string `json:"select_sql,omitempty"`
	CountSQL  string `json:"count_sql,omitempty"`
	Args      []any  `json:"args,omitempty"`
	Result    any    `json:"result,omitempty"`
}

func explainCmd() *cobra.Command {
	var opts explainOptions
	cmd := &cobra.Command{
		Use:   "explain <entity> <query>",
		Short: "Print the SQL a search would run, optionally evaluating it against a JSON fixture",
		Example: `  searchd explain orders "acme 100"
  searchd explain customers "john smith" --fields name,owner_name
  searchd explain orders so --filter status=open --eval testdata/orders.json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExplain(cmd.OutOrStdout(), args[0], args[1], opts)
		},
	}
	f := cmd.Flags()
	f.IntVar(&opts.page, "page", request.DefaultPage, "Page number")
	f.IntVar(&opts.limit, "limit", request.DefaultLimit, "Page size")
	f.StringVar(&opts.fields, "fields", "", "Comma-separated searchable fields (default: entity defaults)")
	f.StringVar(&opts.match, "match", "", "Match mode: partial, exact or phrase (default: entity default)")
	f.StringVar(&opts.sortField, "sort", "", "Sort field")
	f.StringVar(&opts.sortDir, "dir", "ASC", "Sort direction")
	f.StringToStringVar(&opts.filters, "filter", nil, "Equality filter key=value (repeatable)")
	f.StringVar(&opts.eval, "eval", "", "Evaluate against a JSON fixture {\"entity\": [rows...]}")
	return cmd
}

func runExplain(w io.Writer, entityName, query string, opts explainOptions) error {
	expr, err := filter.FromMap(opts.filters)
	if err != nil {
		return fmt.Errorf("parse filters: %w", err)
	}
	req, err := request.New(query, opts.page, opts.limit,
		request.WithFields(opts.fields),
		request.WithMode(opts.match),
		request.WithSort(request.NewSort(opts.sortField, opts.sortDir)),
		request.WithFilters(expr),
	)
	if err != nil {
		return err
	}

	var repo searchuc.Repository = noSource{}
	if opts.eval != "" {
		store, err := loadFixture(opts.eval)
		if err != nil {
			return err
		}
		repo = store
	}
	svc := searchuc.New(repo, catalog.Registry())

	out := explainOutput{Entity: entityName}
	plan, ok, err := svc.Explain(entityName, req)
	if err != nil {
		return err
	}
	if !ok {
		out.Empty = true
	} else if err := describe(&out, plan); err != nil {
		return err
	}

	if opts.eval != "" {
		page, err := svc.Search(context.Background(), entityName, req)
		if err != nil {
			return err
		}
		m := page.Meta()
		out.Result = map[string]any{
			"items": page.Items(),
			"meta": map[string]any{
				"totalItems":   m.TotalItems,
				"itemCount":    m.ItemCount,
				"itemsPerPage": m.ItemsPerPage,
				"totalPages":   m.TotalPages,
				"currentPage":  m.CurrentPage,
			},
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func describe(out *explainOutput, plan db.QueryPlan) error {
	sel, args, err := plan.SelectSQL()
	if err != nil {
		return fmt.Errorf("render select: %w", err)
	}
	cnt, _, err := plan.CountSQL()
	if err != nil {
		return fmt.Errorf("render count: %w", err)
	}
	out.SelectSQL, out.CountSQL, out.Args = sel, cnt, args
	return nil
}

func loadFixture(path string) (*memory.Store, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("open fixture: %w", err)
	}
	defer f.Close()
	return memory.LoadJSON(f)
}

// noSource backs explain without --eval; planning never reaches it.
type noSource struct{}

func (noSource) Fetch(context.Context, db.QueryPlan) ([]record.Record, error) {
	return nil, errNoSource
}

func (noSource) Count(context.Context, db.QueryPlan) (int64, error) {
	return 0, errNoSource
}

var errNoSource = errors.New("no record source; pass --eval")
