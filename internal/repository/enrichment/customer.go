package enrichment

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/johnleydelgado/legacy-app-sub005/internal/domain/record"
)

// Contacts attaches a customer's contacts and its primary contact.
type Contacts struct {
	q querier
}

// NewContacts creates the contacts enricher.
func NewContacts(q querier) *Contacts { return &Contacts{q: q} }

// Name identifies the enrichment in logs, metrics and cache keys.
func (c *Contacts) Name() string { return "contacts" }

// Defaults is attached when the lookup fails under a substitute policy.
func (c *Contacts) Defaults() map[string]any {
	return map[string]any{"contacts": []record.Record{}, "primary_contact": nil}
}

// CacheKey keys the enrichment by customer id.
func (c *Contacts) CacheKey(rec record.Record) (string, bool) {
	id, ok := idOf(rec, "id")
	return cacheKey(c.Name(), id), ok
}

// Enrich loads contacts ordered primary first.
func (c *Contacts) Enrich(ctx context.Context, rec record.Record) (map[string]any, error) {
	id, ok := idOf(rec, "id")
	if !ok {
		return c.Defaults(), nil
	}
	rows, err := query(ctx, c.q, psql.
		Select("id", "first_name", "last_name", "email", "phone", "is_primary").
		From("contacts").
		Where(sq.Eq{"customer_id": id}).
		OrderBy("is_primary DESC", "id ASC"))
	if err != nil {
		return nil, fmt.Errorf("load contacts for customer %d: %w", id, err)
	}

	var primary any
	for _, r := range rows {
		if p, _ := r["is_primary"].(bool); p {
			primary = r
			break
		}
	}
	return map[string]any{"contacts": rows, "primary_contact": primary}, nil
}

// Addresses attaches a customer's addresses.
type Addresses struct {
	q querier
}

// NewAddresses creates the addresses enricher.
func NewAddresses(q querier) *Addresses { return &Addresses{q: q} }

// Name identifies the enrichment.
func (a *Addresses) Name() string { return "addresses" }

// Defaults is attached when the lookup fails under a substitute policy.
func (a *Addresses) Defaults() map[string]any {
	return map[string]any{"addresses": []record.Record{}}
}

// CacheKey keys the enrichment by customer id.
func (a *Addresses) CacheKey(rec record.Record) (string, bool) {
	id, ok := idOf(rec, "id")
	return cacheKey(a.Name(), id), ok
}

// Enrich loads addresses.
func (a *Addresses) Enrich(ctx context.Context, rec record.Record) (map[string]any, error) {
	id, ok := idOf(rec, "id")
	if !ok {
		return a.Defaults(), nil
	}
	rows, err := query(ctx, a.q, psql.
		Select("id", "kind", "line1", "line2", "city", "state", "postal_code", "country").
		From("addresses").
		Where(sq.Eq{"customer_id": id}).
		OrderBy("id ASC"))
	if err != nil {
		return nil, fmt.Errorf("load addresses for customer %d: %w", id, err)
	}
	return map[string]any{"addresses": rows}, nil
}

// OrderStats attaches a customer's order count and order total.
type OrderStats struct {
	q querier
}

// NewOrderStats creates the order totals enricher.
func NewOrderStats(q querier) *OrderStats { return &OrderStats{q: q} }

// Name identifies the enrichment.
func (o *OrderStats) Name() string { return "order_stats" }

// Defaults is attached when the lookup fails under a substitute policy.
func (o *OrderStats) Defaults() map[string]any {
	return map[string]any{"order_count": int64(0), "order_total": "0"}
}

// CacheKey keys the enrichment by customer id.
func (o *OrderStats) CacheKey(rec record.Record) (string, bool) {
	id, ok := idOf(rec, "id")
	return cacheKey(o.Name(), id), ok
}

// Enrich aggregates the customer's orders.
func (o *OrderStats) Enrich(ctx context.Context, rec record.Record) (map[string]any, error) {
	id, ok := idOf(rec, "id")
	if !ok {
		return o.Defaults(), nil
	}
	rows, err := query(ctx, o.q, psql.
		Select("COUNT(*) AS order_count", "COALESCE(SUM(total_amount), 0) AS order_total").
		From("orders").
		Where(sq.Eq{"customer_id": id}))
	if err != nil {
		return nil, fmt.Errorf("load order totals for customer %d: %w", id, err)
	}
	if len(rows) == 0 {
		return o.Defaults(), nil
	}
	return map[string]any{"order_count": rows[0]["order_count"], "order_total": rows[0]["order_total"]}, nil
}

// CustomerSummary attaches the owning customer of a quote, order or invoice.
type CustomerSummary struct {
	q querier
}

// NewCustomerSummary creates the customer summary enricher.
func NewCustomerSummary(q querier) *CustomerSummary { return &CustomerSummary{q: q} }

// Name identifies the enrichment.
func (s *CustomerSummary) Name() string { return "customer" }

// Defaults is attached when the lookup fails under a substitute policy.
func (s *CustomerSummary) Defaults() map[string]any {
	return map[string]any{"customer": nil}
}

// CacheKey keys the enrichment by customer id.
func (s *CustomerSummary) CacheKey(rec record.Record) (string, bool) {
	id, ok := idOf(rec, "customer_id")
	return cacheKey(s.Name(), id), ok
}

// Enrich loads the customer referenced by customer_id. Rows without a
// customer get the defaults.
func (s *CustomerSummary) Enrich(ctx context.Context, rec record.Record) (map[string]any, error) {
	id, ok := idOf(rec, "customer_id")
	if !ok {
		return s.Defaults(), nil
	}
	rows, err := query(ctx, s.q, psql.
		Select("id", "name", "owner_name", "email", "phone", "status").
		From("customers").
		Where(sq.Eq{"id": id}).
		Limit(1))
	if err != nil {
		return nil, fmt.Errorf("load customer %d: %w", id, err)
	}
	if len(rows) == 0 {
		return s.Defaults(), nil
	}
	return map[string]any{"customer": rows[0]}, nil
}
