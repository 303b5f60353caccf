package catalog

import (
	"github.com/johnleydelgado/legacy-app-sub005/internal/domain/search/entity"
	"github.com/johnleydelgado/legacy-app-sub005/internal/domain/search/field"
	"github.com/johnleydelgado/legacy-app-sub005/internal/domain/search/mode"
)

// Quote matches the whole query by default; numbers and customer names
// also match with spaces removed ("Q 100" finds "Q100").
func Quote() *entity.Entity {
	fields := []field.Field{
		text("quote_number", "q", "quote_number", field.WithCompact()),
		text("customer_name", "c", "name", field.WithCompact()),
		text("customer_owner_name", "c", "owner_name", field.WithCompact()),
		text("status", "q", "status"),
		key("id", "q", "id"),
		date("quote_date", "q", "quote_date"),
		amount("total_amount", "q", "total_amount"),
	}
	fields = append(fields, contactFields()...)

	return entity.MustNew(entity.Config{
		Name:  Quotes,
		Table: "quotes",
		Alias: "q",
		Key:   "id",
		Columns: []entity.Column{
			col("q", "id"),
			col("q", "quote_number"),
			col("q", "quote_date"),
			col("q", "status"),
			col("q", "currency"),
			col("q", "total_amount"),
			col("q", "customer_id"),
			colAs("c", "name", "customer_name"),
		},
		Fields:   fields,
		Defaults: []string{"quote_number", "customer_name", "customer_owner_name"},
		Joins: []entity.Join{
			{Alias: "c", Clause: "LEFT JOIN customers c ON c.id = q.customer_id"},
			{Alias: "ct", Clause: "LEFT JOIN contacts ct ON ct.id = q.contact_id"},
		},
		DefaultOrder: []entity.Order{
			desc("quote_date", "q", "quote_date"),
			asc("quote_number", "q", "quote_number"),
		},
		Sortable: map[string]entity.Sortable{
			"id":            sortable("q", "id"),
			"quote_number":  sortable("q", "quote_number"),
			"quote_date":    sortable("q", "quote_date"),
			"total_amount":  sortable("q", "total_amount"),
			"status":        sortable("q", "status"),
			"customer_name": sortable("c", "name"),
		},
		Filterable:  []field.Field{text("status", "q", "status")},
		DefaultMode: mode.Phrase,
	})
}
