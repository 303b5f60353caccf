package catalog

import (
	"github.com/johnleydelgado/legacy-app-sub005/internal/domain/search/entity"
	"github.com/johnleydelgado/legacy-app-sub005/internal/domain/search/field"
	"github.com/johnleydelgado/legacy-app-sub005/internal/domain/search/mode"
)

// Invoice matches the whole query against ids, text, dates and amounts.
// Ids match by equality only.
func Invoice() *entity.Entity {
	fields := []field.Field{
		ref("id", "i", "id"),
		ref("customer_id", "i", "customer_id"),
		ref("contact_id", "i", "contact_id"),
		text("invoice_number", "i", "invoice_number"),
		text("customer_name", "c", "name"),
	}
	fields = append(fields, contactFields()...)
	fields = append(fields,
		text("status", "i", "status"),
		text("process", "i", "process"),
		text("currency", "i", "currency"),
		text("notes", "i", "notes"),
		text("terms", "i", "terms"),
		text("tags", "i", "tags"),
		date("invoice_date", "i", "invoice_date"),
		date("due_date", "i", "due_date"),
		amount("total_amount", "i", "total_amount"),
		amount("subtotal", "i", "subtotal"),
		amount("tax_total", "i", "tax_total"),
	)

	defaults := make([]string, 0, len(fields))
	for _, f := range fields {
		defaults = append(defaults, f.Name())
	}

	return entity.MustNew(entity.Config{
		Name:  Invoices,
		Table: "invoices",
		Alias: "i",
		Key:   "id",
		Columns: []entity.Column{
			col("i", "id"),
			col("i", "invoice_number"),
			col("i", "invoice_date"),
			col("i", "due_date"),
			col("i", "status"),
			col("i", "process"),
			col("i", "currency"),
			col("i", "subtotal"),
			col("i", "tax_total"),
			col("i", "total_amount"),
			col("i", "customer_id"),
			colAs("c", "name", "customer_name"),
		},
		Fields:   fields,
		Defaults: defaults,
		Joins: []entity.Join{
			{Alias: "c", Clause: "LEFT JOIN customers c ON c.id = i.customer_id"},
			{Alias: "ct", Clause: "LEFT JOIN contacts ct ON ct.id = i.contact_id"},
		},
		DefaultOrder: []entity.Order{desc("invoice_date", "i", "invoice_date")},
		Sortable: map[string]entity.Sortable{
			"id":             sortable("i", "id"),
			"invoice_number": sortable("i", "invoice_number"),
			"invoice_date":   sortable("i", "invoice_date"),
			"due_date":       sortable("i", "due_date"),
			"total_amount":   sortable("i", "total_amount"),
			"status":         sortable("i", "status"),
		},
		Filterable:  []field.Field{text("status", "i", "status")},
		DefaultMode: mode.Phrase,
	})
}
