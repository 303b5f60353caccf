package catalog

import (
	"github.com/johnleydelgado/legacy-app-sub005/internal/domain/search/entity"
	"github.com/johnleydelgado/legacy-app-sub005/internal/domain/search/field"
)

// Customer searches customers by name and owner by default. Contacts are
// one-to-many, so contact fields can match several rows per customer.
func Customer() *entity.Entity {
	fields := []field.Field{
		text("name", "c", "name"),
		text("owner_name", "c", "owner_name"),
		text("email", "c", "email"),
		text("phone", "c", "phone"),
		key("id", "c", "id"),
	}
	fields = append(fields, contactFields()...)

	return entity.MustNew(entity.Config{
		Name:  Customers,
		Table: "customers",
		Alias: "c",
		Key:   "id",
		Columns: []entity.Column{
			col("c", "id"),
			col("c", "name"),
			col("c", "owner_name"),
			col("c", "email"),
			col("c", "phone"),
			col("c", "status"),
			col("c", "created_at"),
		},
		Fields:   fields,
		Defaults: []string{"name", "owner_name"},
		Joins: []entity.Join{
			{Alias: "ct", Clause: "LEFT JOIN contacts ct ON ct.customer_id = c.id"},
		},
		DefaultOrder: []entity.Order{asc("name", "c", "name")},
		Sortable: map[string]entity.Sortable{
			"id":         sortable("c", "id"),
			"name":       sortable("c", "name"),
			"owner_name": sortable("c", "owner_name"),
			"created_at": sortable("c", "created_at"),
		},
		Filterable: []field.Field{text("status", "c", "status")},
	})
}
