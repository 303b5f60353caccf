package catalog

import (
	"github.com/johnleydelgado/legacy-app-sub005/internal/domain/search/entity"
	"github.com/johnleydelgado/legacy-app-sub005/internal/domain/search/field"
)

// Order searches every word independently across order, customer and
// contact columns, with numeric words also matching the order id.
func Order() *entity.Entity {
	fields := []field.Field{
		key("id", "o", "id"),
		text("order_number", "o", "order_number"),
		text("status", "o", "status"),
		text("customer_name", "c", "name"),
		text("customer_owner_name", "c", "owner_name"),
	}
	fields = append(fields, contactFields()...)
	fields = append(fields,
		date("order_date", "o", "order_date"),
		date("delivery_date", "o", "delivery_date"),
		amount("total_amount", "o", "total_amount"),
	)

	return entity.MustNew(entity.Config{
		Name:  Orders,
		Table: "orders",
		Alias: "o",
		Key:   "id",
		Columns: []entity.Column{
			col("o", "id"),
			col("o", "order_number"),
			col("o", "order_date"),
			col("o", "delivery_date"),
			col("o", "status"),
			col("o", "user_owner"),
			col("o", "total_amount"),
			col("o", "customer_id"),
			colAs("c", "name", "customer_name"),
		},
		Fields: fields,
		Defaults: []string{
			"id", "order_number", "status", "customer_name", "customer_owner_name",
			"contact_first_name", "contact_last_name", "contact_full_name",
			"order_date", "delivery_date",
		},
		Joins: []entity.Join{
			{Alias: "c", Clause: "LEFT JOIN customers c ON c.id = o.customer_id"},
			{Alias: "ct", Clause: "LEFT JOIN contacts ct ON ct.id = o.contact_id"},
		},
		DefaultOrder: []entity.Order{desc("order_date", "o", "order_date")},
		Sortable: map[string]entity.Sortable{
			"id":            sortable("o", "id"),
			"order_number":  sortable("o", "order_number"),
			"order_date":    sortable("o", "order_date"),
			"delivery_date": sortable("o", "delivery_date"),
			"total_amount":  sortable("o", "total_amount"),
			"user_owner":    sortable("o", "user_owner"),
			"status":        sortable("o", "status"),
			"customer_name": sortable("c", "name"),
		},
		Filterable: []field.Field{
			text("status", "o", "status"),
			text("user_owner", "o", "user_owner"),
		},
	})
}
