package catalog

import (
	"github.com/johnleydelgado/legacy-app-sub005/internal/domain/search/entity"
	"github.com/johnleydelgado/legacy-app-sub005/internal/domain/search/field"
)

// ShippingOrder searches shipping orders by number and customer, matching
// with and without spaces.
func ShippingOrder() *entity.Entity {
	return entity.MustNew(entity.Config{
		Name:  ShippingOrders,
		Table: "shipping_orders",
		Alias: "so",
		Key:   "id",
		Columns: []entity.Column{
			col("so", "id"),
			col("so", "shipping_order_number"),
			col("so", "order_date"),
			col("so", "carrier"),
			col("so", "status"),
			col("so", "customer_id"),
			colAs("c", "name", "customer_name"),
		},
		Fields: []field.Field{
			text("shipping_order_number", "so", "shipping_order_number", field.WithCompact()),
			text("customer_name", "c", "name", field.WithCompact()),
			text("customer_owner_name", "c", "owner_name", field.WithCompact()),
			text("carrier", "so", "carrier"),
			text("status", "so", "status"),
			key("id", "so", "id"),
			date("order_date", "so", "order_date"),
		},
		Defaults: []string{"shipping_order_number", "customer_name", "customer_owner_name"},
		Joins: []entity.Join{
			{Alias: "c", Clause: "LEFT JOIN customers c ON c.id = so.customer_id"},
		},
		DefaultOrder: []entity.Order{
			desc("order_date", "so", "order_date"),
			asc("shipping_order_number", "so", "shipping_order_number"),
		},
		Sortable: map[string]entity.Sortable{
			"id":                    sortable("so", "id"),
			"shipping_order_number": sortable("so", "shipping_order_number"),
			"order_date":            sortable("so", "order_date"),
			"carrier":               sortable("so", "carrier"),
			"status":                sortable("so", "status"),
		},
		Filterable: []field.Field{text("status", "so", "status")},
	})
}
