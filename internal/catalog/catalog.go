// Package catalog declares the searchable business entities and how they
// map onto the relational schema.
package catalog

import (
	"github.com/johnleydelgado/legacy-app-sub005/internal/domain/search/entity"
	"github.com/johnleydelgado/legacy-app-sub005/internal/domain/search/field"
)

// Entity names.
const (
	Customers      = "customers"
	Quotes         = "quotes"
	Orders         = "orders"
	Invoices       = "invoices"
	ShippingOrders = "shipping_orders"
)

// Registry returns the registry of every searchable entity.
func Registry() *entity.Registry {
	r, err := entity.NewRegistry(
		Customer(),
		Quote(),
		Order(),
		Invoice(),
		ShippingOrder(),
	)
	if err != nil {
		panic(err)
	}
	return r
}

func col(alias, column string) entity.Column {
	return entity.Column{Name: column, Alias: alias, Expr: alias + "." + column}
}

func colAs(alias, column, name string) entity.Column {
	return entity.Column{Name: name, Alias: alias, Expr: alias + "." + column}
}

func text(name, alias, column string, opts ...field.Option) field.Field {
	return field.MustNew(name, alias, alias+"."+column, opts...)
}

func key(name, alias, column string) field.Field {
	return field.MustNew(name, alias, alias+"."+column,
		field.WithIdentifier(),
		field.WithTextExpr("CAST("+alias+"."+column+" AS TEXT)"),
		field.WithoutFolding(),
	)
}

func ref(name, alias, column string) field.Field {
	return field.MustNew(name, alias, alias+"."+column, field.WithIdentifierOnly())
}

func date(name, alias, column string) field.Field {
	return field.MustNew(name, alias, alias+"."+column, field.WithDate())
}

func amount(name, alias, column string) field.Field {
	return field.MustNew(name, alias, alias+"."+column, field.WithAmount())
}

// contactFields are the contact name fields shared by every entity that
// joins contacts as "ct".
func contactFields() []field.Field {
	return []field.Field{
		text("contact_first_name", "ct", "first_name"),
		text("contact_last_name", "ct", "last_name"),
		field.MustNew("contact_full_name", "ct", "CONCAT_WS(' ', ct.first_name, ct.last_name)"),
	}
}

func desc(field, alias, column string) entity.Order {
	return entity.Order{Field: field, Alias: alias, Expr: alias + "." + column, Desc: true}
}

func asc(field, alias, column string) entity.Order {
	return entity.Order{Field: field, Alias: alias, Expr: alias + "." + column}
}

func sortable(alias, column string) entity.Sortable {
	return entity.Sortable{Alias: alias, Expr: alias + "." + column}
}
