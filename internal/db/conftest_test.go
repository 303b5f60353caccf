package db

import (
	"github.com/johnleydelgado/legacy-app-sub005/internal/domain/search/entity"
	"github.com/johnleydelgado/legacy-app-sub005/internal/domain/search/field"
)

func testEntity() *entity.Entity {
	return entity.MustNew(entity.Config{
		Name:  "customers",
		Table: "customers",
		Alias: "c",
		Key:   "id",
		Columns: []entity.Column{
			{Name: "id", Alias: "c", Expr: "c.id"},
			{Name: "name", Alias: "c", Expr: "c.name"},
		},
		Fields: []field.Field{
			field.MustNew("name", "c", "c.name"),
			field.MustNew("owner_name", "c", "c.owner_name"),
			field.MustNew("id", "c", "c.id",
				field.WithIdentifier(), field.WithTextExpr("CAST(c.id AS TEXT)"), field.WithoutFolding()),
			field.MustNew("contact_name", "ct", "ct.first_name"),
			field.MustNew("code", "c", "c.code", field.WithCompact()),
			field.MustNew("created", "c", "c.created_at", field.WithDate()),
			field.MustNew("balance", "c", "c.balance", field.WithAmount()),
		},
		Defaults: []string{"name", "owner_name"},
		Joins: []entity.Join{
			{Alias: "ct", Clause: "LEFT JOIN contacts ct ON ct.customer_id = c.id"},
		},
		DefaultOrder: []entity.Order{{Field: "name", Alias: "c", Expr: "c.name"}},
	})
}
