package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"
)

type PersonRow struct {
	ID, FirstName, LastName, Email, Role string
}

type AddressRow struct {
	ID, PersonID, Street, City string
}

type ProductRow struct {
	ID, Name string
	Price    decimal.Decimal
	Active   bool
}

type WarehouseRow struct {
	ID, Name, City string
	Active         bool
}

type StockRow struct {
	WarehouseID, ProductID string
	Quantity               int
}

// Fixture is a set of reference rows written by Seed.
type Fixture struct {
	Persons    []PersonRow
	Addresses  []AddressRow
	Products   []ProductRow
	Warehouses []WarehouseRow
	Stock      []StockRow
}

// Seed inserts the fixture in one transaction.
func (db *DB) Seed(ctx context.Context, f Fixture) error {
	return db.InTx(ctx, func(tx *sql.Tx) error {
		for _, p := range f.Persons {
			role := p.Role
			if role == "" {
				role = "customer"
			}
			if _, err := tx.ExecContext(ctx,
				"INSERT INTO persons (person_id, first_name, last_name, email, role) VALUES (?, ?, ?, ?, ?)",
				p.ID, p.FirstName, p.LastName, p.Email, role); err != nil {
				return fmt.Errorf("store: seed person %q: %w", p.ID, err)
			}
		}
		for _, a := range f.Addresses {
			if _, err := tx.ExecContext(ctx,
				"INSERT INTO addresses (address_id, person_id, street_address, city) VALUES (?, ?, ?, ?)",
				a.ID, a.PersonID, a.Street, a.City); err != nil {
				return fmt.Errorf("store: seed address %q: %w", a.ID, err)
			}
		}
		for _, p := range f.Products {
			if _, err := tx.ExecContext(ctx,
				"INSERT INTO products (product_id, product_name, price, is_active) VALUES (?, ?, ?, ?)",
				p.ID, p.Name, p.Price.StringFixed(2), p.Active); err != nil {
				return fmt.Errorf("store: seed product %q: %w", p.ID, err)
			}
		}
		for _, w := range f.Warehouses {
			if _, err := tx.ExecContext(ctx,
				"INSERT INTO warehouses (warehouse_id, warehouse_name, city, is_active) VALUES (?, ?, ?, ?)",
				w.ID, w.Name, w.City, w.Active); err != nil {
				return fmt.Errorf("store: seed warehouse %q: %w", w.ID, err)
			}
		}
		for _, s := range f.Stock {
			if _, err := tx.ExecContext(ctx,
				"INSERT INTO warehouse_stock (warehouse_id, product_id, stock_quantity) VALUES (?, ?, ?)",
				s.WarehouseID, s.ProductID, s.Quantity); err != nil {
				return fmt.Errorf("store: seed stock %s/%s: %w", s.WarehouseID, s.ProductID, err)
			}
		}
		return nil
	})
}

// DemoFixture is the data set loaded by `storefrontctl seed`.
func DemoFixture() Fixture {
	return Fixture{
		Persons: []PersonRow{
			{ID: "admin", FirstName: "Ada", LastName: "Admin", Email: "admin@storefront.local", Role: "admin"},
			{ID: "cust-1", FirstName: "Carla", LastName: "Customer", Email: "carla@storefront.local", Role: "customer"},
		},
		Addresses: []AddressRow{
			{ID: "addr-1", PersonID: "cust-1", Street: "12 Market St", City: "Springfield"},
		},
		Products: []ProductRow{
			{ID: "prod-1", Name: "Espresso Machine", Price: decimal.RequireFromString("249.00"), Active: true},
			{ID: "prod-2", Name: "Coffee Grinder", Price: decimal.RequireFromString("89.50"), Active: true},
			{ID: "prod-3", Name: "Milk Frother", Price: decimal.RequireFromString("19.99"), Active: true},
		},
		Warehouses: []WarehouseRow{
			{ID: "wh-north", Name: "North", City: "Springfield", Active: true},
			{ID: "wh-south", Name: "South", City: "Shelbyville", Active: true},
		},
		Stock: []StockRow{
			{WarehouseID: "wh-north", ProductID: "prod-1", Quantity: 5},
			{WarehouseID: "wh-south", ProductID: "prod-1", Quantity: 3},
			{WarehouseID: "wh-north", ProductID: "prod-2", Quantity: 12},
			{WarehouseID: "wh-south", ProductID: "prod-3", Quantity: 40},
		},
	}
}
