package store

import (
	"context"
	"fmt"
)

var mysqlSchema = []string{
	`CREATE TABLE IF NOT EXISTS persons (
		person_id VARCHAR(64) PRIMARY KEY,
		first_name VARCHAR(100) NOT NULL,
		last_name VARCHAR(100) NOT NULL,
		email VARCHAR(255) NOT NULL,
		role ENUM('customer', 'staff', 'admin') NOT NULL DEFAULT 'customer',
		UNIQUE KEY uk_email (email)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS addresses (
		address_id VARCHAR(64) PRIMARY KEY,
		person_id VARCHAR(64) NOT NULL,
		street_address VARCHAR(255) NOT NULL,
		city VARCHAR(100) NOT NULL,
		FOREIGN KEY (person_id) REFERENCES persons(person_id),
		INDEX idx_person_id (person_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS products (
		product_id VARCHAR(64) PRIMARY KEY,
		product_name VARCHAR(255) NOT NULL,
		price DECIMAL(10,2) NOT NULL,
		is_active BOOLEAN NOT NULL DEFAULT TRUE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS warehouses (
		warehouse_id VARCHAR(64) PRIMARY KEY,
		warehouse_name VARCHAR(255) NOT NULL,
		city VARCHAR(100) NOT NULL DEFAULT '',
		is_active BOOLEAN NOT NULL DEFAULT TRUE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS warehouse_stock (
		warehouse_id VARCHAR(64) NOT NULL,
		product_id VARCHAR(64) NOT NULL,
		stock_quantity INT NOT NULL,
		PRIMARY KEY (warehouse_id, product_id),
		FOREIGN KEY (warehouse_id) REFERENCES warehouses(warehouse_id),
		FOREIGN KEY (product_id) REFERENCES products(product_id),
		INDEX idx_product_id (product_id),
		CHECK (stock_quantity >= 0)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS orders (
		order_id VARCHAR(64) PRIMARY KEY,
		person_id VARCHAR(64) NOT NULL,
		address_id VARCHAR(64) NOT NULL,
		order_date VARCHAR(40) NOT NULL,
		order_status ENUM('Processing', 'Shipped', 'Delivered', 'Cancelled') NOT NULL,
		order_type VARCHAR(32) NOT NULL DEFAULT 'customer',
		shipping_cost DECIMAL(10,2) NOT NULL,
		shipped_day INT NULL,
		expected_delivery_day INT NULL,
		shipped_date VARCHAR(10) NULL,
		delivery_date VARCHAR(10) NULL,
		FOREIGN KEY (person_id) REFERENCES persons(person_id),
		FOREIGN KEY (address_id) REFERENCES addresses(address_id),
		INDEX idx_person_id (person_id),
		INDEX idx_status (order_status),
		INDEX idx_order_date (order_date)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS order_lines (
		order_id VARCHAR(64) NOT NULL,
		product_id VARCHAR(64) NOT NULL,
		quantity INT NOT NULL,
		unit_price DECIMAL(10,2) NOT NULL,
		line_status ENUM('Processing', 'Shipped', 'Delivered', 'Cancelled') NOT NULL,
		PRIMARY KEY (order_id, product_id),
		FOREIGN KEY (order_id) REFERENCES orders(order_id),
		FOREIGN KEY (product_id) REFERENCES products(product_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS payments (
		payment_id VARCHAR(64) PRIMARY KEY,
		order_id VARCHAR(64) NOT NULL,
		payment_method VARCHAR(32) NOT NULL,
		payment_status VARCHAR(32) NOT NULL,
		amount DECIMAL(10,2) NOT NULL,
		paid_at VARCHAR(40) NOT NULL,
		card_last_four CHAR(4) NULL,
		cardholder_name VARCHAR(255) NULL,
		expiration_date CHAR(5) NULL,
		hashed_card_number VARCHAR(255) NULL,
		UNIQUE KEY uk_order_id (order_id),
		FOREIGN KEY (order_id) REFERENCES orders(order_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS persons (
		person_id TEXT PRIMARY KEY,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		role TEXT NOT NULL DEFAULT 'customer'
	)`,

	`CREATE TABLE IF NOT EXISTS addresses (
		address_id TEXT PRIMARY KEY,
		person_id TEXT NOT NULL REFERENCES persons(person_id),
		street_address TEXT NOT NULL,
		city TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS products (
		product_id TEXT PRIMARY KEY,
		product_name TEXT NOT NULL,
		price TEXT NOT NULL,
		is_active INTEGER NOT NULL DEFAULT 1
	)`,

	`CREATE TABLE IF NOT EXISTS warehouses (
		warehouse_id TEXT PRIMARY KEY,
		warehouse_name TEXT NOT NULL,
		city TEXT NOT NULL DEFAULT '',
		is_active INTEGER NOT NULL DEFAULT 1
	)`,

	`CREATE TABLE IF NOT EXISTS warehouse_stock (
		warehouse_id TEXT NOT NULL REFERENCES warehouses(warehouse_id),
		product_id TEXT NOT NULL REFERENCES products(product_id),
		stock_quantity INTEGER NOT NULL CHECK (stock_quantity >= 0),
		PRIMARY KEY (warehouse_id, product_id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_warehouse_stock_product ON warehouse_stock(product_id)`,

	`CREATE TABLE IF NOT EXISTS orders (
		order_id TEXT PRIMARY KEY,
		person_id TEXT NOT NULL REFERENCES persons(person_id),
		address_id TEXT NOT NULL REFERENCES addresses(address_id),
		order_date TEXT NOT NULL,
		order_status TEXT NOT NULL,
		order_type TEXT NOT NULL DEFAULT 'customer',
		shipping_cost TEXT NOT NULL,
		shipped_day INTEGER,
		expected_delivery_day INTEGER,
		shipped_date TEXT,
		delivery_date TEXT
	)`,
	`CREATE INDEX IF NOT EXISTS idx_orders_person ON orders(person_id)`,
	`CREATE INDEX IF NOT EXISTS idx_orders_status ON orders(order_status)`,
	`CREATE INDEX IF NOT EXISTS idx_orders_date ON orders(order_date)`,

	`CREATE TABLE IF NOT EXISTS order_lines (
		order_id TEXT NOT NULL REFERENCES orders(order_id),
		product_id TEXT NOT NULL REFERENCES products(product_id),
		quantity INTEGER NOT NULL,
		unit_price TEXT NOT NULL,
		line_status TEXT NOT NULL,
		PRIMARY KEY (order_id, product_id)
	)`,

	`CREATE TABLE IF NOT EXISTS payments (
		payment_id TEXT PRIMARY KEY,
		order_id TEXT NOT NULL UNIQUE REFERENCES orders(order_id),
		payment_method TEXT NOT NULL,
		payment_status TEXT NOT NULL,
		amount TEXT NOT NULL,
		paid_at TEXT NOT NULL,
		card_last_four TEXT,
		cardholder_name TEXT,
		expiration_date TEXT,
		hashed_card_number TEXT
	)`,
}

// Tables in dependency order; DropSchema walks it backwards.
var tables = []string{
	"persons", "addresses", "products", "warehouses",
	"warehouse_stock", "orders", "order_lines", "payments",
}

// Migrate creates the schema. Idempotent due to IF NOT EXISTS.
func (db *DB) Migrate(ctx context.Context) error {
	statements := sqliteSchema
	if db.Dialect == MySQL {
		statements = mysqlSchema
	}
	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("store: apply schema: %w", err)
		}
	}
	return nil
}

// DropSchema removes every storefront table.
func (db *DB) DropSchema(ctx context.Context) error {
	for i := len(tables) - 1; i >= 0; i-- {
		if _, err := db.ExecContext(ctx, "DROP TABLE IF EXISTS "+tables[i]); err != nil {
			return fmt.Errorf("store: drop %s: %w", tables[i], err)
		}
	}
	return nil
}
