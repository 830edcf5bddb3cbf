package dbtest

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

func exec(t *testing.T, db *sqlx.DB, query string, args ...interface{}) {
	t.Helper()
	if _, err := db.ExecContext(context.Background(), db.Rebind(query), args...); err != nil {
		t.Fatalf("seed: %v", err)
	}
}

// SeedCategory inserts a category and returns its id.
func SeedCategory(t *testing.T, db *sqlx.DB, name string) string {
	t.Helper()
	id := uuid.New().String()
	now := time.Now().UTC()
	exec(t, db, `INSERT INTO categories (id, name, created_at, updated_at) VALUES (?, ?, ?, ?)`,
		id, name, now, now)
	return id
}

// SeedProduct inserts a product; costPrice is a decimal string such as "45.00".
func SeedProduct(t *testing.T, db *sqlx.DB, categoryID, name, costPrice string) string {
	t.Helper()
	id := uuid.New().String()
	now := time.Now().UTC()
	exec(t, db, `INSERT INTO products (id, category_id, name, cost_price, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`,
		id, categoryID, name, costPrice, now, now)
	return id
}

// SeedClient inserts a client with a placeholder password hash.
func SeedClient(t *testing.T, db *sqlx.DB, login string) string {
	t.Helper()
	id := uuid.New().String()
	now := time.Now().UTC()
	exec(t, db, `INSERT INTO clients (id, login, password_hash, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		id, login, "x", now, now)
	return id
}

func Assign(t *testing.T, db *sqlx.DB, clientID, categoryID string) {
	t.Helper()
	exec(t, db, `INSERT INTO client_categories (client_id, category_id, created_at) VALUES (?, ?, ?)`,
		clientID, categoryID, time.Now().UTC())
}

// SeedCoefficient inserts an override row and returns its id.
func SeedCoefficient(t *testing.T, db *sqlx.DB, clientID, productID, coefficient string) string {
	t.Helper()
	id := uuid.New().String()
	now := time.Now().UTC()
	exec(t, db, `INSERT INTO client_product_coefficients (id, client_id, product_id, coefficient, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`,
		id, clientID, productID, coefficient, now, now)
	return id
}

// Count returns the number of rows in table matching the optional where clause.
func Count(t *testing.T, db *sqlx.DB, table, where string, args ...interface{}) int {
	t.Helper()
	query := "SELECT count(*) FROM " + table
	if where != "" {
		query += " WHERE " + where
	}
	var n int
	if err := db.GetContext(context.Background(), &n, db.Rebind(query), args...); err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return n
}
