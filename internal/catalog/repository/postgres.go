package repository

import (
	"context"
	"strings"

	"github.com/fekuna/omnipos-portal/internal/catalog/dto"
	"github.com/fekuna/omnipos-portal/internal/model"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

const pricedColumns = `
        p.id, p.category_id, p.name, p.cost_price, p.image_url, p.created_at, p.updated_at,
        c.name AS category_name,
        k.coefficient AS override`

// pricedRow mirrors model.PricedProduct with a nullable override column.
type pricedRow struct {
	model.Product
	CategoryName string              `db:"category_name"`
	Override     decimal.NullDecimal `db:"override"`
}

func (row pricedRow) toModel() model.PricedProduct {
	p := model.PricedProduct{Product: row.Product, CategoryName: row.CategoryName}
	if row.Override.Valid {
		k := row.Override.Decimal
		p.Override = &k
	}
	p.ApplyCoefficient()
	return p
}

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) FindVisible(ctx context.Context, clientID string, f *dto.PriceListFilters) ([]model.PricedProduct, error) {
	query := `SELECT` + pricedColumns + `
        FROM products p
        JOIN categories c ON c.id = p.category_id
        JOIN client_categories cc ON cc.category_id = p.category_id AND cc.client_id = ?
        LEFT JOIN client_product_coefficients k ON k.product_id = p.id AND k.client_id = ?`
	args := []interface{}{clientID, clientID}

	conditions := []string{}
	if f != nil && f.CategoryID != "" {
		conditions = append(conditions, "p.category_id = ?")
		args = append(args, f.CategoryID)
	}
	if f != nil && f.SearchQuery != "" {
		conditions = append(conditions, "LOWER(p.name) LIKE ?")
		args = append(args, "%"+strings.ToLower(f.SearchQuery)+"%")
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY c.name ASC, p.name ASC, p.id ASC"

	return r.selectPriced(ctx, r.DB.Rebind(query), args...)
}

func (r *PGRepository) ResolvePrices(ctx context.Context, clientID string, productIDs []string) ([]model.PricedProduct, error) {
	if len(productIDs) == 0 {
		return []model.PricedProduct{}, nil
	}

	query, args, err := sqlx.In(`SELECT`+pricedColumns+`
        FROM products p
        JOIN categories c ON c.id = p.category_id
        LEFT JOIN client_product_coefficients k ON k.product_id = p.id AND k.client_id = ?
        WHERE p.id IN (?)
        ORDER BY p.name ASC, p.id ASC`, clientID, productIDs)
	if err != nil {
		return nil, err
	}
	return r.selectPriced(ctx, r.DB.Rebind(query), args...)
}

func (r *PGRepository) selectPriced(ctx context.Context, query string, args ...interface{}) ([]model.PricedProduct, error) {
	rows := []pricedRow{}
	if err := r.DB.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}

	items := make([]model.PricedProduct, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toModel())
	}
	return items, nil
}
