package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/fekuna/omnipos-portal/internal/apperror"
	"github.com/fekuna/omnipos-portal/internal/category/dto"
	"github.com/fekuna/omnipos-portal/internal/database"
	"github.com/fekuna/omnipos-portal/internal/model"
	"github.com/jmoiron/sqlx"
)

const nameTaken = "category name already exists"

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, c *model.Category) error {
	query := `
        INSERT INTO categories (id, name, created_at, updated_at)
        VALUES (:id, :name, :created_at, :updated_at)
    `
	_, err := r.DB.NamedExecContext(ctx, query, c)
	return database.TranslateError(err, nameTaken)
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Category, error) {
	var category model.Category
	query := r.DB.Rebind(`SELECT id, name, created_at, updated_at FROM categories WHERE id = ? LIMIT 1`)
	err := r.DB.GetContext(ctx, &category, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.CategoryFilters) ([]model.Category, int, error) {
	conditions := []string{}
	args := []interface{}{}

	if f.SearchQuery != "" {
		conditions = append(conditions, "LOWER(name) LIKE ?")
		args = append(args, "%"+strings.ToLower(f.SearchQuery)+"%")
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	var count int
	countQuery := r.DB.Rebind("SELECT count(*) FROM categories" + whereClause)
	if err := r.DB.GetContext(ctx, &count, countQuery, args...); err != nil {
		return nil, 0, err
	}

	query := "SELECT id, name, created_at, updated_at FROM categories" + whereClause + " ORDER BY name ASC"
	if f.PageSize > 0 {
		offset := (f.Page - 1) * f.PageSize
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, offset)
	}

	categories := []model.Category{}
	if err := r.DB.SelectContext(ctx, &categories, r.DB.Rebind(query), args...); err != nil {
		return nil, 0, err
	}
	return categories, count, nil
}

func (r *PGRepository) Update(ctx context.Context, c *model.Category) error {
	query := `
        UPDATE categories
        SET name = :name,
            updated_at = :updated_at
        WHERE id = :id
    `
	res, err := r.DB.NamedExecContext(ctx, query, c)
	if err != nil {
		return database.TranslateError(err, nameTaken)
	}
	return requireRow(res)
}

// Delete removes the category. Products, their coefficients and client
// assignments go with it through ON DELETE CASCADE.
func (r *PGRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, r.DB.Rebind("DELETE FROM categories WHERE id = ?"), id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *PGRepository) FindByClient(ctx context.Context, clientID string) ([]model.Category, error) {
	query := r.DB.Rebind(`
        SELECT c.id, c.name, c.created_at, c.updated_at
        FROM categories c
        JOIN client_categories cc ON cc.category_id = c.id
        WHERE cc.client_id = ?
        ORDER BY c.name ASC
    `)
	categories := []model.Category{}
	if err := r.DB.SelectContext(ctx, &categories, query, clientID); err != nil {
		return nil, err
	}
	return categories, nil
}

func requireRow(res sql.Result) error {
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return apperror.NotFound("category")
	}
	return nil
}
