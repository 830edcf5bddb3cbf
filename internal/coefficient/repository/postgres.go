package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/fekuna/omnipos-portal/internal/apperror"
	"github.com/fekuna/omnipos-portal/internal/coefficient/dto"
	"github.com/fekuna/omnipos-portal/internal/database"
	"github.com/fekuna/omnipos-portal/internal/model"
	"github.com/jmoiron/sqlx"
)

const (
	coefficientColumns = "id, client_id, product_id, coefficient, created_at, updated_at"
	duplicatePair      = "coefficient for this client and product already exists"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

// Create inserts a new override. A second row for the same client/product
// pair is rejected by the unique constraint, never turned into an update.
func (r *PGRepository) Create(ctx context.Context, coef *model.Coefficient) error {
	query := `
        INSERT INTO client_product_coefficients (id, client_id, product_id, coefficient, created_at, updated_at)
        VALUES (:id, :client_id, :product_id, :coefficient, :created_at, :updated_at)
    `
	_, err := r.DB.NamedExecContext(ctx, query, coef)
	return database.TranslateError(err, duplicatePair)
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Coefficient, error) {
	var coef model.Coefficient
	query := r.DB.Rebind(`SELECT ` + coefficientColumns + ` FROM client_product_coefficients WHERE id = ? LIMIT 1`)
	err := r.DB.GetContext(ctx, &coef, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &coef, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.CoefficientFilters) ([]model.Coefficient, int, error) {
	conditions := []string{}
	args := []interface{}{}

	if f.ClientID != "" {
		conditions = append(conditions, "client_id = ?")
		args = append(args, f.ClientID)
	}
	if f.ProductID != "" {
		conditions = append(conditions, "product_id = ?")
		args = append(args, f.ProductID)
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	var count int
	countQuery := r.DB.Rebind("SELECT count(*) FROM client_product_coefficients" + whereClause)
	if err := r.DB.GetContext(ctx, &count, countQuery, args...); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf("SELECT %s FROM client_product_coefficients%s ORDER BY created_at DESC, id ASC", coefficientColumns, whereClause)
	if f.PageSize > 0 {
		offset := (f.Page - 1) * f.PageSize
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, offset)
	}

	coefs := []model.Coefficient{}
	if err := r.DB.SelectContext(ctx, &coefs, r.DB.Rebind(query), args...); err != nil {
		return nil, 0, err
	}
	return coefs, count, nil
}

func (r *PGRepository) Update(ctx context.Context, coef *model.Coefficient) error {
	query := `
        UPDATE client_product_coefficients
        SET coefficient = :coefficient,
            updated_at = :updated_at
        WHERE id = :id
    `
	res, err := r.DB.NamedExecContext(ctx, query, coef)
	if err != nil {
		return database.TranslateError(err, duplicatePair)
	}
	return requireRow(res)
}

func (r *PGRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, r.DB.Rebind("DELETE FROM client_product_coefficients WHERE id = ?"), id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func requireRow(res sql.Result) error {
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return apperror.NotFound("coefficient")
	}
	return nil
}
