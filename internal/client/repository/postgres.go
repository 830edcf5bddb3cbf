package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fekuna/omnipos-portal/internal/apperror"
	"github.com/fekuna/omnipos-portal/internal/client/dto"
	"github.com/fekuna/omnipos-portal/internal/database"
	"github.com/fekuna/omnipos-portal/internal/model"
	"github.com/jmoiron/sqlx"
)

const (
	clientColumns = "id, login, password_hash, email, phone, location, company_name, created_at, updated_at"
	loginTaken    = "client login already exists"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, c *model.Client) error {
	query := `
        INSERT INTO clients (id, login, password_hash, email, phone, location, company_name, created_at, updated_at)
        VALUES (:id, :login, :password_hash, :email, :phone, :location, :company_name, :created_at, :updated_at)
    `
	_, err := r.DB.NamedExecContext(ctx, query, c)
	return database.TranslateError(err, loginTaken)
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Client, error) {
	return r.findOne(ctx, "id", id)
}

func (r *PGRepository) FindByLogin(ctx context.Context, login string) (*model.Client, error) {
	return r.findOne(ctx, "login", login)
}

func (r *PGRepository) findOne(ctx context.Context, column, value string) (*model.Client, error) {
	var client model.Client
	query := r.DB.Rebind(fmt.Sprintf("SELECT %s FROM clients WHERE %s = ? LIMIT 1", clientColumns, column))
	err := r.DB.GetContext(ctx, &client, query, value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &client, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.ClientFilters) ([]model.Client, int, error) {
	whereClause := ""
	args := []interface{}{}
	if f.SearchQuery != "" {
		whereClause = " WHERE LOWER(login) LIKE ? OR LOWER(COALESCE(company_name, '')) LIKE ? OR LOWER(COALESCE(email, '')) LIKE ?"
		pattern := "%" + strings.ToLower(f.SearchQuery) + "%"
		args = append(args, pattern, pattern, pattern)
	}

	var count int
	if err := r.DB.GetContext(ctx, &count, r.DB.Rebind("SELECT count(*) FROM clients"+whereClause), args...); err != nil {
		return nil, 0, err
	}

	query := "SELECT " + clientColumns + " FROM clients" + whereClause + " ORDER BY login ASC"
	if f.PageSize > 0 {
		offset := (f.Page - 1) * f.PageSize
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, offset)
	}

	clients := []model.Client{}
	if err := r.DB.SelectContext(ctx, &clients, r.DB.Rebind(query), args...); err != nil {
		return nil, 0, err
	}
	return clients, count, nil
}

func (r *PGRepository) Update(ctx context.Context, c *model.Client) error {
	query := `
        UPDATE clients
        SET login = :login,
            password_hash = :password_hash,
            email = :email,
            phone = :phone,
            location = :location,
            company_name = :company_name,
            updated_at = :updated_at
        WHERE id = :id
    `
	res, err := r.DB.NamedExecContext(ctx, query, c)
	if err != nil {
		return database.TranslateError(err, loginTaken)
	}
	return requireRow(res, "client")
}

// Delete removes the client; assignments and coefficient overrides cascade.
func (r *PGRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, r.DB.Rebind("DELETE FROM clients WHERE id = ?"), id)
	if err != nil {
		return err
	}
	return requireRow(res, "client")
}

func (r *PGRepository) Assign(ctx context.Context, clientID, categoryID string) error {
	query := r.DB.Rebind(`INSERT INTO client_categories (client_id, category_id, created_at) VALUES (?, ?, ?)`)
	_, err := r.DB.ExecContext(ctx, query, clientID, categoryID, time.Now().UTC())
	return database.TranslateError(err, "category already assigned to client")
}

func (r *PGRepository) Unassign(ctx context.Context, clientID, categoryID string) error {
	query := r.DB.Rebind(`DELETE FROM client_categories WHERE client_id = ? AND category_id = ?`)
	res, err := r.DB.ExecContext(ctx, query, clientID, categoryID)
	if err != nil {
		return err
	}
	return requireRow(res, "category assignment")
}

// ReplaceAssignments swaps the client's whole assignment set in one transaction.
func (r *PGRepository) ReplaceAssignments(ctx context.Context, clientID string, categoryIDs []string) error {
	return database.WithTx(ctx, r.DB, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM client_categories WHERE client_id = ?`), clientID); err != nil {
			return err
		}

		insert := tx.Rebind(`INSERT INTO client_categories (client_id, category_id, created_at) VALUES (?, ?, ?)`)
		now := time.Now().UTC()
		for _, categoryID := range categoryIDs {
			if _, err := tx.ExecContext(ctx, insert, clientID, categoryID, now); err != nil {
				return database.TranslateError(err, "duplicate category in assignment set")
			}
		}
		return nil
	})
}

func requireRow(res sql.Result, entity string) error {
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return apperror.NotFound(entity)
	}
	return nil
}
