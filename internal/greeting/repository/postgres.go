package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fekuna/omnipos-portal/internal/apperror"
	"github.com/fekuna/omnipos-portal/internal/database"
	"github.com/fekuna/omnipos-portal/internal/greeting/dto"
	"github.com/fekuna/omnipos-portal/internal/model"
	"github.com/jmoiron/sqlx"
)

const (
	pageColumns = "id, slug, title, message, is_active, created_at, updated_at"
	leadColumns = "id, page_id, email, created_at"
	slugTaken   = "greeting page slug already exists"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) CreatePage(ctx context.Context, page *model.GreetingPage) error {
	query := `
        INSERT INTO greeting_pages (id, slug, title, message, is_active, created_at, updated_at)
        VALUES (:id, :slug, :title, :message, :is_active, :created_at, :updated_at)
    `
	_, err := r.DB.NamedExecContext(ctx, query, page)
	return database.TranslateError(err, slugTaken)
}

func (r *PGRepository) FindPageByID(ctx context.Context, id string) (*model.GreetingPage, error) {
	return r.findPage(ctx, "id", id)
}

func (r *PGRepository) FindPageBySlug(ctx context.Context, slug string) (*model.GreetingPage, error) {
	return r.findPage(ctx, "slug", slug)
}

func (r *PGRepository) findPage(ctx context.Context, column, value string) (*model.GreetingPage, error) {
	var page model.GreetingPage
	query := r.DB.Rebind(fmt.Sprintf("SELECT %s FROM greeting_pages WHERE %s = ? LIMIT 1", pageColumns, column))
	if err := r.DB.GetContext(ctx, &page, query, value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &page, nil
}

func (r *PGRepository) FindAllPages(ctx context.Context, f *dto.PageFilters) ([]model.GreetingPage, int, error) {
	whereClause := ""
	args := []interface{}{}
	if f.ActiveOnly {
		whereClause = " WHERE is_active = ?"
		args = append(args, true)
	}

	var count int
	if err := r.DB.GetContext(ctx, &count, r.DB.Rebind("SELECT count(*) FROM greeting_pages"+whereClause), args...); err != nil {
		return nil, 0, err
	}

	query := "SELECT " + pageColumns + " FROM greeting_pages" + whereClause + " ORDER BY slug ASC"
	if f.PageSize > 0 {
		offset := (f.Page - 1) * f.PageSize
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, offset)
	}

	pages := []model.GreetingPage{}
	if err := r.DB.SelectContext(ctx, &pages, r.DB.Rebind(query), args...); err != nil {
		return nil, 0, err
	}
	return pages, count, nil
}

func (r *PGRepository) UpdatePage(ctx context.Context, page *model.GreetingPage) error {
	query := `
        UPDATE greeting_pages
        SET slug = :slug,
            title = :title,
            message = :message,
            is_active = :is_active,
            updated_at = :updated_at
        WHERE id = :id
    `
	res, err := r.DB.NamedExecContext(ctx, query, page)
	if err != nil {
		return database.TranslateError(err, slugTaken)
	}
	return requireRow(res, "greeting page")
}

// DeletePage removes the page together with its leads.
func (r *PGRepository) DeletePage(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, r.DB.Rebind("DELETE FROM greeting_pages WHERE id = ?"), id)
	if err != nil {
		return err
	}
	return requireRow(res, "greeting page")
}

func (r *PGRepository) CreateLead(ctx context.Context, lead *model.Lead) error {
	query := `
        INSERT INTO leads (id, page_id, email, created_at)
        VALUES (:id, :page_id, :email, :created_at)
    `
	_, err := r.DB.NamedExecContext(ctx, query, lead)
	return database.TranslateError(err, "lead already captured")
}

func (r *PGRepository) FindLead(ctx context.Context, pageID, email string) (*model.Lead, error) {
	var lead model.Lead
	query := r.DB.Rebind(`SELECT ` + leadColumns + ` FROM leads WHERE page_id = ? AND email = ? LIMIT 1`)
	if err := r.DB.GetContext(ctx, &lead, query, pageID, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &lead, nil
}

func (r *PGRepository) FindLeads(ctx context.Context, f *dto.LeadFilters) ([]model.Lead, int, error) {
	var count int
	countQuery := r.DB.Rebind("SELECT count(*) FROM leads WHERE page_id = ?")
	if err := r.DB.GetContext(ctx, &count, countQuery, f.PageID); err != nil {
		return nil, 0, err
	}

	query := "SELECT " + leadColumns + " FROM leads WHERE page_id = ? ORDER BY created_at DESC, id ASC"
	if f.PageSize > 0 {
		offset := (f.Page - 1) * f.PageSize
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, offset)
	}

	leads := []model.Lead{}
	if err := r.DB.SelectContext(ctx, &leads, r.DB.Rebind(query), f.PageID); err != nil {
		return nil, 0, err
	}
	return leads, count, nil
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
