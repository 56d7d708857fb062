package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/fekuna/omnipos-marketplace-service/internal/apperror"
	"github.com/fekuna/omnipos-marketplace-service/internal/model"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) FindByPrincipal(ctx context.Context, principal model.Principal) (*model.UserProfile, error) {
	var profile model.UserProfile
	query := `SELECT principal, name, email, phone, role, created_at, updated_at FROM user_profiles WHERE principal = $1`
	err := r.DB.GetContext(ctx, &profile, query, principal)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

func (r *PGRepository) Create(ctx context.Context, p *model.UserProfile) error {
	query := `
        INSERT INTO user_profiles (principal, name, email, phone, role, created_at, updated_at)
        VALUES (:principal, :name, :email, :phone, :role, :created_at, :updated_at)
    `
	_, err := r.DB.NamedExecContext(ctx, query, p)
	return err
}

func (r *PGRepository) Update(ctx context.Context, p *model.UserProfile) error {
	query := `
        UPDATE user_profiles
        SET name = :name, email = :email, phone = :phone, updated_at = :updated_at
        WHERE principal = :principal
    `
	res, err := r.DB.NamedExecContext(ctx, query, p)
	if err != nil {
		return err
	}
	return expectOneRow(res, p.Principal)
}

func (r *PGRepository) UpdateRole(ctx context.Context, principal model.Principal, role model.Role, at time.Time) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE user_profiles SET role = $1, updated_at = $2 WHERE principal = $3`,
		role, at, principal)
	if err != nil {
		return err
	}
	return expectOneRow(res, principal)
}

func expectOneRow(res sql.Result, principal model.Principal) error {
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return apperror.New(apperror.KindNotFound, "profile %s", principal)
	}
	return nil
}
