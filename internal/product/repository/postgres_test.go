package repository

import (
	"context"
	"database/sql/driver"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fekuna/omnipos-marketplace-service/internal/apperror"
	"github.com/fekuna/omnipos-marketplace-service/internal/model"
)

func newMockRepo(t *testing.T) (*PGRepository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPGRepository(sqlx.NewDb(db, "postgres")), mock
}

func TestPGFindByIDWithVariants(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("FROM products WHERE id = $1")).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "seller", "name", "description", "base_price", "images", "status", "created_at", "updated_at"}).
			AddRow(7, "s1", "Kurta", "cotton", 1200, []byte(`[{"key":"k1","url":"https://cdn/k1"}]`), "approved", now, now))
	mock.ExpectQuery(regexp.QuoteMeta("FROM product_variants")).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"product_id", "variant_index", "size", "color", "price", "stock"}).
			AddRow(7, 0, "M", nil, 1200, 3).
			AddRow(7, 1, "L", "red", 1300, 0))

	p, err := repo.FindByID(context.Background(), 7)
	require.NoError(t, err)
	require.NotNil(t, p)

	assert.Equal(t, model.ProductStatusApproved, p.Status)
	require.Len(t, p.Images, 1)
	assert.Equal(t, "k1", p.Images[0].Key)
	require.Len(t, p.Variants, 2)
	assert.Equal(t, model.Some("M"), p.Variants[0].Size)
	assert.False(t, p.Variants[0].Color.IsSome())
	assert.Equal(t, int64(0), p.Variants[1].Stock)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPGDecrementStock(t *testing.T) {
	tests := []struct {
		name    string
		result  driver.Result
		wantErr error
	}{
		{"decremented", sqlmock.NewResult(0, 1), nil},
		{"insufficient", sqlmock.NewResult(0, 0), apperror.ErrInsufficientStock},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newMockRepo(t)
			mock.ExpectExec(regexp.QuoteMeta("SET stock = v.stock - $1")).
				WithArgs(int64(2), int64(7), 0).
				WillReturnResult(tt.result)

			err := repo.DecrementStock(context.Background(), 7, 0, 2)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPGUpdateStatusConflict(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE products SET status = $1")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT status FROM products")).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("approved"))

	err := repo.UpdateStatus(context.Background(), 3, model.ProductStatusPendingApproval, model.ProductStatusApproved, time.Now())
	assert.ErrorIs(t, err, apperror.ErrInvalidTransition)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPGUpdateStatusMissing(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE products SET status = $1")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT status FROM products")).
		WillReturnRows(sqlmock.NewRows([]string{"status"}))

	err := repo.UpdateStatus(context.Background(), 99, model.ProductStatusPendingApproval, model.ProductStatusRejected, time.Now())
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}
