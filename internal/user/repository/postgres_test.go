package repository

import (
	"context"
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

func TestPGFindByPrincipal(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now()

	rows := sqlmock.NewRows([]string{"principal", "name", "email", "phone", "role", "created_at", "updated_at"}).
		AddRow("b1", "Asha", "asha@example.com", nil, "buyer", now, now)
	mock.ExpectQuery(regexp.QuoteMeta("FROM user_profiles WHERE principal = $1")).
		WithArgs("b1").
		WillReturnRows(rows)

	p, err := repo.FindByPrincipal(context.Background(), "b1")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, model.RoleBuyer, p.Role)
	assert.False(t, p.Phone.IsSome())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPGFindByPrincipalMissing(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM user_profiles")).
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows([]string{"principal"}))

	p, err := repo.FindByPrincipal(context.Background(), "ghost")
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestPGUpdateRoleMissingProfile(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE user_profiles SET role = $1")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateRole(context.Background(), "ghost", model.RoleSeller, time.Now())
	assert.ErrorIs(t, err, apperror.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
