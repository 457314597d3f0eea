package services

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/medatlas/medatlas-backend/internal/cache"
	"github.com/medatlas/medatlas-backend/internal/models"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		DisableAutomaticPing:   true,
		TranslateError:         true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func newTestCache(t *testing.T) *cache.Cache {
	t.Helper()
	mr := miniredis.RunT(t)
	return cache.NewWithClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
}

// A profile URL whose identifier matches no stored slug is re-read as
// "first-last" and matched case-insensitively against names, still scoped to
// approved doctors.
func TestResolveProfileFallsBackToNameLookup(t *testing.T) {
	db, mock := newMockDB(t)
	mock.MatchExpectationsInOrder(false)

	id := uuid.New()
	mock.ExpectQuery(`SELECT \* FROM "doctors" WHERE status = \$1 AND slug = \$2`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(`SELECT \* FROM "doctors" WHERE status = \$1 AND \(?first_name ILIKE \$2 AND last_name ILIKE \$3\)?`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "first_name", "last_name", "specialty", "status"}).
			AddRow(id.String(), "Jane", "Doe", "Cardiology", models.DoctorStatusApproved))
	mock.ExpectQuery(`SELECT \* FROM "doctor_locations"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(`SELECT \* FROM "doctor_articles"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	svc := NewDirectoryService(db, newTestCache(t))
	doctor, err := svc.ResolveProfile(context.Background(), "jane-doe")
	require.NoError(t, err)

	assert.Equal(t, id, doctor.ID)
	assert.Equal(t, "Jane", doctor.FirstName)
	assert.Equal(t, "Doe", doctor.LastName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// A single-word identifier cannot split into a name pair, so a slug miss is
// final. Only the slug query runs.
func TestResolveProfileNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(`SELECT \* FROM "doctors" WHERE status = \$1 AND slug = \$2`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	svc := NewDirectoryService(db, newTestCache(t))
	_, err := svc.ResolveProfile(context.Background(), "janedoe")

	assert.ErrorIs(t, err, ErrDoctorNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
