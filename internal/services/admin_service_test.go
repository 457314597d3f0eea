package services

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/medatlas/medatlas-backend/internal/cache"
	"github.com/medatlas/medatlas-backend/internal/dto"
	"github.com/medatlas/medatlas-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Two admins moderating the same doctor issue unconditional updates: no read
// first, no version check, the later write wins. Each write also drops the
// cached directory reads.
func TestSetDoctorStatusLastWriteWins(t *testing.T) {
	db, mock := newMockDB(t)
	c := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.SetJSON(ctx, "directory:profile:jane-doe", "cached", time.Minute))

	mock.ExpectExec(`UPDATE "doctors" SET`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "doctors" SET`).WillReturnResult(sqlmock.NewResult(0, 1))

	svc := NewAdminService(db, NewDirectoryService(db, c))
	id := uuid.New()
	require.NoError(t, svc.SetDoctorStatus(ctx, id, &dto.UpdateDoctorStatusRequest{Status: models.DoctorStatusApproved}))
	require.NoError(t, svc.SetDoctorStatus(ctx, id, &dto.UpdateDoctorStatusRequest{Status: models.DoctorStatusSuspended}))

	assert.NoError(t, mock.ExpectationsWereMet())

	var got string
	assert.ErrorIs(t, c.GetJSON(ctx, "directory:profile:jane-doe", &got), cache.ErrMiss)
}

func TestSetDoctorStatusUnknownDoctor(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectExec(`UPDATE "doctors" SET`).WillReturnResult(sqlmock.NewResult(0, 0))

	svc := NewAdminService(db, NewDirectoryService(db, newTestCache(t)))
	err := svc.SetDoctorStatus(context.Background(), uuid.New(),
		&dto.UpdateDoctorStatusRequest{Status: models.DoctorStatusApproved})

	assert.ErrorIs(t, err, ErrDoctorNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetDoctorStatusRejectsUnknownValue(t *testing.T) {
	db, mock := newMockDB(t)

	svc := NewAdminService(db, NewDirectoryService(db, newTestCache(t)))
	err := svc.SetDoctorStatus(context.Background(), uuid.New(),
		&dto.UpdateDoctorStatusRequest{Status: "archived"})

	assert.ErrorIs(t, err, ErrValidation)
	assert.NoError(t, mock.ExpectationsWereMet(), "no query should run for an invalid status")
}
