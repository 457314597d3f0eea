package services

import (
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/medatlas/medatlas-backend/internal/config"
	"github.com/medatlas/medatlas-backend/internal/dto"
	"github.com/medatlas/medatlas-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAccessTokenClaims(t *testing.T) {
	cfg := &config.Config{
		JWTSecret:       "test-secret",
		JWTAccessExpiry: 15 * time.Minute,
	}
	s := NewAuthService(nil, cfg, nil)

	principal := &models.Principal{
		ID:       uuid.New(),
		Email:    "jane@example.com",
		UserType: models.UserTypeDoctor,
	}

	raw, err := s.GenerateAccessToken(principal)
	require.NoError(t, err)

	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		return []byte(cfg.JWTSecret), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, principal.ID.String(), claims["sub"])
	assert.Equal(t, "jane@example.com", claims["email"])
	assert.Equal(t, models.UserTypeDoctor, claims["user_type"])

	exp, err := claims.GetExpirationTime()
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(cfg.JWTAccessExpiry), exp.Time, time.Minute)
}

// A signup that passes the email lookup can still lose the race to a
// concurrent one; the unique-index violation surfaces as ErrEmailTaken, not
// as an internal error.
func TestRegisterConcurrentDuplicateEmail(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(`SELECT \* FROM "principals" WHERE email = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(`INSERT INTO "principals"`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "idx_principals_email"})

	cfg := &config.Config{
		JWTSecret:        "test-secret",
		JWTAccessExpiry:  15 * time.Minute,
		JWTRefreshExpiry: 24 * time.Hour,
	}
	s := NewAuthService(db, cfg, nil)

	_, err := s.Register(&dto.RegisterRequest{
		Email:       "jane@example.com",
		Password:    "Password1",
		UserType:    models.UserTypePatient,
		FirstName:   "Jane",
		LastName:    "Doe",
		DateOfBirth: "1990-01-01",
	})

	assert.ErrorIs(t, err, ErrEmailTaken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHashTokenIsStableAndOpaque(t *testing.T) {
	assert.Equal(t, hashToken("abc"), hashToken("abc"))
	assert.NotEqual(t, hashToken("abc"), hashToken("abd"))
	assert.Len(t, hashToken("abc"), 64)
	assert.NotContains(t, hashToken("abc"), "abc")
}

func TestValidationErrWrapsSentinel(t *testing.T) {
	err := validationErr("Specialty is required")
	assert.True(t, errors.Is(err, ErrValidation))
	assert.Contains(t, err.Error(), "Specialty is required")
}
