package middleware

import (
	"testing"

	"github.com/medatlas/medatlas-backend/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestDoctorCanAct(t *testing.T) {
	assert.True(t, DoctorCanAct(models.DoctorStatusApproved))

	for _, status := range []string{
		models.DoctorStatusPending,
		models.DoctorStatusRejected,
		models.DoctorStatusSuspended,
		"",
		"unknown",
	} {
		assert.False(t, DoctorCanAct(status), "status %q must not allow actions", status)
	}
}

func TestDoctorStatusMessage(t *testing.T) {
	assert.Contains(t, DoctorStatusMessage(models.DoctorStatusPending), "pending review")
	assert.Contains(t, DoctorStatusMessage(models.DoctorStatusRejected), "rejected")
	assert.Contains(t, DoctorStatusMessage(models.DoctorStatusSuspended), "suspended")
	assert.NotEmpty(t, DoctorStatusMessage("unknown"))
}

func TestParseCSV(t *testing.T) {
	assert.Nil(t, parseCSV(""))
	assert.Equal(t, []string{"a@x.com", "b@x.com"}, parseCSV("a@x.com, b@x.com"))
	assert.Equal(t, []string{"a@x.com"}, parseCSV("a@x.com,,  "))
}
