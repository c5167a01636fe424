package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBookingGeneratesReference(t *testing.T) {
	b, err := NewBooking("Dana", "dana@example.com", "", SERVICE_TYPE_WORKSHOP, "crew training", nil)
	require.NoError(t, err)

	assert.NotEmpty(t, b.Reference)
	assert.Equal(t, BOOKING_STATUS_PENDING, b.Status)

	other, err := NewBooking("Sam", "sam@example.com", "", SERVICE_TYPE_ON_SITE, "", nil)
	require.NoError(t, err)
	assert.NotEqual(t, b.Reference, other.Reference)
}

func TestNewBookingRejectsUnknownServiceType(t *testing.T) {
	_, err := NewBooking("Dana", "dana@example.com", "", "catering", "", nil)
	assert.Error(t, err)
}

func TestContactSubmissionValidation(t *testing.T) {
	valid := ContactSubmission{Name: "Dana", Email: "dana@example.com", Message: "hello"}
	assert.NoError(t, valid.Validate())

	missingMessage := ContactSubmission{Name: "Dana", Email: "dana@example.com"}
	assert.Error(t, missingMessage.Validate())
}
