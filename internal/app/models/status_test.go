package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStudentStatusValid(t *testing.T) {
	for _, status := range AllStatuses {
		assert.True(t, status.Valid(), "expected %q to be valid", status)
	}
	assert.False(t, StudentStatus("expelled").Valid())
	assert.False(t, StudentStatus("").Valid())
}

func TestStatusTransitions(t *testing.T) {
	tests := []struct {
		from    StudentStatus
		to      StudentStatus
		allowed bool
	}{
		{StatusPending, StatusEnrolled, true},
		{StatusPending, StatusRejected, true},
		{StatusPending, StatusNotEnrolled, true},
		{StatusPending, StatusGraduated, false},
		{StatusPending, StatusActive, false},

		{StatusRejected, StatusPending, true},
		{StatusRejected, StatusEnrolled, false},

		{StatusNotEnrolled, StatusEnrolled, true},
		{StatusNotEnrolled, StatusPending, true},

		{StatusEnrolled, StatusActive, true},
		{StatusEnrolled, StatusGraduated, true},
		{StatusEnrolled, StatusPending, false},

		{StatusActive, StatusInactive, true},
		{StatusActive, StatusGraduated, true},
		{StatusActive, StatusPending, false},

		{StatusInactive, StatusActive, true},

		// Graduated is terminal.
		{StatusGraduated, StatusEnrolled, false},
		{StatusGraduated, StatusActive, false},
		{StatusGraduated, StatusPending, false},
	}

	for _, tt := range tests {
		got := tt.from.CanTransitionTo(tt.to)
		assert.Equal(t, tt.allowed, got, "%s -> %s", tt.from, tt.to)
	}
}

func TestSameStateTransitionAlwaysAllowed(t *testing.T) {
	for _, status := range AllStatuses {
		assert.True(t, status.CanTransitionTo(status), "%s -> %s", status, status)
	}
}
