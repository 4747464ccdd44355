package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppointmentStatusBlocks(t *testing.T) {
	assert.True(t, AppointmentStatusPending.Blocks())
	assert.True(t, AppointmentStatusConfirmed.Blocks())
	assert.True(t, AppointmentStatusCompleted.Blocks())
	assert.False(t, AppointmentStatusCancelled.Blocks())
	assert.False(t, AppointmentStatusNoShow.Blocks())
}
