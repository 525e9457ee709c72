package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateRandomUnavailableWeekdays(t *testing.T) {
	for i := 0; i < 100; i++ {
		weekdays := GenerateRandomUnavailableWeekdays()
		assert.LessOrEqual(t, len(weekdays), 2)
		assert.NoError(t, ValidateUnavailableWeekdays(weekdays))
	}
}

func TestGenerateRandomDoctor(t *testing.T) {
	for i := 0; i < 100; i++ {
		doctor := GenerateRandomDoctor()
		require.NotEmpty(t, doctor.FullName)
		require.NotEmpty(t, doctor.Alias)
		if doctor.Max7hGuards != nil {
			assert.Positive(t, *doctor.Max7hGuards)
		}
		if doctor.Max17hGuards != nil {
			assert.Positive(t, *doctor.Max17hGuards)
		}
	}
}

func TestGenerateRandomLeave(t *testing.T) {
	for i := 0; i < 100; i++ {
		leave := GenerateRandomLeave(1, 3, 2025)
		assert.NoError(t, ValidateLeaveRange(leave))
		assert.Equal(t, 2025, leave.StartDate.Year())
		assert.Equal(t, 3, int(leave.StartDate.Month()))
		assert.False(t, leave.EndDate.After(leave.StartDate.AddDate(0, 1, -leave.StartDate.Day())))
	}
}
