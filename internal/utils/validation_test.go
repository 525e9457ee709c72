package utils

import (
	"testing"
	"time"

	"github.com/smhc-dev/guard-manager/backend/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestValidateLeaveRange(t *testing.T) {
	leave := &domain.Leave{
		StartDate: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC),
	}
	assert.NoError(t, ValidateLeaveRange(leave))

	// 单日请假是合法的
	leave.EndDate = leave.StartDate
	assert.NoError(t, ValidateLeaveRange(leave))

	leave.EndDate = leave.StartDate.AddDate(0, 0, -1)
	assert.Error(t, ValidateLeaveRange(leave))
}

func TestValidateIncompatibilityPair(t *testing.T) {
	assert.NoError(t, ValidateIncompatibilityPair(&domain.Incompatibility{DoctorAID: 1, DoctorBID: 2}))
	assert.Error(t, ValidateIncompatibilityPair(&domain.Incompatibility{DoctorAID: 1, DoctorBID: 1}))
}

func TestValidateUnavailableWeekdays(t *testing.T) {
	assert.NoError(t, ValidateUnavailableWeekdays(nil))
	assert.NoError(t, ValidateUnavailableWeekdays([]int32{0, 6}))
	assert.Error(t, ValidateUnavailableWeekdays([]int32{7}))
	assert.Error(t, ValidateUnavailableWeekdays([]int32{-1}))
	assert.Error(t, ValidateUnavailableWeekdays([]int32{1, 1}))
}

func TestValidateGenerationResult(t *testing.T) {
	day := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC) // 星期一
	doctors := []*domain.Doctor{
		{ID: 1}, {ID: 2}, {ID: 3},
	}

	t.Run("合法的结果", func(t *testing.T) {
		result := &domain.GenerationResult{
			Assignments: []*domain.Assignment{
				{Date: day, ShiftType: domain.Shift7h, SlotPosition: 0, DoctorID: 1},
				{Date: day, ShiftType: domain.Shift17h, SlotPosition: 0, DoctorID: 2},
				{Date: day, ShiftType: domain.Shift17h, SlotPosition: 1, DoctorID: 3},
			},
		}
		assert.NoError(t, ValidateGenerationResult(result, doctors, nil))
	})

	t.Run("未知的医生", func(t *testing.T) {
		result := &domain.GenerationResult{
			Assignments: []*domain.Assignment{
				{Date: day, ShiftType: domain.Shift7h, DoctorID: 99},
			},
		}
		assert.Error(t, ValidateGenerationResult(result, doctors, nil))
	})

	t.Run("名额数量超限", func(t *testing.T) {
		result := &domain.GenerationResult{
			Assignments: []*domain.Assignment{
				{Date: day, ShiftType: domain.Shift7h, DoctorID: 1},
				{Date: day, ShiftType: domain.Shift7h, DoctorID: 2},
			},
		}
		assert.Error(t, ValidateGenerationResult(result, doctors, nil))
	})

	t.Run("同一天重复排同一个医生", func(t *testing.T) {
		result := &domain.GenerationResult{
			Assignments: []*domain.Assignment{
				{Date: day, ShiftType: domain.Shift7h, DoctorID: 1},
				{Date: day, ShiftType: domain.Shift17h, DoctorID: 1},
			},
		}
		assert.Error(t, ValidateGenerationResult(result, doctors, nil))
	})

	t.Run("违反每周不可值班的日期", func(t *testing.T) {
		unavailable := []*domain.Doctor{
			{ID: 1, UnavailableWeekdays: []int32{1}}, // 星期一不可值班
		}
		result := &domain.GenerationResult{
			Assignments: []*domain.Assignment{
				{Date: day, ShiftType: domain.Shift7h, DoctorID: 1},
			},
		}
		assert.Error(t, ValidateGenerationResult(result, unavailable, nil))
	})

	t.Run("互斥医生被排在同一天", func(t *testing.T) {
		incompatibilities := []*domain.Incompatibility{
			{DoctorAID: 1, DoctorBID: 2},
		}
		result := &domain.GenerationResult{
			Assignments: []*domain.Assignment{
				{Date: day, ShiftType: domain.Shift7h, DoctorID: 1},
				{Date: day, ShiftType: domain.Shift17h, DoctorID: 2},
			},
		}
		assert.Error(t, ValidateGenerationResult(result, doctors, incompatibilities))
	})
}
