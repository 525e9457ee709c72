package scheduler

import (
	"testing"
	"time"

	"github.com/smhc-dev/guard-manager/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthRange(t *testing.T) {
	first, last := MonthRange(2, 2024)
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), first)
	// 2024 年是闰年
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), last)

	first, last = MonthRange(12, 2025)
	assert.Equal(t, time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC), first)
	assert.Equal(t, time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC), last)
}

func TestHistoryWindow(t *testing.T) {
	from, to := HistoryWindow(3, 2025)
	// 往前推 11 个月，到目标月份的最后一天
	assert.Equal(t, time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC), to)
}

func TestUnavailableDatesFromLeaves(t *testing.T) {
	t.Run("只统计已批准的请假", func(t *testing.T) {
		leaves := []*domain.Leave{
			{DoctorID: 1, StartDate: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), EndDate: time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC), Status: domain.LeaveStatusApproved},
			{DoctorID: 2, StartDate: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), EndDate: time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC), Status: domain.LeaveStatusPending},
			{DoctorID: 3, StartDate: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), EndDate: time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC), Status: domain.LeaveStatusRejected},
		}

		dates := UnavailableDatesFromLeaves(3, 2025, leaves)

		require.Len(t, dates[1], 2)
		assert.Empty(t, dates[2])
		assert.Empty(t, dates[3])
	})

	t.Run("请假区间超出目标月份时被截断", func(t *testing.T) {
		leaves := []*domain.Leave{
			{DoctorID: 1, StartDate: time.Date(2025, 2, 25, 0, 0, 0, 0, time.UTC), EndDate: time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC), Status: domain.LeaveStatusApproved},
			{DoctorID: 2, StartDate: time.Date(2025, 3, 30, 0, 0, 0, 0, time.UTC), EndDate: time.Date(2025, 4, 5, 0, 0, 0, 0, time.UTC), Status: domain.LeaveStatusApproved},
		}

		dates := UnavailableDatesFromLeaves(3, 2025, leaves)

		assert.Equal(t, []time.Time{
			time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC),
		}, dates[1])
		assert.Equal(t, []time.Time{
			time.Date(2025, 3, 30, 0, 0, 0, 0, time.UTC),
			time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
		}, dates[2])
	})

	t.Run("带时分秒的请假时间被归一化为日期", func(t *testing.T) {
		leaves := []*domain.Leave{
			{DoctorID: 1, StartDate: time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC), EndDate: time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC), Status: domain.LeaveStatusApproved},
		}

		dates := UnavailableDatesFromLeaves(3, 2025, leaves)

		assert.Equal(t, []time.Time{time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)}, dates[1])
	})
}

func TestFairnessTracker(t *testing.T) {
	t.Run("历史记录作为初始负载", func(t *testing.T) {
		history := []*domain.Assignment{
			{DoctorID: 1, ShiftType: domain.Shift7h, IsOriginal: true},
			{DoctorID: 1, ShiftType: domain.Shift17h, IsOriginal: true},
			{DoctorID: 2, ShiftType: domain.Shift17h, IsOriginal: true},
			{DoctorID: 2, ShiftType: domain.Shift17h, IsOriginal: false}, // 换班记录不计入
		}

		tracker := newFairnessTracker(history)

		assert.Equal(t, 1, tracker.count(1, domain.Shift7h))
		assert.Equal(t, 1, tracker.count(1, domain.Shift17h))
		assert.Equal(t, 0, tracker.count(2, domain.Shift7h))
		assert.Equal(t, 1, tracker.count(2, domain.Shift17h))
	})

	t.Run("比较时先看对应班次再看总量最后看 ID", func(t *testing.T) {
		tracker := newFairnessTracker(nil)
		tracker.record(1, domain.Shift7h)
		tracker.record(2, domain.Shift17h)

		// 医生 1 的 7 小时班更多，7 小时班优先选医生 2
		assert.True(t, tracker.less(domain.Shift7h, 2, 1))
		// 17 小时班次数上医生 1 更少
		assert.True(t, tracker.less(domain.Shift17h, 1, 2))

		// 对应班次相同时比较总量
		tracker.record(3, domain.Shift7h)
		tracker.record(3, domain.Shift7h)
		assert.True(t, tracker.less(domain.Shift17h, 1, 3))

		// 全部相同时按 ID 升序
		assert.True(t, tracker.less(domain.Shift17h, 4, 5))
		assert.False(t, tracker.less(domain.Shift17h, 5, 4))
	})
}
