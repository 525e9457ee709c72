package scheduler

import (
	"time"

	"github.com/smhc-dev/guard-manager/backend/internal/domain"
)

// dateOnly 把时间归一化为 UTC 零点，保证同一天的不同表示能够互相比较
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// MonthRange 返回目标月份的第一天和最后一天
func MonthRange(month int, year int) (time.Time, time.Time) {
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	return first, last
}

// HistoryWindow 返回用于统计历史负载的日期区间：
// 目标月份往前推 11 个月的第一天，到目标月份的最后一天
// 目标月份本身已持久化的排班也计入历史
func HistoryWindow(month int, year int) (time.Time, time.Time) {
	first, last := MonthRange(month, year)
	return first.AddDate(0, -11, 0), last
}

// UnavailableDatesFromLeaves 把已批准的请假与目标月份求交集，
// 得到每个医生在目标月份内不可值班的日期集合
// 未批准的请假不产生任何限制
func UnavailableDatesFromLeaves(month int, year int, leaves []*domain.Leave) map[int64][]time.Time {
	first, last := MonthRange(month, year)

	dates := make(map[int64][]time.Time)
	for _, leave := range leaves {
		if leave.Status != domain.LeaveStatusApproved {
			continue
		}

		start := dateOnly(leave.StartDate)
		end := dateOnly(leave.EndDate)
		if start.Before(first) {
			start = first
		}
		if end.After(last) {
			end = last
		}

		for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
			dates[leave.DoctorID] = append(dates[leave.DoctorID], day)
		}
	}

	return dates
}
