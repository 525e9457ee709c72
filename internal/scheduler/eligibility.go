package scheduler

import (
	"time"

	"github.com/smhc-dev/guard-manager/backend/internal/domain"
)

// eligibility 预先计算出的医生可用性信息，只回答"这个医生这一天允不允许值班"，
// 不考虑互斥和公平性，那些要等到知道当天其他名额的人选之后才能判断
type eligibility struct {
	unavailableWeekdays map[int64]map[time.Weekday]bool
	unavailableDates    map[int64]map[time.Time]bool
}

func newEligibility(doctors []*domain.Doctor, unavailableDates map[int64][]time.Time) *eligibility {
	e := &eligibility{
		unavailableWeekdays: make(map[int64]map[time.Weekday]bool),
		unavailableDates:    make(map[int64]map[time.Time]bool),
	}

	for _, doctor := range doctors {
		weekdays := make(map[time.Weekday]bool)
		for _, weekday := range doctor.UnavailableWeekdays {
			weekdays[time.Weekday(weekday)] = true
		}
		e.unavailableWeekdays[doctor.ID] = weekdays

		dates := make(map[time.Time]bool)
		for _, day := range unavailableDates[doctor.ID] {
			dates[dateOnly(day)] = true
		}
		e.unavailableDates[doctor.ID] = dates
	}

	return e
}

// allowed 判断医生在指定日期是否允许被排班
func (e *eligibility) allowed(doctorID int64, day time.Time) bool {
	if e.unavailableWeekdays[doctorID][day.Weekday()] {
		return false
	}
	if e.unavailableDates[doctorID][day] {
		return false
	}
	return true
}
