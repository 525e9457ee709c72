package utils

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/smhc-dev/guard-manager/backend/internal/domain"
)

func ValidateLeaveRange(leave *domain.Leave) error {
	if leave.EndDate.Before(leave.StartDate) {
		return errors.New("请假结束日期不能早于开始日期")
	}
	return nil
}

func ValidateIncompatibilityPair(pair *domain.Incompatibility) error {
	if pair.DoctorAID == pair.DoctorBID {
		return errors.New("医生不能和自己互斥")
	}
	return nil
}

func ValidateUnavailableWeekdays(weekdays []int32) error {
	seen := make(map[int32]bool)
	for _, weekday := range weekdays {
		if weekday < 0 || weekday > 6 {
			return fmt.Errorf("非法的星期 %d，必须在 0 到 6 之间", weekday)
		}
		if seen[weekday] {
			return fmt.Errorf("星期 %d 重复出现", weekday)
		}
		seen[weekday] = true
	}
	return nil
}

// ValidateGenerationResult 在持久化之前复核一次生成结果是否满足所有硬约束，
// 排班引擎本身保证这些约束，这里只是最后一道防线
func ValidateGenerationResult(result *domain.GenerationResult, doctors []*domain.Doctor, incompatibilities []*domain.Incompatibility) error {
	doctorsMap := make(map[int64]*domain.Doctor)
	for _, doctor := range doctors {
		doctorsMap[doctor.ID] = doctor
	}

	type slotCount struct {
		sevenHour     int
		seventeenHour int
	}
	slotCounts := make(map[time.Time]*slotCount)
	assignedByDate := make(map[time.Time][]int64)

	for _, assignment := range result.Assignments {
		doctor, exists := doctorsMap[assignment.DoctorID]
		if !exists {
			return fmt.Errorf("排班结果中出现了未知的医生 %d", assignment.DoctorID)
		}

		// 检查名额数量
		counts, exists := slotCounts[assignment.Date]
		if !exists {
			counts = &slotCount{}
			slotCounts[assignment.Date] = counts
		}
		switch assignment.ShiftType {
		case domain.Shift7h:
			counts.sevenHour++
			if counts.sevenHour > 1 {
				return fmt.Errorf("%s 的 7 小时班出现了多于 1 条排班", assignment.Date.Format("2006-01-02"))
			}
		case domain.Shift17h:
			counts.seventeenHour++
			if counts.seventeenHour > 2 {
				return fmt.Errorf("%s 的 17 小时班出现了多于 2 条排班", assignment.Date.Format("2006-01-02"))
			}
		default:
			return fmt.Errorf("未知的班次类型 %s", assignment.ShiftType)
		}

		// 检查同一天是否重复排了同一个医生
		if slices.Contains(assignedByDate[assignment.Date], assignment.DoctorID) {
			return fmt.Errorf("医生 %d 在 %s 被排了多个名额", assignment.DoctorID, assignment.Date.Format("2006-01-02"))
		}
		assignedByDate[assignment.Date] = append(assignedByDate[assignment.Date], assignment.DoctorID)

		// 检查每周固定不可值班的日期
		if slices.Contains(doctor.UnavailableWeekdays, int32(assignment.Date.Weekday())) {
			return fmt.Errorf("医生 %d 被排在了其不可值班的星期 %d", doctor.ID, int32(assignment.Date.Weekday()))
		}
	}

	// 检查互斥医生是否被排在了同一天
	for _, pair := range incompatibilities {
		for date, doctorIDs := range assignedByDate {
			if slices.Contains(doctorIDs, pair.DoctorAID) && slices.Contains(doctorIDs, pair.DoctorBID) {
				return fmt.Errorf("互斥的医生 %d 和 %d 被排在了同一天 %s", pair.DoctorAID, pair.DoctorBID, date.Format("2006-01-02"))
			}
		}
	}

	return nil
}
