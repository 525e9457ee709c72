package scheduler

import (
	"sort"
	"time"

	"github.com/smhc-dev/guard-manager/backend/internal/domain"
)

// Scheduler 对一个 (month, year) 做一次完整的排班生成
// 纯内存计算：不做 IO、不看系统时钟、不使用随机数，相同输入必然得到相同输出
type Scheduler struct {
	month int
	year  int

	doctors      []*domain.Doctor // 按 ID 升序
	guardDays    []time.Time      // 目标月份内的值班日，升序且去重
	incompatible map[int64]map[int64]bool

	eligibility *eligibility
	tracker     *fairnessTracker
}

func New(
	month int,
	year int,
	doctors []*domain.Doctor,
	guardDays []time.Time,
	incompatibilities []*domain.Incompatibility,
	unavailableDates map[int64][]time.Time,
	history []*domain.Assignment,
) (*Scheduler, error) {
	if month < 1 || month > 12 || year < 1 {
		return nil, ErrInvalidPeriod
	}
	if len(doctors) == 0 {
		return nil, ErrNoDoctors
	}

	s := &Scheduler{
		month:        month,
		year:         year,
		doctors:      make([]*domain.Doctor, 0, len(doctors)),
		guardDays:    make([]time.Time, 0, len(guardDays)),
		incompatible: make(map[int64]map[int64]bool),
	}

	// 医生按 ID 升序，候选排序的平局规则依赖这个顺序
	s.doctors = append(s.doctors, doctors...)
	sort.Slice(s.doctors, func(i, j int) bool {
		return s.doctors[i].ID < s.doctors[j].ID
	})

	// 值班日只保留目标月份内的，去重并升序
	first, last := MonthRange(month, year)
	seen := make(map[time.Time]bool)
	for _, day := range guardDays {
		day = dateOnly(day)
		if day.Before(first) || day.After(last) {
			continue
		}
		if seen[day] {
			continue
		}
		seen[day] = true
		s.guardDays = append(s.guardDays, day)
	}
	sort.Slice(s.guardDays, func(i, j int) bool {
		return s.guardDays[i].Before(s.guardDays[j])
	})

	if len(s.guardDays) == 0 {
		return nil, ErrNoGuardDays
	}

	// 互斥关系无论存储方向如何，这里都按无向关系展开
	for _, pair := range incompatibilities {
		if _, exists := s.incompatible[pair.DoctorAID]; !exists {
			s.incompatible[pair.DoctorAID] = make(map[int64]bool)
		}
		if _, exists := s.incompatible[pair.DoctorBID]; !exists {
			s.incompatible[pair.DoctorBID] = make(map[int64]bool)
		}
		s.incompatible[pair.DoctorAID][pair.DoctorBID] = true
		s.incompatible[pair.DoctorBID][pair.DoctorAID] = true
	}

	s.eligibility = newEligibility(s.doctors, unavailableDates)
	s.tracker = newFairnessTracker(history)

	return s, nil
}

// Generate 按日期升序逐个值班日填满名额
// 某个名额找不到可用医生时只记录空缺，绝不中断整次生成
func (s *Scheduler) Generate() *domain.GenerationResult {
	result := &domain.GenerationResult{
		Assignments: make([]*domain.Assignment, 0),
		Gaps:        make([]*domain.CoverageGap, 0),
	}

	for _, day := range s.guardDays {
		assignedToday := make(map[int64]bool)

		for _, slot := range daySlots {
			doctor := s.pickDoctor(day, slot.shiftType, assignedToday)
			if doctor == nil {
				result.Gaps = append(result.Gaps, &domain.CoverageGap{
					Date:         day,
					ShiftType:    slot.shiftType,
					SlotPosition: slot.position,
					Reason:       gapReasonNoDoctor,
				})
				continue
			}

			result.Assignments = append(result.Assignments, &domain.Assignment{
				Date:         day,
				ShiftType:    slot.shiftType,
				SlotPosition: slot.position,
				DoctorID:     doctor.ID,
				IsOriginal:   true,
			})

			// 立即更新状态，当天的下一个名额就能感知到这次分配
			assignedToday[doctor.ID] = true
			s.tracker.record(doctor.ID, slot.shiftType)
		}
	}

	return result
}

// pickDoctor 为一个名额挑选医生：
// 先筛掉当天不可用、当天已被排班、与当天已排医生互斥、已达次数上限的，
// 剩下的候选按累计次数升序（平局按 ID 升序）取第一个
func (s *Scheduler) pickDoctor(day time.Time, shiftType domain.ShiftType, assignedToday map[int64]bool) *domain.Doctor {
	candidates := make([]*domain.Doctor, 0)

	for _, doctor := range s.doctors {
		if assignedToday[doctor.ID] {
			continue
		}
		if !s.eligibility.allowed(doctor.ID, day) {
			continue
		}
		if s.conflictsWithAssigned(doctor.ID, assignedToday) {
			continue
		}
		if s.capReached(doctor, shiftType) {
			continue
		}
		candidates = append(candidates, doctor)
	}

	if len(candidates) == 0 {
		return nil
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return s.tracker.less(shiftType, candidates[i].ID, candidates[j].ID)
	})

	return candidates[0]
}

func (s *Scheduler) conflictsWithAssigned(doctorID int64, assignedToday map[int64]bool) bool {
	for otherID := range assignedToday {
		if s.incompatible[doctorID][otherID] {
			return true
		}
	}
	return false
}

// capReached 判断医生对应班次类型的次数上限是否已经用完
// 计数包含历史窗口和本次生成中已经分配的部分
func (s *Scheduler) capReached(doctor *domain.Doctor, shiftType domain.ShiftType) bool {
	var limit *int32
	switch shiftType {
	case domain.Shift7h:
		limit = doctor.Max7hGuards
	case domain.Shift17h:
		limit = doctor.Max17hGuards
	}

	if limit == nil {
		return false
	}

	return s.tracker.count(doctor.ID, shiftType) >= int(*limit)
}
