package scheduler

import (
	"testing"
	"time"

	"github.com/smhc-dev/guard-manager/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDoctor(id int64) *domain.Doctor {
	return &domain.Doctor{
		ID:       id,
		FullName: "测试医生",
		IsActive: true,
	}
}

func newTestDoctors(n int) []*domain.Doctor {
	doctors := make([]*domain.Doctor, 0, n)
	for i := 1; i <= n; i++ {
		doctors = append(doctors, newTestDoctor(int64(i)))
	}
	return doctors
}

// 生成指定月份内每一天组成的值班日列表
func allDaysOfMonth(month int, year int) []time.Time {
	first, last := MonthRange(month, year)
	days := make([]time.Time, 0, last.Day())
	for day := first; !day.After(last); day = day.AddDate(0, 0, 1) {
		days = append(days, day)
	}
	return days
}

func mustGenerate(t *testing.T, month int, year int, doctors []*domain.Doctor, guardDays []time.Time, incompatibilities []*domain.Incompatibility, unavailableDates map[int64][]time.Time, history []*domain.Assignment) *domain.GenerationResult {
	t.Helper()

	s, err := New(month, year, doctors, guardDays, incompatibilities, unavailableDates, history)
	require.NoError(t, err)
	return s.Generate()
}

func TestNew_InvalidInput(t *testing.T) {
	doctors := newTestDoctors(3)
	guardDays := allDaysOfMonth(3, 2025)

	t.Run("非法的月份", func(t *testing.T) {
		_, err := New(13, 2025, doctors, guardDays, nil, nil, nil)
		assert.ErrorIs(t, err, ErrInvalidPeriod)

		_, err = New(0, 2025, doctors, guardDays, nil, nil, nil)
		assert.ErrorIs(t, err, ErrInvalidPeriod)
	})

	t.Run("非法的年份", func(t *testing.T) {
		_, err := New(3, 0, doctors, guardDays, nil, nil, nil)
		assert.ErrorIs(t, err, ErrInvalidPeriod)
	})

	t.Run("没有医生", func(t *testing.T) {
		_, err := New(3, 2025, nil, guardDays, nil, nil, nil)
		assert.ErrorIs(t, err, ErrNoDoctors)
	})

	t.Run("没有值班日", func(t *testing.T) {
		_, err := New(3, 2025, doctors, nil, nil, nil, nil)
		assert.ErrorIs(t, err, ErrNoGuardDays)

		// 值班日全部在目标月份之外时同样报错
		outside := []time.Time{time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)}
		_, err = New(3, 2025, doctors, outside, nil, nil, nil)
		assert.ErrorIs(t, err, ErrNoGuardDays)
	})
}

func TestGenerate_FillsAllSlots(t *testing.T) {
	doctors := newTestDoctors(5)
	guardDays := allDaysOfMonth(3, 2025)

	result := mustGenerate(t, 3, 2025, doctors, guardDays, nil, nil, nil)

	// 每个值班日 3 个名额，医生充足时不应有空缺
	assert.Len(t, result.Assignments, len(guardDays)*3)
	assert.Empty(t, result.Gaps)

	// 每天恰好 1 个 7 小时名额和 2 个 17 小时名额
	perDay := make(map[time.Time]map[domain.ShiftType]int)
	for _, assignment := range result.Assignments {
		if perDay[assignment.Date] == nil {
			perDay[assignment.Date] = make(map[domain.ShiftType]int)
		}
		perDay[assignment.Date][assignment.ShiftType]++
		assert.True(t, assignment.IsOriginal)
	}
	for _, counts := range perDay {
		assert.Equal(t, 1, counts[domain.Shift7h])
		assert.Equal(t, 2, counts[domain.Shift17h])
	}
}

func TestGenerate_NoDoubleBookingOnSameDay(t *testing.T) {
	// 只有 2 个医生时每天 3 个名额中必然有 1 个空缺，
	// 同一个医生绝不能在同一天占用两个名额
	doctors := newTestDoctors(2)
	guardDays := allDaysOfMonth(3, 2025)

	result := mustGenerate(t, 3, 2025, doctors, guardDays, nil, nil, nil)

	assignedByDate := make(map[time.Time]map[int64]bool)
	for _, assignment := range result.Assignments {
		if assignedByDate[assignment.Date] == nil {
			assignedByDate[assignment.Date] = make(map[int64]bool)
		}
		assert.False(t, assignedByDate[assignment.Date][assignment.DoctorID], "医生 %d 在 %s 被重复排班", assignment.DoctorID, assignment.Date.Format("2006-01-02"))
		assignedByDate[assignment.Date][assignment.DoctorID] = true
	}

	// 每天 2 条排班 + 1 条空缺
	assert.Len(t, result.Assignments, len(guardDays)*2)
	assert.Len(t, result.Gaps, len(guardDays))
	for _, gap := range result.Gaps {
		assert.Equal(t, "无可用医生", gap.Reason)
		assert.Equal(t, domain.Shift17h, gap.ShiftType)
		assert.Equal(t, int32(1), gap.SlotPosition)
	}
}

func TestGenerate_RespectsUnavailableWeekdays(t *testing.T) {
	doctors := newTestDoctors(5)
	// 医生 1 周日和周六都不可值班
	doctors[0].UnavailableWeekdays = []int32{0, 6}

	guardDays := allDaysOfMonth(3, 2025)
	result := mustGenerate(t, 3, 2025, doctors, guardDays, nil, nil, nil)

	for _, assignment := range result.Assignments {
		if assignment.DoctorID == 1 {
			weekday := assignment.Date.Weekday()
			assert.NotEqual(t, time.Sunday, weekday)
			assert.NotEqual(t, time.Saturday, weekday)
		}
	}
}

func TestGenerate_RespectsUnavailableDates(t *testing.T) {
	doctors := newTestDoctors(5)
	guardDays := allDaysOfMonth(3, 2025)

	// 医生 2 在 3 月 10 日到 3 月 12 日请假
	unavailableDates := map[int64][]time.Time{
		2: {
			time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
			time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC),
			time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC),
		},
	}

	result := mustGenerate(t, 3, 2025, doctors, guardDays, nil, unavailableDates, nil)

	for _, assignment := range result.Assignments {
		if assignment.DoctorID == 2 {
			for _, day := range unavailableDates[2] {
				assert.False(t, assignment.Date.Equal(day), "医生 2 在请假日 %s 被排班", day.Format("2006-01-02"))
			}
		}
	}
}

func TestGenerate_FullMonthLeaveExcludesDoctor(t *testing.T) {
	doctors := newTestDoctors(4)
	guardDays := allDaysOfMonth(3, 2025)

	// 医生 3 整个月都请假
	unavailableDates := map[int64][]time.Time{3: guardDays}

	result := mustGenerate(t, 3, 2025, doctors, guardDays, nil, unavailableDates, nil)

	for _, assignment := range result.Assignments {
		assert.NotEqual(t, int64(3), assignment.DoctorID)
	}
	assert.Empty(t, result.Gaps)
}

func TestGenerate_RespectsIncompatibilities(t *testing.T) {
	doctors := newTestDoctors(5)
	guardDays := allDaysOfMonth(3, 2025)

	// 医生 1 和医生 2 互斥
	incompatibilities := []*domain.Incompatibility{
		{DoctorAID: 1, DoctorBID: 2},
	}

	result := mustGenerate(t, 3, 2025, doctors, guardDays, incompatibilities, nil, nil)

	assignedByDate := make(map[time.Time]map[int64]bool)
	for _, assignment := range result.Assignments {
		if assignedByDate[assignment.Date] == nil {
			assignedByDate[assignment.Date] = make(map[int64]bool)
		}
		assignedByDate[assignment.Date][assignment.DoctorID] = true
	}

	for date, assigned := range assignedByDate {
		assert.False(t, assigned[1] && assigned[2], "互斥的医生 1 和 2 被排在了同一天 %s", date.Format("2006-01-02"))
	}
}

func TestGenerate_IncompatiblePairAloneLeavesGap(t *testing.T) {
	// 只有两个互斥的医生时，每天只能排上一个人，剩下两个名额空缺
	doctors := newTestDoctors(2)
	guardDays := []time.Time{time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)}
	incompatibilities := []*domain.Incompatibility{
		{DoctorAID: 1, DoctorBID: 2},
	}

	result := mustGenerate(t, 3, 2025, doctors, guardDays, incompatibilities, nil, nil)

	require.Len(t, result.Assignments, 1)
	assert.Len(t, result.Gaps, 2)
}

func TestGenerate_RespectsCaps(t *testing.T) {
	doctors := newTestDoctors(4)
	// 医生 1 的 7 小时班上限为 2
	max7h := int32(2)
	doctors[0].Max7hGuards = &max7h

	guardDays := allDaysOfMonth(3, 2025)
	result := mustGenerate(t, 3, 2025, doctors, guardDays, nil, nil, nil)

	count7h := 0
	for _, assignment := range result.Assignments {
		if assignment.DoctorID == 1 && assignment.ShiftType == domain.Shift7h {
			count7h++
		}
	}
	assert.LessOrEqual(t, count7h, 2)
}

func TestGenerate_ZeroCapNeverAssigned(t *testing.T) {
	doctors := newTestDoctors(4)
	zero := int32(0)
	doctors[0].Max7hGuards = &zero
	doctors[0].Max17hGuards = &zero

	guardDays := allDaysOfMonth(3, 2025)
	result := mustGenerate(t, 3, 2025, doctors, guardDays, nil, nil, nil)

	for _, assignment := range result.Assignments {
		assert.NotEqual(t, int64(1), assignment.DoctorID)
	}
}

func TestGenerate_CapCountsHistory(t *testing.T) {
	doctors := newTestDoctors(3)
	// 医生 1 的 17 小时班上限为 3，历史窗口内已经值了 3 次
	max17h := int32(3)
	doctors[0].Max17hGuards = &max17h

	history := []*domain.Assignment{}
	for i := 0; i < 3; i++ {
		history = append(history, &domain.Assignment{
			Date:       time.Date(2025, 2, 10+i, 0, 0, 0, 0, time.UTC),
			ShiftType:  domain.Shift17h,
			DoctorID:   1,
			IsOriginal: true,
		})
	}

	guardDays := allDaysOfMonth(3, 2025)
	result := mustGenerate(t, 3, 2025, doctors, guardDays, nil, nil, history)

	for _, assignment := range result.Assignments {
		if assignment.DoctorID == 1 {
			assert.NotEqual(t, domain.Shift17h, assignment.ShiftType)
		}
	}
}

func TestGenerate_SwappedHistoryNotCounted(t *testing.T) {
	doctors := newTestDoctors(2)
	// 医生 1 的历史记录全部是换班产生的，不应计入负载，
	// 因此和医生 2 的初始负载相同，第一天的 7 小时班按 ID 排给医生 1
	history := []*domain.Assignment{
		{Date: time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC), ShiftType: domain.Shift7h, DoctorID: 1, IsOriginal: false},
		{Date: time.Date(2025, 2, 11, 0, 0, 0, 0, time.UTC), ShiftType: domain.Shift7h, DoctorID: 1, IsOriginal: false},
	}

	guardDays := []time.Time{time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)}
	result := mustGenerate(t, 3, 2025, doctors, guardDays, nil, nil, history)

	require.NotEmpty(t, result.Assignments)
	first := result.Assignments[0]
	assert.Equal(t, domain.Shift7h, first.ShiftType)
	assert.Equal(t, int64(1), first.DoctorID)
}

func TestGenerate_FairnessSpread(t *testing.T) {
	// 10 个医生，无任何限制条件时，
	// 每种班次以及总量的负载差距都不应超过 1
	for _, month := range []int{3, 6} { // 分别覆盖 31 天和 30 天的月份
		doctors := newTestDoctors(10)
		guardDays := allDaysOfMonth(month, 2025)

		result := mustGenerate(t, month, 2025, doctors, guardDays, nil, nil, nil)
		require.Empty(t, result.Gaps)

		counts := map[domain.ShiftType]map[int64]int{
			domain.Shift7h:  {},
			domain.Shift17h: {},
		}
		totals := make(map[int64]int)
		for _, assignment := range result.Assignments {
			counts[assignment.ShiftType][assignment.DoctorID]++
			totals[assignment.DoctorID]++
		}

		for shiftType, perDoctor := range counts {
			minCount, maxCount := -1, -1
			for _, doctor := range doctors {
				count := perDoctor[doctor.ID]
				if minCount == -1 || count < minCount {
					minCount = count
				}
				if count > maxCount {
					maxCount = count
				}
			}
			assert.LessOrEqual(t, maxCount-minCount, 1, "%d 月班次 %s 的负载差距超过 1", month, shiftType)
		}

		minTotal, maxTotal := -1, -1
		for _, doctor := range doctors {
			total := totals[doctor.ID]
			if minTotal == -1 || total < minTotal {
				minTotal = total
			}
			if total > maxTotal {
				maxTotal = total
			}
		}
		assert.LessOrEqual(t, maxTotal-minTotal, 1, "%d 月的总负载差距超过 1", month)
	}
}

func TestGenerate_HistoryBalancesLoad(t *testing.T) {
	doctors := newTestDoctors(2)
	// 医生 1 历史上已经值了很多 7 小时班，新的 7 小时班应该先排给医生 2
	history := []*domain.Assignment{}
	for i := 0; i < 5; i++ {
		history = append(history, &domain.Assignment{
			Date:       time.Date(2025, 2, 10+i, 0, 0, 0, 0, time.UTC),
			ShiftType:  domain.Shift7h,
			DoctorID:   1,
			IsOriginal: true,
		})
	}

	guardDays := []time.Time{time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)}
	result := mustGenerate(t, 3, 2025, doctors, guardDays, nil, nil, history)

	require.NotEmpty(t, result.Assignments)
	first := result.Assignments[0]
	require.Equal(t, domain.Shift7h, first.ShiftType)
	assert.Equal(t, int64(2), first.DoctorID)
}

func TestGenerate_Deterministic(t *testing.T) {
	doctors := newTestDoctors(8)
	doctors[2].UnavailableWeekdays = []int32{0}
	max7h := int32(3)
	doctors[5].Max7hGuards = &max7h

	guardDays := allDaysOfMonth(3, 2025)
	incompatibilities := []*domain.Incompatibility{
		{DoctorAID: 1, DoctorBID: 4},
		{DoctorAID: 2, DoctorBID: 7},
	}
	unavailableDates := map[int64][]time.Time{
		6: {time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)},
	}

	// 相同输入生成两次，结果必须完全一致
	first := mustGenerate(t, 3, 2025, doctors, guardDays, incompatibilities, unavailableDates, nil)
	second := mustGenerate(t, 3, 2025, doctors, guardDays, incompatibilities, unavailableDates, nil)

	assert.Equal(t, first, second)
}

func TestGenerate_AssignmentsOrdered(t *testing.T) {
	doctors := newTestDoctors(5)
	// 值班日乱序传入，生成结果仍按日期升序
	guardDays := []time.Time{
		time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC), // 重复的值班日应被去重
	}

	result := mustGenerate(t, 3, 2025, doctors, guardDays, nil, nil, nil)

	assert.Len(t, result.Assignments, 3*3)
	for i := 1; i < len(result.Assignments); i++ {
		assert.False(t, result.Assignments[i].Date.Before(result.Assignments[i-1].Date))
	}
}

func TestGenerate_SlotOrderWithinDay(t *testing.T) {
	doctors := newTestDoctors(5)
	guardDays := []time.Time{time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)}

	result := mustGenerate(t, 3, 2025, doctors, guardDays, nil, nil, nil)

	require.Len(t, result.Assignments, 3)
	assert.Equal(t, domain.Shift7h, result.Assignments[0].ShiftType)
	assert.Equal(t, int32(0), result.Assignments[0].SlotPosition)
	assert.Equal(t, domain.Shift17h, result.Assignments[1].ShiftType)
	assert.Equal(t, int32(0), result.Assignments[1].SlotPosition)
	assert.Equal(t, domain.Shift17h, result.Assignments[2].ShiftType)
	assert.Equal(t, int32(1), result.Assignments[2].SlotPosition)
}

func TestGenerate_GapDoesNotAbortGeneration(t *testing.T) {
	doctors := newTestDoctors(3)
	// 3 月 10 日所有医生都请假，该天 3 个名额全部空缺，其余天照常生成
	blocked := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	unavailableDates := map[int64][]time.Time{
		1: {blocked},
		2: {blocked},
		3: {blocked},
	}

	guardDays := allDaysOfMonth(3, 2025)
	result := mustGenerate(t, 3, 2025, doctors, guardDays, nil, unavailableDates, nil)

	require.Len(t, result.Gaps, 3)
	for _, gap := range result.Gaps {
		assert.True(t, gap.Date.Equal(blocked))
		assert.Equal(t, "无可用医生", gap.Reason)
	}
	assert.Len(t, result.Assignments, (len(guardDays)-1)*3)
}
