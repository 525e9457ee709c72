package scheduler

import (
	"github.com/smhc-dev/guard-manager/backend/internal/domain"
)

// fairnessTracker 维护每个医生每种班次的累计值班次数
// 初始值来自历史窗口内的排班记录，生成过程中每分配一个名额立即加一，
// 因此同一天内靠后的名额也能感知到前面的分配结果
type fairnessTracker struct {
	counts map[domain.ShiftType]map[int64]int
}

func newFairnessTracker(history []*domain.Assignment) *fairnessTracker {
	t := &fairnessTracker{
		counts: map[domain.ShiftType]map[int64]int{
			domain.Shift7h:  {},
			domain.Shift17h: {},
		},
	}

	for _, assignment := range history {
		// 人工换班产生的记录不计入历史负载
		if !assignment.IsOriginal {
			continue
		}
		t.record(assignment.DoctorID, assignment.ShiftType)
	}

	return t
}

func (t *fairnessTracker) count(doctorID int64, shiftType domain.ShiftType) int {
	return t.counts[shiftType][doctorID]
}

func (t *fairnessTracker) record(doctorID int64, shiftType domain.ShiftType) {
	t.counts[shiftType][doctorID]++
}

func (t *fairnessTracker) total(doctorID int64) int {
	return t.counts[domain.Shift7h][doctorID] + t.counts[domain.Shift17h][doctorID]
}

// less 判断在指定班次类型下医生 a 是否应优先于医生 b：
// 该班次的累计次数少者优先，次数相同时总次数少者优先，
// 仍然相同则按医生 ID 升序
// 只按单一班次比较的话，两种班次的负载会错开累积，总量差会超过 1
// 不允许依赖任何无序集合的遍历顺序，否则结果不可复现
func (t *fairnessTracker) less(shiftType domain.ShiftType, a int64, b int64) bool {
	countA := t.count(a, shiftType)
	countB := t.count(b, shiftType)
	if countA != countB {
		return countA < countB
	}

	totalA := t.total(a)
	totalB := t.total(b)
	if totalA != totalB {
		return totalA < totalB
	}

	return a < b
}
