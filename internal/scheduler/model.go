package scheduler

import (
	"errors"

	"github.com/smhc-dev/guard-manager/backend/internal/domain"
)

var (
	ErrInvalidPeriod = errors.New("非法的排班月份")
	ErrNoDoctors     = errors.New("没有可参与排班的医生")
	ErrNoGuardDays   = errors.New("目标月份内没有值班日")
)

// guardSlot: 值班日中的一个名额
type guardSlot struct {
	shiftType domain.ShiftType
	position  int32
}

// 每个值班日固定需要填满的名额，顺序不能变：
// 先填 7 小时班，再按位置填两个 17 小时班
// 这个顺序参与次数上限检查，也是结果可复现的前提之一
var daySlots = []guardSlot{
	{shiftType: domain.Shift7h, position: 0},
	{shiftType: domain.Shift17h, position: 0},
	{shiftType: domain.Shift17h, position: 1},
}

const gapReasonNoDoctor = "无可用医生"
