package domain

import "time"

type ShiftType string

const (
	// 7 小时班，15:00-22:00，每个值班日 1 个名额
	Shift7h ShiftType = "7h"
	// 17 小时班，15:00-次日 08:00，每个值班日 2 个名额
	Shift17h ShiftType = "17h"
)

type ScheduleStatus string

const (
	ScheduleStatusDraft ScheduleStatus = "草稿"
)

type Schedule struct {
	ID        int64          `json:"id"`
	Month     int            `json:"month"`
	Year      int            `json:"year"`
	Status    ScheduleStatus `json:"status"`
	CreatedAt time.Time      `json:"createdAt"`
	Version   int32          `json:"-"`
}

type Assignment struct {
	ID           int64     `json:"id"`
	ScheduleID   int64     `json:"scheduleID"`
	Date         time.Time `json:"date"`
	ShiftType    ShiftType `json:"shiftType"`
	SlotPosition int32     `json:"slotPosition"`
	DoctorID     int64     `json:"doctorID"`
	// IsOriginal 为 true 表示这条记录是排班引擎直接生成的
	// 后续的人工换班会把它置为 false 并记录 OriginalDoctorID
	IsOriginal       bool   `json:"isOriginal"`
	OriginalDoctorID *int64 `json:"originalDoctorID"`
}

// CoverageGap: 某个名额找不到可用医生时留下的空缺
type CoverageGap struct {
	Date         time.Time `json:"date"`
	ShiftType    ShiftType `json:"shiftType"`
	SlotPosition int32     `json:"slotPosition"`
	Reason       string    `json:"reason"`
}

// GenerationResult: 一次排班生成的完整输出
// Assignments 按日期、名额位置升序排列，Gaps 可能为空
type GenerationResult struct {
	Assignments []*Assignment  `json:"assignments"`
	Gaps        []*CoverageGap `json:"gaps"`
}
