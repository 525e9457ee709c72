package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/smhc-dev/guard-manager/backend/internal/domain"
	"github.com/smhc-dev/guard-manager/backend/internal/scheduler"
	"github.com/smhc-dev/guard-manager/backend/internal/utils"
)

func (h *Handler) GenerateSchedule(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Month int `json:"month" validate:"required,min=1,max=12"`
		Year  int `json:"year" validate:"required,min=1"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	// 同一个月份同时只允许一次生成在进行中：
	// 并发的两次生成会读到同一份生成前的历史负载，可能重复排班或互相覆盖
	// 这里用 redis 的 SetNX 做一个带过期时间的进行中标记
	lockKey := fmt.Sprintf("schedule_generating_%d_%d", req.Year, req.Month)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.Redis.OperationExpiration)*time.Minute)
	defer cancel()

	acquired, err := h.redisClient.SetNX(ctx, lockKey, 1, time.Duration(h.config.Generation.LockExpiration)*time.Second).Result()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if !acquired {
		h.errorResponse(w, r, "该月份的排班正在生成中，请稍后再试")
		return
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.Redis.OperationExpiration)*time.Minute)
		defer cancel()
		if err := h.redisClient.Del(ctx, lockKey).Err(); err != nil {
			h.logInternalServerError(r, err)
		}
	}()

	// 收集排班引擎需要的全部输入
	allDoctors, err := h.repository.GetAllDoctors()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	// 离职或停用的医生不参与排班
	doctors := make([]*domain.Doctor, 0, len(allDoctors))
	for _, doctor := range allDoctors {
		if doctor.IsActive {
			doctors = append(doctors, doctor)
		}
	}

	first, last := scheduler.MonthRange(req.Month, req.Year)
	guardDayRecords, err := h.repository.GetGuardDaysInRange(first, last)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	guardDays := make([]time.Time, 0, len(guardDayRecords))
	for _, guardDay := range guardDayRecords {
		guardDays = append(guardDays, guardDay.Date)
	}

	incompatibilities, err := h.repository.GetAllIncompatibilities()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	leaves, err := h.repository.GetApprovedLeavesOverlapping(first, last)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	unavailableDates := scheduler.UnavailableDatesFromLeaves(req.Month, req.Year, leaves)

	historyFrom, historyTo := scheduler.HistoryWindow(req.Month, req.Year)
	history, err := h.repository.GetOriginalAssignmentsInRange(historyFrom, historyTo)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	// 生成排班
	s, err := scheduler.New(req.Month, req.Year, doctors, guardDays, incompatibilities, unavailableDates, history)
	if err != nil {
		switch {
		case errors.Is(err, scheduler.ErrInvalidPeriod),
			errors.Is(err, scheduler.ErrNoDoctors),
			errors.Is(err, scheduler.ErrNoGuardDays):
			h.badRequest(w, r, err)
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	result := s.Generate()

	// 持久化之前复核一次硬约束
	if err := utils.ValidateGenerationResult(result, doctors, incompatibilities); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	schedule := &domain.Schedule{
		Month:  req.Month,
		Year:   req.Year,
		Status: domain.ScheduleStatusDraft,
	}

	// 排班表和整批排班记录在一个事务中落库
	if err := h.repository.InsertSchedule(schedule, result.Assignments); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	// 有空缺也算生成成功，由排班员决定如何处理
	msg := "排班生成成功"
	if len(result.Gaps) > 0 {
		msg = fmt.Sprintf("排班生成成功，存在 %d 个空缺名额", len(result.Gaps))
	}

	h.successResponse(w, r, msg, struct {
		Schedule *domain.Schedule         `json:"schedule"`
		Result   *domain.GenerationResult `json:"result"`
	}{
		Schedule: schedule,
		Result:   result,
	})
}

func (h *Handler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	schedule := r.Context().Value(ScheduleCtx).(*domain.Schedule)

	assignments, err := h.repository.GetAssignmentsByScheduleID(schedule.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取排班表成功", struct {
		Schedule    *domain.Schedule     `json:"schedule"`
		Assignments []*domain.Assignment `json:"assignments"`
	}{
		Schedule:    schedule,
		Assignments: assignments,
	})
}

// GetScheduleSummary 统计排班表中每个医生各种班次的数量，供工作量报表使用
func (h *Handler) GetScheduleSummary(w http.ResponseWriter, r *http.Request) {
	schedule := r.Context().Value(ScheduleCtx).(*domain.Schedule)

	assignments, err := h.repository.GetAssignmentsByScheduleID(schedule.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	type doctorSummary struct {
		DoctorID int64 `json:"doctorID"`
		Count7h  int   `json:"count7h"`
		Count17h int   `json:"count17h"`
		Total    int   `json:"total"`
	}

	summariesMap := make(map[int64]*doctorSummary)
	order := make([]int64, 0)

	for _, assignment := range assignments {
		summary, exists := summariesMap[assignment.DoctorID]
		if !exists {
			summary = &doctorSummary{DoctorID: assignment.DoctorID}
			summariesMap[assignment.DoctorID] = summary
			order = append(order, assignment.DoctorID)
		}

		switch assignment.ShiftType {
		case domain.Shift7h:
			summary.Count7h++
		case domain.Shift17h:
			summary.Count17h++
		}
		summary.Total++
	}

	summaries := make([]*doctorSummary, 0, len(order))
	for _, doctorID := range order {
		summaries = append(summaries, summariesMap[doctorID])
	}

	h.successResponse(w, r, "获取排班统计成功", summaries)
}

func (h *Handler) DeleteSchedule(w http.ResponseWriter, r *http.Request) {
	schedule := r.Context().Value(ScheduleCtx).(*domain.Schedule)

	if err := h.repository.DeleteSchedule(schedule.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "删除排班表成功", nil)
}
