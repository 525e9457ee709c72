package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/smhc-dev/guard-manager/backend/internal/domain"
	"github.com/smhc-dev/guard-manager/backend/internal/utils"
)

func (h *Handler) GetAllLeaves(w http.ResponseWriter, r *http.Request) {
	leaves, err := h.repository.GetAllLeaves()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取请假列表成功", leaves)
}

func (h *Handler) CreateLeave(w http.ResponseWriter, r *http.Request) {
	var req struct {
		DoctorID  int64  `json:"doctorID" validate:"required"`
		StartDate string `json:"startDate" validate:"required"`
		EndDate   string `json:"endDate" validate:"required"`
		Reason    string `json:"reason"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		h.badRequest(w, r, errors.New("开始日期格式错误，应为 YYYY-MM-DD"))
		return
	}
	endDate, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		h.badRequest(w, r, errors.New("结束日期格式错误，应为 YYYY-MM-DD"))
		return
	}

	leave := &domain.Leave{
		DoctorID:  req.DoctorID,
		StartDate: startDate,
		EndDate:   endDate,
		Reason:    req.Reason,
		Status:    domain.LeaveStatusPending,
	}

	if err := utils.ValidateLeaveRange(leave); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := h.repository.CreateLeave(leave); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch {
			case pgErr.ConstraintName == "leaves_doctor_id_fkey":
				h.badRequest(w, r, errors.New("医生不存在"))
			default:
				h.internalServerError(w, r, err)
			}
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "创建请假记录成功", leave)
}

func (h *Handler) UpdateLeaveStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status string `json:"status" validate:"required,oneof=已批准 已驳回"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	leave := r.Context().Value(LeaveInfoCtx).(*domain.Leave)
	leave.Status = domain.LeaveStatus(req.Status)

	if err := h.repository.UpdateLeaveStatus(leave); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "更新请假状态失败，请重试")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "更新请假状态成功", leave)
}

func (h *Handler) DeleteLeave(w http.ResponseWriter, r *http.Request) {
	leave := r.Context().Value(LeaveInfoCtx).(*domain.Leave)

	if err := h.repository.DeleteLeave(leave.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "删除请假记录成功", nil)
}
