package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/smhc-dev/guard-manager/backend/internal/domain"
	"github.com/smhc-dev/guard-manager/backend/internal/utils"
)

func (h *Handler) GetAllDoctors(w http.ResponseWriter, r *http.Request) {
	doctors, err := h.repository.GetAllDoctors()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取医生列表成功", doctors)
}

func (h *Handler) CreateDoctor(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FullName            string  `json:"fullName" validate:"required"`
		Alias               string  `json:"alias" validate:"required"`
		UnavailableWeekdays []int32 `json:"unavailableWeekdays"`
		Max7hGuards         *int32  `json:"max7hGuards" validate:"omitempty,min=0"`
		Max17hGuards        *int32  `json:"max17hGuards" validate:"omitempty,min=0"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := utils.ValidateUnavailableWeekdays(req.UnavailableWeekdays); err != nil {
		h.badRequest(w, r, err)
		return
	}

	doctor := &domain.Doctor{
		FullName:            req.FullName,
		Alias:               req.Alias,
		UnavailableWeekdays: req.UnavailableWeekdays,
		Max7hGuards:         req.Max7hGuards,
		Max17hGuards:        req.Max17hGuards,
	}
	if doctor.UnavailableWeekdays == nil {
		doctor.UnavailableWeekdays = make([]int32, 0)
	}

	if err := h.repository.CreateDoctor(doctor); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "创建医生成功", doctor)
}

func (h *Handler) GetDoctor(w http.ResponseWriter, r *http.Request) {
	doctor := r.Context().Value(DoctorInfoCtx).(*domain.Doctor)
	h.successResponse(w, r, "获取医生信息成功", doctor)
}

func (h *Handler) UpdateDoctor(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FullName            *string  `json:"fullName"`
		Alias               *string  `json:"alias"`
		UnavailableWeekdays *[]int32 `json:"unavailableWeekdays"`
		Max7hGuards         *int32   `json:"max7hGuards" validate:"omitempty,min=0"`
		Max17hGuards        *int32   `json:"max17hGuards" validate:"omitempty,min=0"`
		ClearMax7hGuards    bool     `json:"clearMax7hGuards"`
		ClearMax17hGuards   bool     `json:"clearMax17hGuards"`
		IsActive            *bool    `json:"isActive"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	doctor := r.Context().Value(DoctorInfoCtx).(*domain.Doctor)

	if req.FullName != nil {
		doctor.FullName = *req.FullName
	}
	if req.Alias != nil {
		doctor.Alias = *req.Alias
	}
	if req.UnavailableWeekdays != nil {
		if err := utils.ValidateUnavailableWeekdays(*req.UnavailableWeekdays); err != nil {
			h.badRequest(w, r, err)
			return
		}
		doctor.UnavailableWeekdays = *req.UnavailableWeekdays
	}
	// 上限字段要区分"不修改"和"清除上限"，所以单独用两个布尔字段表示清除
	if req.Max7hGuards != nil {
		doctor.Max7hGuards = req.Max7hGuards
	}
	if req.ClearMax7hGuards {
		doctor.Max7hGuards = nil
	}
	if req.Max17hGuards != nil {
		doctor.Max17hGuards = req.Max17hGuards
	}
	if req.ClearMax17hGuards {
		doctor.Max17hGuards = nil
	}
	if req.IsActive != nil {
		doctor.IsActive = *req.IsActive
	}

	if err := h.repository.UpdateDoctor(doctor); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "更新医生信息失败，请重试")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "更新医生信息成功", doctor)
}

func (h *Handler) DeleteDoctor(w http.ResponseWriter, r *http.Request) {
	doctor := r.Context().Value(DoctorInfoCtx).(*domain.Doctor)

	if err := h.repository.DeleteDoctor(doctor.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "删除医生成功", nil)
}
