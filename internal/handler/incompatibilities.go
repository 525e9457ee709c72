package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/smhc-dev/guard-manager/backend/internal/domain"
	"github.com/smhc-dev/guard-manager/backend/internal/utils"
)

func (h *Handler) GetAllIncompatibilities(w http.ResponseWriter, r *http.Request) {
	pairs, err := h.repository.GetAllIncompatibilities()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取互斥列表成功", pairs)
}

func (h *Handler) CreateIncompatibility(w http.ResponseWriter, r *http.Request) {
	var req struct {
		DoctorAID int64 `json:"doctorAID" validate:"required"`
		DoctorBID int64 `json:"doctorBID" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	pair := &domain.Incompatibility{
		DoctorAID: req.DoctorAID,
		DoctorBID: req.DoctorBID,
	}

	if err := utils.ValidateIncompatibilityPair(pair); err != nil {
		h.badRequest(w, r, err)
		return
	}

	// 无论客户端以什么方向提交，repository 都会先归一化再插入，
	// 所以 (A, B) 和 (B, A) 会命中同一条唯一约束
	if err := h.repository.CreateIncompatibility(pair); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch {
			case pgErr.ConstraintName == "incompatibilities_doctor_a_id_doctor_b_id_key":
				h.badRequest(w, r, errors.New("这对医生的互斥关系已存在"))
			case pgErr.ConstraintName == "incompatibilities_doctor_a_id_fkey" || pgErr.ConstraintName == "incompatibilities_doctor_b_id_fkey":
				h.badRequest(w, r, errors.New("医生不存在"))
			default:
				h.internalServerError(w, r, err)
			}
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "创建互斥关系成功", pair)
}

func (h *Handler) DeleteIncompatibility(w http.ResponseWriter, r *http.Request) {
	idParam := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idParam, 10, 64)
	if err != nil {
		h.errorResponse(w, r, "互斥关系ID无效")
		return
	}

	if err := h.repository.DeleteIncompatibility(id); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "删除互斥关系成功", nil)
}
