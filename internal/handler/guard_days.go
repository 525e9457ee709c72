package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/smhc-dev/guard-manager/backend/internal/domain"
	"github.com/smhc-dev/guard-manager/backend/internal/scheduler"
)

// GetGuardDays 返回指定月份内所有被标记的值班日，月份通过查询参数传入
func (h *Handler) GetGuardDays(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil || year < 1 {
		h.errorResponse(w, r, "无效的年份")
		return
	}

	month, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil || month < 1 || month > 12 {
		h.errorResponse(w, r, "无效的月份")
		return
	}

	first, last := scheduler.MonthRange(month, year)
	guardDays, err := h.repository.GetGuardDaysInRange(first, last)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取值班日列表成功", guardDays)
}

func (h *Handler) CreateGuardDay(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Date string `json:"date" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		h.badRequest(w, r, errors.New("日期格式错误，应为 YYYY-MM-DD"))
		return
	}

	guardDay := &domain.GuardDay{
		Date: date,
	}

	if err := h.repository.CreateGuardDay(guardDay); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch {
			case pgErr.ConstraintName == "guard_days_date_key":
				h.badRequest(w, r, errors.New("该日期已被标记为值班日"))
			default:
				h.internalServerError(w, r, err)
			}
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "标记值班日成功", guardDay)
}

func (h *Handler) DeleteGuardDay(w http.ResponseWriter, r *http.Request) {
	dateParam := chi.URLParam(r, "date")
	date, err := time.Parse("2006-01-02", dateParam)
	if err != nil {
		h.errorResponse(w, r, "日期格式错误，应为 YYYY-MM-DD")
		return
	}

	if err := h.repository.DeleteGuardDayByDate(date); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "取消值班日成功", nil)
}
