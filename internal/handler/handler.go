package handler

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	zh_translations "github.com/go-playground/validator/v10/translations/zh"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/smhc-dev/guard-manager/backend/internal/config"
	"github.com/smhc-dev/guard-manager/backend/internal/domain"
	"github.com/smhc-dev/guard-manager/backend/internal/repository"
)

type Handler struct {
	validate    *validator.Validate
	config      *config.Config
	repository  *repository.Repository
	translator  ut.Translator
	mailChannel *amqp.Channel
	redisClient *redis.Client

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo *repository.Repository, mailCh *amqp.Channel, rdb *redis.Client) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	zh := zh.New()
	uni := ut.New(zh, zh)
	trans, _ := uni.GetTranslator("zh")
	if err := zh_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Handler{
		validate:    validate,
		config:      cfg,
		repository:  repo,
		translator:  trans,
		mailChannel: mailCh,
		redisClient: rdb,

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	// 认证相关
	h.Mux.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
		r.Route("/reset-password", func(r chi.Router) {
			r.Post("/require", h.RequireResetPassword)
			r.Post("/confirm", h.ConfirmResetPassword)
		})
	})

	// 以下 API 必须要在登录后才允许调用
	h.Mux.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Route("/my-info", func(r chi.Router) {
			r.Use(h.myInfo)
			r.Get("/", h.GetMyInfo)
			r.Patch("/password", h.UpdateMyPassword)
			r.Route("/update-email", func(r chi.Router) {
				r.Post("/require", h.RequireUpdateEmail)
				r.Post("/confirm", h.ConfirmUpdateEmail)
			})
		})

		r.Route("/users", func(r chi.Router) {
			r.Use(h.RequiredRole([]domain.Role{domain.RoleAdmin}))
			r.Post("/", h.CreateUser)
			r.Get("/", h.GetAllUserInfo)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.userInfo)
				r.Get("/", h.GetUserInfo)
				r.With(h.preventOperateInitialAdmin).Patch("/", h.UpdateUser)
				r.With(h.preventOperateInitialAdmin).Delete("/", h.DeleteUser)
				r.Patch("/password", h.UpdateUserPassword)
			})
		})

		// 医生、请假、互斥和值班日历由管理员和排班员维护，其他角色只能查看
		r.Route("/doctors", func(r chi.Router) {
			r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin, domain.RoleScheduler})).Post("/", h.CreateDoctor)
			r.Get("/", h.GetAllDoctors)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.doctorInfo)
				r.Get("/", h.GetDoctor)
				r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin, domain.RoleScheduler})).Patch("/", h.UpdateDoctor)
				r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin, domain.RoleScheduler})).Delete("/", h.DeleteDoctor)
			})
		})

		r.Route("/leaves", func(r chi.Router) {
			r.Get("/", h.GetAllLeaves)
			r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin, domain.RoleScheduler})).Post("/", h.CreateLeave)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.leaveInfo)
				r.Use(h.RequiredRole([]domain.Role{domain.RoleAdmin, domain.RoleScheduler}))
				r.Patch("/status", h.UpdateLeaveStatus)
				r.Delete("/", h.DeleteLeave)
			})
		})

		r.Route("/incompatibilities", func(r chi.Router) {
			r.Get("/", h.GetAllIncompatibilities)
			r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin, domain.RoleScheduler})).Post("/", h.CreateIncompatibility)
			r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin, domain.RoleScheduler})).Delete("/{id}", h.DeleteIncompatibility)
		})

		r.Route("/guard-days", func(r chi.Router) {
			r.Get("/", h.GetGuardDays)
			r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin, domain.RoleScheduler})).Post("/", h.CreateGuardDay)
			r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin, domain.RoleScheduler})).Delete("/{date}", h.DeleteGuardDay)
		})

		r.Route("/schedules", func(r chi.Router) {
			r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin, domain.RoleScheduler})).Post("/generate", h.GenerateSchedule)
			r.Route("/{year}/{month}", func(r chi.Router) {
				r.Use(h.schedule)
				r.Get("/", h.GetSchedule)
				r.Get("/summary", h.GetScheduleSummary)
				r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin, domain.RoleScheduler})).Delete("/", h.DeleteSchedule)
			})
		})
	})
}
