package domain

import (
	"time"
)

type Role string

const (
	RoleAdmin     Role = "管理员"
	RoleScheduler Role = "排班员"
	RoleDoctor    Role = "医生"
)

type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	FullName     string    `json:"fullName"`
	Email        string    `json:"email"`
	Role         Role      `json:"role"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	Version      int32     `json:"-"`
}
