package domain

import "time"

type Doctor struct {
	ID       int64  `json:"id"`
	FullName string `json:"fullName"`
	Alias    string `json:"alias"`
	// 一周中不可值班的日期，0 表示周日，6 表示周六
	UnavailableWeekdays []int32 `json:"unavailableWeekdays"`
	// 值班次数上限，nil 表示不限制
	Max7hGuards  *int32    `json:"max7hGuards"`
	Max17hGuards *int32    `json:"max17hGuards"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	Version      int32     `json:"-"`
}
