package domain

import "time"

// GuardDay: 被标记为需要值班的日期，未被标记的日期不参与排班
type GuardDay struct {
	ID        int64     `json:"id"`
	Date      time.Time `json:"date"`
	CreatedAt time.Time `json:"createdAt"`
}
