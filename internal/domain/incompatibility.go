package domain

import "time"

// Incompatibility: 一对不能在同一天值班的医生
// 存储时保证 DoctorAID < DoctorBID，排班引擎按无向关系处理
type Incompatibility struct {
	ID        int64     `json:"id"`
	DoctorAID int64     `json:"doctorAID"`
	DoctorBID int64     `json:"doctorBID"`
	CreatedAt time.Time `json:"createdAt"`
}
