package domain

import "time"

type LeaveStatus string

const (
	LeaveStatusPending  LeaveStatus = "待审批"
	LeaveStatusApproved LeaveStatus = "已批准"
	LeaveStatusRejected LeaveStatus = "已驳回"
)

// Leave: 医生的请假记录，只有已批准的请假才会影响排班
type Leave struct {
	ID        int64       `json:"id"`
	DoctorID  int64       `json:"doctorID"`
	StartDate time.Time   `json:"startDate"`
	EndDate   time.Time   `json:"endDate"`
	Reason    string      `json:"reason"`
	Status    LeaveStatus `json:"status"`
	CreatedAt time.Time   `json:"createdAt"`
	Version   int32       `json:"-"`
}
