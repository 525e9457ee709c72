package handler

type ContextKey string

var (
	RoleCtxKey    ContextKey = "role"
	SubCtxKey     ContextKey = "sub"
	MyInfoCtx     ContextKey = "myInfo"
	UserInfoCtx   ContextKey = "userInfo"
	DoctorInfoCtx ContextKey = "doctorInfo"
	LeaveInfoCtx  ContextKey = "leaveInfo"
	ScheduleCtx   ContextKey = "schedule"
)
