package consts

var PageSize int64 = 10

// 数据库相关
const (
	ID              = "_id"
	Email           = "email"
	Role            = "role"
	Status          = "status"
	InstructorEmail = "instructorEmail"
	ClassId         = "classId"
	UserMail        = "userMail"
	UserEmail       = "userEmail"
	TransactionId   = "transactionId"
	AvailableSeats  = "availableSeats"
	TotalEnrolled   = "totalEnrolled"
	Date            = "date"
	CreateTime      = "createTime"
	UpdateTime      = "updateTime"
	In              = "$in"
	Inc             = "$inc"
	Set             = "$set"
	Gt              = "$gt"
)

// 用户角色
const (
	RoleStudent    = "student"
	RoleInstructor = "instructor"
	RoleAdmin      = "admin"
)

var Roles = []string{RoleStudent, RoleInstructor, RoleAdmin}

// 课程审核状态
const (
	ClassPending  = "pending"
	ClassApproved = "approved"
	ClassRejected = "rejected"
)

var ClassStatuses = []string{ClassPending, ClassApproved, ClassRejected}

// 支付状态
const (
	PaymentSucceeded = "succeeded"
)

// http
const (
	Authorization   = "Authorization"
	BearerPrefix    = "Bearer "
	RequestIDHeader = "X-Request-ID"
	TotalHeader     = "X-Total-Count"
	ContentTypeJson = "application/json"
	Greeting        = "Hello Developers 2025!"
)

// 默认值
const (
	PopularLimit = 6
	CentsPerUnit = 100
)
