package yoga

type Class struct {
	Id              string  `json:"_id"`
	Name            string  `json:"name"`
	InstructorName  string  `json:"instructorName"`
	InstructorEmail string  `json:"instructorEmail"`
	Description     string  `json:"description"`
	Price           float64 `json:"price"`
	AvailableSeats  int64   `json:"availableSeats"`
	Image           string  `json:"image"`
	VideoLink       string  `json:"videoLink"`
	Status          string  `json:"status"`
	Reason          string  `json:"reason,omitempty"`
	TotalEnrolled   int64   `json:"totalEnrolled"`
	CreateTime      int64   `json:"createTime,omitempty"`
}

// NewClassReq price 与 availableSeats 允许数字或数字字符串
type NewClassReq struct {
	Name           string `json:"name" validate:"required"`
	InstructorName string `json:"instructorName"`
	Description    string `json:"description"`
	Price          any    `json:"price"`
	AvailableSeats any    `json:"availableSeats"`
	Image          string `json:"image"`
	VideoLink      string `json:"videoLink"`
	Status         string `json:"status"`
}

type UpdateClassReq struct {
	Id             string `path:"id" json:"-"`
	Name           string `json:"name" validate:"required"`
	Description    string `json:"description"`
	Price          any    `json:"price"`
	AvailableSeats any    `json:"availableSeats"`
	Image          string `json:"image"`
	VideoLink      string `json:"videoLink"`
}

type ChangeStatusReq struct {
	Id     string `path:"id" json:"-"`
	Status string `json:"status" validate:"required"`
	Reason string `json:"reason"`
}

