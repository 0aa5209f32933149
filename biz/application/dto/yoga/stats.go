package yoga

type PopularInstructor struct {
	Instructor    *User `json:"instructor"`
	TotalEnrolled int64 `json:"totalEnrolled"`
}

type AdminStatusResp struct {
	ApprovedClasses int64 `json:"approvedClasses"`
	PendingClasses  int64 `json:"pendingClasses"`
	Instructors     int64 `json:"instructors"`
	TotalClasses    int64 `json:"totalClasses"`
	TotalEnrolled   int64 `json:"totalEnrolled"`
}

type EnrolledClass struct {
	Classes    *Class `json:"classes"`
	Instructor *User  `json:"instructor"`
}

type ApplyInstructorReq struct {
	Name       string `json:"name" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Experience string `json:"experience"`
	PhotoUrl   string `json:"photoUrl"`
}

type Application struct {
	Id         string `json:"_id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Experience string `json:"experience,omitempty"`
	PhotoUrl   string `json:"photoUrl,omitempty"`
	CreateTime int64  `json:"createTime"`
}

type ApplySignedUrlReq struct {
	Prefix *string `json:"prefix,omitempty"`
	Suffix string  `json:"suffix"`
}

type ApplySignedUrlResp struct {
	Url string `json:"url"`
	Key string `json:"key"`
}
