package yoga

type User struct {
	Id         string   `json:"_id"`
	Name       string   `json:"name"`
	Email      string   `json:"email"`
	Role       string   `json:"role"`
	Gender     string   `json:"gender,omitempty"`
	Phone      string   `json:"phone,omitempty"`
	Address    string   `json:"address,omitempty"`
	About      string   `json:"about,omitempty"`
	PhotoUrl   string   `json:"photoUrl,omitempty"`
	Skills     []string `json:"skills,omitempty"`
	CreateTime int64    `json:"createTime,omitempty"`
}

type NewUserReq struct {
	Name     string   `json:"name" validate:"required"`
	Email    string   `json:"email" validate:"required,email"`
	Role     string   `json:"role"`
	Gender   string   `json:"gender"`
	Phone    string   `json:"phone"`
	Address  string   `json:"address"`
	About    string   `json:"about"`
	PhotoUrl string   `json:"photoUrl"`
	Skills   []string `json:"skills"`
}


type UpdateUserReq struct {
	Id       string   `path:"id" json:"-"`
	Name     string   `json:"name" validate:"required"`
	Email    string   `json:"email" validate:"required,email"`
	Role     string   `json:"role" validate:"required"`
	Address  string   `json:"address"`
	About    string   `json:"about"`
	PhotoUrl string   `json:"photoUrl"`
	Skills   []string `json:"skills"`
}

type SetTokenReq struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name"`
}

type SetTokenResp struct {
	Token        string `json:"token"`
	AccessExpire int64  `json:"accessExpire"`
}
