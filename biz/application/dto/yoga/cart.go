package yoga

type CartItem struct {
	Id       string `json:"_id"`
	ClassId  string `json:"classId"`
	UserMail string `json:"userMail"`
	Date     int64  `json:"date,omitempty"`
}

type AddToCartReq struct {
	ClassId  string `json:"classId" validate:"required"`
	UserMail string `json:"userMail"`
}

type GetCartItemReq struct {
	Id    string `path:"id"`
	Email string `query:"email"`
}
