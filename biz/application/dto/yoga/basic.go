package yoga

// UserMeta 令牌中携带的用户信息
type UserMeta struct {
	Email string `json:"email" mapstructure:"email"`
	Name  string `json:"name,omitempty" mapstructure:"name"`
}

func (m *UserMeta) GetEmail() string {
	if m == nil {
		return ""
	}
	return m.Email
}

type PaginationOptions struct {
	Page  *int64 `query:"page" json:"page,omitempty"`
	Limit *int64 `query:"limit" json:"limit,omitempty"`
}

type Response struct {
	Code int64  `json:"code"`
	Msg  string `json:"msg"`
}

// ErrorResp 错误响应, Step 仅在结算失败时出现
type ErrorResp struct {
	Code    int64  `json:"code"`
	Message string `json:"message"`
	Step    string `json:"step,omitempty"`
}

// InsertResp 与 Mongo InsertOneResult 对齐
type InsertResp struct {
	Acknowledged bool   `json:"acknowledged"`
	InsertedId   string `json:"insertedId"`
}

type UpdateResp struct {
	Acknowledged  bool  `json:"acknowledged"`
	MatchedCount  int64 `json:"matchedCount"`
	ModifiedCount int64 `json:"modifiedCount"`
}

type DeleteResp struct {
	Acknowledged bool  `json:"acknowledged"`
	DeletedCount int64 `json:"deletedCount"`
}

