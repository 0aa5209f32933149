package yoga

type CreatePaymentIntentReq struct {
	Price any `json:"price"`
}

type CreatePaymentIntentResp struct {
	ClientSecret string `json:"clientSecret"`
}

// CheckoutReq 结算请求体，未声明字段保留在 Extra 中原样入库
type CheckoutReq struct {
	UserName      string         `mapstructure:"userName"`
	UserEmail     string         `mapstructure:"userEmail"`
	ClassesId     []string       `mapstructure:"classesId"`
	TransactionId string         `mapstructure:"transactionId"`
	Amount        any            `mapstructure:"amount"`
	Quantity      any            `mapstructure:"quantity"`
	PaymentStatus string         `mapstructure:"paymentStatus"`
	Date          any            `mapstructure:"date"`
	Extra         map[string]any `mapstructure:",remain"`

	// ClassId 来自 query, 表示单个课程直接购买
	ClassId string `mapstructure:"-"`
}

type CheckoutResp struct {
	PaymentResult  *InsertResp `json:"paymentResult"`
	DeletedResult  *DeleteResp `json:"deletedResult"`
	EnrolledResult *InsertResp `json:"enrolledResult"`
	UpdatedResult  *UpdateResp `json:"updatedResult"`
}

type Payment struct {
	Id            string         `json:"_id"`
	UserName      string         `json:"userName,omitempty"`
	UserEmail     string         `json:"userEmail"`
	ClassesId     []string       `json:"classesId"`
	TransactionId string         `json:"transactionId"`
	Amount        float64        `json:"amount"`
	Quantity      int64          `json:"quantity"`
	PaymentStatus string         `json:"paymentStatus,omitempty"`
	Date          int64          `json:"date"`
	Extra         map[string]any `json:"extra,omitempty"`
}


type PaymentHistoryLengthResp struct {
	Total int64 `json:"total"`
}
