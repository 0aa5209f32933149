package consts

import (
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type Errno struct {
	err  error
	code codes.Code
}

// GRPCStatus 实现 GRPCStatus 方法
func (en *Errno) GRPCStatus() *status.Status {
	return status.New(en.code, en.err.Error())
}

// 实现 Error 方法
func (en *Errno) Error() string {
	return en.err.Error()
}

func (en *Errno) Code() codes.Code {
	return en.code
}

// NewErrno 创建自定义错误
func NewErrno(code codes.Code, err error) *Errno {
	return &Errno{
		err:  err,
		code: code,
	}
}

// 认证与授权
var (
	ErrMissingCredential = NewErrno(codes.Unauthenticated, errors.New("missing credential"))
	ErrForbidden         = NewErrno(codes.PermissionDenied, errors.New("forbidden"))
	ErrUnauthorized      = NewErrno(codes.Code(1000), errors.New("unauthorized access"))
	ErrNotAuthentication = NewErrno(codes.Unauthenticated, errors.New("not authentication"))
	ErrNotOwner          = NewErrno(codes.PermissionDenied, errors.New("not the owner of this resource"))
	ErrSignToken         = NewErrno(codes.Internal, errors.New("sign token failed"))
)

// 业务错误
var (
	ErrRepeatedSignUp         = NewErrno(codes.AlreadyExists, errors.New("email already registered"))
	ErrCreateUser             = NewErrno(codes.Code(1001), errors.New("create user failed"))
	ErrCreateClass            = NewErrno(codes.Code(1002), errors.New("create class failed"))
	ErrAlreadyInCart          = NewErrno(codes.AlreadyExists, errors.New("class already in cart"))
	ErrAddToCart              = NewErrno(codes.Code(1003), errors.New("add to cart failed"))
	ErrClassNotApproved       = NewErrno(codes.FailedPrecondition, errors.New("class is not approved"))
	ErrSoldOut                = NewErrno(codes.FailedPrecondition, errors.New("no seats available"))
	ErrCheckoutInProgress     = NewErrno(codes.Aborted, errors.New("checkout in progress"))
	ErrDuplicateTransaction   = NewErrno(codes.AlreadyExists, errors.New("duplicate transaction"))
	ErrRepeatedApplication    = NewErrno(codes.AlreadyExists, errors.New("application already submitted"))
	ErrApply                  = NewErrno(codes.Code(1004), errors.New("submit application failed"))
	ErrCreatePaymentIntent    = NewErrno(codes.Unavailable, errors.New("create payment intent failed"))
	ErrApplySignedUrl         = NewErrno(codes.Unavailable, errors.New("apply signed url failed"))
	ErrUploadNotConfigured    = NewErrno(codes.Unimplemented, errors.New("upload storage not configured"))
	ErrGetRanking             = NewErrno(codes.Code(1005), errors.New("get ranking failed"))
	ErrGetStatus              = NewErrno(codes.Code(1006), errors.New("get admin status failed"))
	ErrTransactionUnsupported = NewErrno(codes.FailedPrecondition, errors.New("transactions not supported by store"))
)

// ErrInvalidParams 调用时错误
var (
	ErrInvalidParams = NewErrno(codes.InvalidArgument, errors.New("invalid params"))
	ErrCall          = NewErrno(codes.Unknown, errors.New("call failed, please retry"))
)

// InvalidParams 包装绑定或校验失败的原因
func InvalidParams(err error) *Errno {
	return NewErrno(codes.InvalidArgument, err)
}

// 数据库相关错误
var (
	ErrNotFound        = NewErrno(codes.NotFound, errors.New("not found"))
	ErrInvalidObjectId = NewErrno(codes.InvalidArgument, errors.New("invalid id"))
	ErrUpdate          = NewErrno(codes.Code(2001), errors.New("update failed"))
	ErrDelete          = NewErrno(codes.Code(2002), errors.New("delete failed"))
	ErrQuery           = NewErrno(codes.Code(2003), errors.New("query failed"))
)

// CheckoutError 标记结算流程中失败的步骤
type CheckoutError struct {
	Step string
	Err  error
}

func (e *CheckoutError) Error() string {
	return "checkout failed at " + e.Step + ": " + e.Err.Error()
}

func (e *CheckoutError) Unwrap() error {
	return e.Err
}

// GRPCStatus 沿用内部错误的状态码与信息, 步骤由响应中的 step 字段给出
func (e *CheckoutError) GRPCStatus() *status.Status {
	var en *Errno
	if errors.As(e.Err, &en) {
		return en.GRPCStatus()
	}
	return status.New(codes.Internal, e.Err.Error())
}
