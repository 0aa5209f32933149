package router

import (
	"time"
	"yoga-master/biz/adaptor/controller/yoga"
	"yoga-master/biz/adaptor/middleware"
	"yoga-master/biz/infrastructure/consts"

	"github.com/cloudwego/hertz/pkg/app/server"
)

// GeneratedRegister 注册所有业务路由
func GeneratedRegister(r *server.Hertz, auth middleware.Authorizer, timeout time.Duration) {
	root := r.Group("/", middleware.RequestID(), middleware.Deadline(timeout))

	token := middleware.RequireToken()
	admin := middleware.RequireRole(auth, consts.RoleAdmin)
	instructor := middleware.RequireRole(auth, consts.RoleInstructor)

	// 用户
	root.POST("/new-user", yoga.NewUser)
	root.GET("/users", yoga.ListUsers)
	root.GET("/users/:id", yoga.GetUser)
	root.GET("/user/:email", token, yoga.GetUserByEmail)
	root.PUT("/update-user/:id", token, admin, yoga.UpdateUser)
	root.DELETE("/delete-user/:id", token, admin, yoga.DeleteUser)
	root.POST("/api/set-token", yoga.SetToken)

	// 课程
	root.POST("/new-class", token, instructor, yoga.NewClass)
	root.GET("/classes", yoga.ListApprovedClasses)
	root.GET("/classes/:email", yoga.ListInstructorClasses)
	root.GET("/manage-classes", token, admin, yoga.ManageClasses)
	root.PATCH("/change-status/:id", token, admin, yoga.ChangeStatus)
	root.GET("/approved-classes", yoga.ListApprovedClasses)
	root.GET("/class/:id", yoga.GetClass)
	root.PUT("/update-class/:id", token, instructor, yoga.UpdateClass)
	root.GET("/popular_classes", yoga.PopularClasses)

	// 购物车
	root.POST("/add-to-cart", token, yoga.AddToCart)
	root.GET("/cart-item/:id", token, yoga.GetCartItem)
	root.GET("/cart/:email", token, yoga.GetCart)
	root.DELETE("/delete-cart-item/:id", token, yoga.DeleteCartItem)

	// 支付
	root.POST("/create-payment-intent", yoga.CreatePaymentIntent)
	root.POST("/payment-info", token, yoga.PaymentInfo)
	root.GET("/payment-history/:email", yoga.PaymentHistory)
	root.GET("/payment-history-length/:email", yoga.PaymentHistoryLength)

	// 统计
	root.GET("/popular-instructors", yoga.PopularInstructors)
	root.GET("/admin-status", token, admin, yoga.AdminStatus)
	root.GET("/instructors", yoga.ListInstructors)
	root.GET("/enrolled-classes/:email", token, yoga.EnrolledClasses)

	// 讲师申请与上传
	root.POST("/as-instructor", yoga.AsInstructor)
	root.GET("/applied-instructors/:email", yoga.AppliedInstructor)
	root.POST("/upload-url", token, yoga.ApplySignedUrl)
}
