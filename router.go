package main

import (
	"time"
	"yoga-master/biz/adaptor/controller/yoga"
	"yoga-master/biz/router"
	"yoga-master/provider"

	"github.com/cloudwego/hertz/pkg/app/server"
)

// register registers all routers.
func register(r *server.Hertz) {
	p := provider.Get()
	router.GeneratedRegister(r, p.AuthService, time.Duration(p.Config.RequestTimeout)*time.Millisecond)

	customizedRegister(r)
}

// customizeRegister registers customize routers.
func customizedRegister(r *server.Hertz) {
	r.GET("/", yoga.Greeting)
	r.GET("/ping", yoga.Ping)
}
