package main

import (
	"context"
	"yoga-master/biz/infrastructure/util/log"
	"yoga-master/provider"

	"github.com/cloudwego/hertz/pkg/app/server"
	prometheus "github.com/hertz-contrib/monitor-prometheus"
	"github.com/hertz-contrib/obs-opentelemetry/tracing"
	"go.opentelemetry.io/contrib/propagators/b3"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
)

func Init() {
	provider.Init()
}

func main() {
	Init()
	p := provider.Get()

	tracer, cfg := tracing.NewServerTracer()
	h := server.Default(
		server.WithHostPorts(p.Config.ListenOn),
		server.WithTracer(prometheus.NewServerTracer(":9091", "/hertz")),
		tracer,
	)
	h.Use(tracing.ServerMiddleware(cfg))
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(b3.New(), propagation.Baggage{}, propagation.TraceContext{}))

	register(h)

	ctx, cancel := context.WithCancel(context.Background())
	h.OnShutdown = append(h.OnShutdown, func(context.Context) {
		cancel()
	})
	if err := p.StatsService.StartRefresher(ctx); err != nil {
		log.Error("start ranking refresher failed: %v", err)
	}

	log.Info("server listening on %s", p.Config.ListenOn)
	h.Spin()
}
