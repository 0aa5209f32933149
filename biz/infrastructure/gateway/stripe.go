package gateway

import (
	"context"
	"net/http"
	"time"
	"yoga-master/biz/infrastructure/config"
	"yoga-master/biz/infrastructure/util/log"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type IPaymentGateway interface {
	// CreatePaymentIntent amount 单位为分
	CreatePaymentIntent(ctx context.Context, amount int64) (clientSecret string, err error)
}

type StripeGateway struct {
	sc       *client.API
	currency string
}

func NewStripeGateway(config *config.Config) *StripeGateway {
	httpClient := &http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
		Timeout:   30 * time.Second,
	}
	return &StripeGateway{
		sc:       client.New(config.Stripe.SecretKey, stripe.NewBackends(httpClient)),
		currency: config.Stripe.Currency,
	}
}

func (g *StripeGateway) CreatePaymentIntent(ctx context.Context, amount int64) (string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(amount),
		Currency:           stripe.String(g.currency),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	params.Context = ctx
	pi, err := g.sc.PaymentIntents.New(params)
	if err != nil {
		log.CtxError(ctx, "create payment intent failed, amount=%d, err=%v", amount, err)
		return "", err
	}
	return pi.ClientSecret, nil
}
