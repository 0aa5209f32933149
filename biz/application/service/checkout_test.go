package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"yoga-master/biz/adaptor"
	"yoga-master/biz/application/dto/yoga"
	"yoga-master/biz/infrastructure/consts"
	"yoga-master/biz/infrastructure/repository/cart"
	"yoga-master/biz/infrastructure/repository/class"
	"yoga-master/biz/infrastructure/tx"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const studentEmail = "student@yoga.com"

type checkoutFixture struct {
	svc      *CheckoutService
	classes  *fakeClassMapper
	carts    *fakeCartMapper
	payments *fakePaymentMapper
	enrolled *fakeEnrolledMapper
}

func newCheckoutFixture(classes ...*class.Class) *checkoutFixture {
	f := &checkoutFixture{
		classes:  newFakeClassMapper(classes...),
		carts:    &fakeCartMapper{},
		payments: &fakePaymentMapper{},
	}
	f.enrolled = &fakeEnrolledMapper{classes: f.classes}
	f.svc = &CheckoutService{
		Transactor:     tx.NewSagaTransactor(),
		Locker:         &fakeLocker{},
		ClassMapper:    f.classes,
		CartMapper:     f.carts,
		PaymentMapper:  f.payments,
		EnrolledMapper: f.enrolled,
		RankingCache:   &fakeRankingCache{},
	}
	return f
}

func approvedClass(name string, seats, total int64) *class.Class {
	return &class.Class{
		Name:            name,
		InstructorEmail: "teacher@yoga.com",
		Price:           20,
		AvailableSeats:  seats,
		TotalEnrolled:   total,
		Status:          consts.ClassApproved,
	}
}

func studentCtx(email string) context.Context {
	return adaptor.InjectUserMeta(context.Background(), &yoga.UserMeta{Email: email, Name: "Student"})
}

func TestCompleteCheckout_AppliesEveryStep(t *testing.T) {
	c := approvedClass("Hatha", 5, 10)
	f := newCheckoutFixture(c)
	id := c.ID.Hex()
	require.NoError(t, f.carts.Insert(context.Background(), &cart.Cart{ClassId: id, UserMail: studentEmail}))

	resp, err := f.svc.CompleteCheckout(studentCtx(studentEmail), &yoga.CheckoutReq{
		ClassesId:     []string{id},
		TransactionId: "pi_1",
		Amount:        "20",
		Extra:         map[string]any{"cardBrand": "visa"},
	})
	require.NoError(t, err)

	got := f.classes.get(id)
	assert.Equal(t, int64(4), got.AvailableSeats)
	assert.Equal(t, int64(11), got.TotalEnrolled)
	assert.Equal(t, 1, f.payments.count())
	assert.Equal(t, 0, f.carts.count())
	n, _ := f.enrolled.Count(context.Background())
	assert.Equal(t, int64(1), n)

	assert.Equal(t, int64(1), resp.UpdatedResult.ModifiedCount)
	assert.Equal(t, int64(1), resp.DeletedResult.DeletedCount)
	assert.NotEmpty(t, resp.EnrolledResult.InsertedId)
	assert.NotEmpty(t, resp.PaymentResult.InsertedId)

	p := f.payments.payments[0]
	assert.Equal(t, 20.0, p.Amount)
	assert.Equal(t, int64(1), p.Quantity)
	assert.Equal(t, consts.PaymentSucceeded, p.PaymentStatus)
	assert.Equal(t, "visa", p.Extra["cardBrand"])
}

func TestCompleteCheckout_RollsBackWhenPaymentFails(t *testing.T) {
	c := approvedClass("Vinyasa", 5, 10)
	f := newCheckoutFixture(c)
	id := c.ID.Hex()
	require.NoError(t, f.carts.Insert(context.Background(), &cart.Cart{ClassId: id, UserMail: studentEmail}))
	f.payments.failWrite = true

	_, err := f.svc.CompleteCheckout(studentCtx(studentEmail), &yoga.CheckoutReq{
		ClassesId:     []string{id},
		TransactionId: "pi_2",
	})
	var ce *consts.CheckoutError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, StepInsertPayment, ce.Step)

	got := f.classes.get(id)
	assert.Equal(t, int64(5), got.AvailableSeats)
	assert.Equal(t, int64(10), got.TotalEnrolled)
	assert.Equal(t, 0, f.payments.count())
	assert.Equal(t, 1, f.carts.count())
	n, _ := f.enrolled.Count(context.Background())
	assert.Zero(t, n)
}

func TestCompleteCheckout_ReportsSeatFailures(t *testing.T) {
	soldOut := approvedClass("Yin", 0, 3)
	pending := approvedClass("Kundalini", 5, 0)
	pending.Status = consts.ClassPending
	open := approvedClass("Ashtanga", 5, 0)
	f := newCheckoutFixture(soldOut, pending, open)

	cases := []struct {
		name string
		ids  []string
		want error
	}{
		{"sold out", []string{soldOut.ID.Hex()}, consts.ErrSoldOut},
		{"not approved", []string{open.ID.Hex(), pending.ID.Hex()}, consts.ErrClassNotApproved},
		{"missing", []string{"64b7f0c2a1b2c3d4e5f60718"}, consts.ErrNotFound},
	}
	for i, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.svc.CompleteCheckout(studentCtx(studentEmail), &yoga.CheckoutReq{
				ClassesId:     tc.ids,
				TransactionId: fmt.Sprintf("pi_seat_%d", i),
			})
			var ce *consts.CheckoutError
			require.ErrorAs(t, err, &ce)
			assert.Equal(t, StepUpdateClasses, ce.Step)
			assert.ErrorIs(t, err, tc.want)
		})
	}

	// 第一个课程已占的座位被补偿
	assert.Equal(t, int64(5), f.classes.get(open.ID.Hex()).AvailableSeats)
	assert.Equal(t, int64(0), f.classes.get(open.ID.Hex()).TotalEnrolled)
	assert.Equal(t, 0, f.payments.count())
}

func TestCompleteCheckout_LastSeatGoesToOneBuyer(t *testing.T) {
	c := approvedClass("Restorative", 1, 0)
	f := newCheckoutFixture(c)
	id := c.ID.Hex()

	const buyers = 10
	var wg sync.WaitGroup
	errs := make([]error, buyers)
	for i := 0; i < buyers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			email := fmt.Sprintf("buyer%d@yoga.com", i)
			_, errs[i] = f.svc.CompleteCheckout(studentCtx(email), &yoga.CheckoutReq{
				ClassesId:     []string{id},
				TransactionId: fmt.Sprintf("pi_race_%d", i),
			})
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, consts.ErrSoldOut)
	}
	assert.Equal(t, 1, succeeded)
	got := f.classes.get(id)
	assert.Equal(t, int64(0), got.AvailableSeats)
	assert.Equal(t, int64(1), got.TotalEnrolled)
	assert.Equal(t, 1, f.payments.count())
}

func TestCompleteCheckout_SingleClassClearsOnlyThatItem(t *testing.T) {
	a := approvedClass("Hatha", 5, 0)
	b := approvedClass("Yin", 5, 0)
	f := newCheckoutFixture(a, b)
	ctx := context.Background()
	require.NoError(t, f.carts.Insert(ctx, &cart.Cart{ClassId: a.ID.Hex(), UserMail: studentEmail}))
	require.NoError(t, f.carts.Insert(ctx, &cart.Cart{ClassId: b.ID.Hex(), UserMail: studentEmail}))

	resp, err := f.svc.CompleteCheckout(studentCtx(studentEmail), &yoga.CheckoutReq{
		ClassesId:     []string{a.ID.Hex()},
		ClassId:       a.ID.Hex(),
		TransactionId: "pi_single",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.DeletedResult.DeletedCount)

	left, _ := f.carts.FindByUser(ctx, studentEmail)
	require.Len(t, left, 1)
	assert.Equal(t, b.ID.Hex(), left[0].ClassId)
}

func TestCompleteCheckout_RejectsInvalidRequests(t *testing.T) {
	c := approvedClass("Hatha", 5, 0)
	f := newCheckoutFixture(c)
	id := c.ID.Hex()

	_, err := f.svc.CompleteCheckout(studentCtx(studentEmail), &yoga.CheckoutReq{ClassesId: []string{id}, TransactionId: "pi_ok"})
	require.NoError(t, err)

	cases := []struct {
		name string
		ctx  context.Context
		req  *yoga.CheckoutReq
		want error
	}{
		{"duplicate transaction", studentCtx(studentEmail), &yoga.CheckoutReq{ClassesId: []string{id}, TransactionId: "pi_ok"}, consts.ErrDuplicateTransaction},
		{"no token", context.Background(), &yoga.CheckoutReq{ClassesId: []string{id}, TransactionId: "pi_x"}, consts.ErrNotAuthentication},
		{"other user", studentCtx(studentEmail), &yoga.CheckoutReq{UserEmail: "other@yoga.com", ClassesId: []string{id}, TransactionId: "pi_x"}, consts.ErrForbidden},
		{"bad id", studentCtx(studentEmail), &yoga.CheckoutReq{ClassesId: []string{"nope"}, TransactionId: "pi_x"}, consts.ErrInvalidObjectId},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.svc.CompleteCheckout(tc.ctx, tc.req)
			assert.ErrorIs(t, err, tc.want)
		})
	}

	_, err = f.svc.CompleteCheckout(studentCtx(studentEmail), &yoga.CheckoutReq{TransactionId: "pi_empty"})
	var en *consts.Errno
	require.True(t, errors.As(err, &en))
	assert.Equal(t, consts.ErrInvalidParams.Code(), en.Code())
	for _, amount := range []any{"NaN", "Inf", "-1", "abc"} {
		_, err = f.svc.CompleteCheckout(studentCtx(studentEmail), &yoga.CheckoutReq{ClassesId: []string{id}, TransactionId: "pi_amount", Amount: amount})
		require.True(t, errors.As(err, &en), amount)
		assert.Equal(t, consts.ErrInvalidParams.Code(), en.Code(), amount)
	}
	assert.Equal(t, 1, f.payments.count())
	assert.Equal(t, int64(4), f.classes.get(id).AvailableSeats)
}

func TestCompleteCheckout_BusyLock(t *testing.T) {
	c := approvedClass("Hatha", 5, 0)
	f := newCheckoutFixture(c)
	release, err := f.svc.Locker.Acquire(context.Background(), studentEmail)
	require.NoError(t, err)
	defer release()

	_, err = f.svc.CompleteCheckout(studentCtx(studentEmail), &yoga.CheckoutReq{
		ClassesId:     []string{c.ID.Hex()},
		TransactionId: "pi_busy",
	})
	assert.ErrorIs(t, err, consts.ErrCheckoutInProgress)
	assert.Equal(t, int64(5), f.classes.get(c.ID.Hex()).AvailableSeats)
}

func TestDecodeCheckoutReq(t *testing.T) {
	body := []byte(`{"userEmail":"a@yoga.com","classesId":["64b7f0c2a1b2c3d4e5f60718"],"transactionId":"pi_9","amount":"12.5","quantity":1,"date":"2025-01-02T03:04:05Z","cardBrand":"visa"}`)
	req, err := DecodeCheckoutReq(body, "64b7f0c2a1b2c3d4e5f60718")
	require.NoError(t, err)
	assert.Equal(t, "a@yoga.com", req.UserEmail)
	assert.Equal(t, []string{"64b7f0c2a1b2c3d4e5f60718"}, req.ClassesId)
	assert.Equal(t, "pi_9", req.TransactionId)
	assert.Equal(t, "12.5", req.Amount)
	assert.Equal(t, "64b7f0c2a1b2c3d4e5f60718", req.ClassId)
	assert.Equal(t, map[string]any{"cardBrand": "visa"}, req.Extra)

	_, err = DecodeCheckoutReq([]byte(`not json`), "")
	assert.Error(t, err)
}
