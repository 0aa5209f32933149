package service

import (
	"context"
	"testing"
	"yoga-master/biz/application/dto/yoga"
	"yoga-master/biz/infrastructure/consts"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartService(t *testing.T) {
	open := approvedClass("Open", 5, 0)
	pending := approvedClass("Pending", 5, 0)
	pending.Status = consts.ClassPending
	classes := newFakeClassMapper(open, pending)
	s := &CartService{CartMapper: &fakeCartMapper{}, ClassMapper: classes}
	ctx := studentCtx(studentEmail)

	_, err := s.AddToCart(ctx, &yoga.AddToCartReq{ClassId: open.ID.Hex()})
	require.NoError(t, err)
	_, err = s.AddToCart(ctx, &yoga.AddToCartReq{ClassId: open.ID.Hex()})
	assert.ErrorIs(t, err, consts.ErrAlreadyInCart)
	_, err = s.AddToCart(ctx, &yoga.AddToCartReq{ClassId: pending.ID.Hex()})
	assert.ErrorIs(t, err, consts.ErrClassNotApproved)
	_, err = s.AddToCart(ctx, &yoga.AddToCartReq{ClassId: open.ID.Hex(), UserMail: "other@yoga.com"})
	assert.ErrorIs(t, err, consts.ErrForbidden)

	item, err := s.GetCartItem(ctx, &yoga.GetCartItemReq{Id: open.ID.Hex()})
	require.NoError(t, err)
	assert.Equal(t, studentEmail, item.UserMail)

	list, err := s.GetCart(ctx, studentEmail)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Open", list[0].Name)

	_, err = s.GetCart(ctx, "other@yoga.com")
	assert.ErrorIs(t, err, consts.ErrForbidden)

	del, err := s.DeleteCartItem(ctx, open.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, int64(1), del.DeletedCount)
	_, err = s.DeleteCartItem(ctx, open.ID.Hex())
	assert.ErrorIs(t, err, consts.ErrNotFound)
	_, err = s.GetCartItem(ctx, &yoga.GetCartItemReq{Id: open.ID.Hex()})
	assert.ErrorIs(t, err, consts.ErrNotFound)

	_, err = s.DeleteCartItem(context.Background(), open.ID.Hex())
	assert.ErrorIs(t, err, consts.ErrNotAuthentication)
}
