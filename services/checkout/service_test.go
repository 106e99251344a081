package checkout

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MarcGrol/shopcart/lib/myerrors"
	"github.com/MarcGrol/shopcart/lib/mylog"
	"github.com/MarcGrol/shopcart/services/cart"
)

var (
	itemA = cart.Item{UID: "1", Name: "A", UnitPrice: 10}
	itemB = cart.Item{UID: "2", Name: "B", UnitPrice: 5}
)

func TestCommit(t *testing.T) {
	c := context.TODO()

	t.Run("Both steps succeed", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// given
		ledger, sut, creator, attacher := setup(t, ctrl)
		ledger.AddItem(itemA)
		ledger.AddItem(itemA)
		ledger.AddItem(itemB)

		// when
		gomock.InOrder(
			creator.EXPECT().CreateOrder(gomock.Any(), int64(25)).Return("order-42", nil),
			attacher.EXPECT().AttachItems(gomock.Any(), "order-42", []OrderItem{
				{ItemUID: "1", Price: 10, Quantity: 2, OrderUID: "order-42"},
				{ItemUID: "2", Price: 5, Quantity: 1, OrderUID: "order-42"},
			}).Return(nil),
		)
		err := sut.Commit(c)

		// then
		assert.NoError(t, err)
		assert.True(t, ledger.Snapshot().IsEmpty())
	})

	t.Run("Cart changes while committing", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// given
		ledger, sut, creator, attacher := setup(t, ctrl)
		ledger.AddItem(itemA)
		ledger.AddItem(itemA)

		// when
		creator.EXPECT().CreateOrder(gomock.Any(), int64(20)).Return("order-42", nil)
		attacher.EXPECT().AttachItems(gomock.Any(), "order-42", []OrderItem{
			{ItemUID: "1", Price: 10, Quantity: 2, OrderUID: "order-42"},
		}).DoAndReturn(func(c context.Context, orderUID string, items []OrderItem) error {
			ledger.AddItem(itemA)
			ledger.AddItem(itemB)
			return nil
		})
		err := sut.Commit(c)

		// then
		assert.NoError(t, err)
		assert.Equal(t, cart.Snapshot{
			Items: []cart.LineItem{
				{UID: "1", Name: "A", UnitPrice: 10, Quantity: 1},
				{UID: "2", Name: "B", UnitPrice: 5, Quantity: 1},
			},
			TotalQuantity: 2,
			TotalAmount:   15,
		}, ledger.Snapshot())
	})

	t.Run("Empty cart", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// given
		_, sut, _, _ := setup(t, ctrl)

		// when
		err := sut.Commit(c)

		// then
		assert.Error(t, err)
		assert.True(t, myerrors.IsInvalidInput(err))
	})

	t.Run("Create order fails", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// given
		ledger, sut, creator, _ := setup(t, ctrl)
		ledger.AddItem(itemA)
		before := ledger.Snapshot()

		// when
		creator.EXPECT().CreateOrder(gomock.Any(), int64(10)).Return("", myerrors.New(http.StatusInternalServerError, fmt.Errorf("db down")))
		err := sut.Commit(c)

		// then
		assert.Error(t, err)
		assert.False(t, IsPartialCheckout(err))
		assert.Equal(t, http.StatusInternalServerError, myerrors.GetHTTPStatus(err))
		assert.Equal(t, before, ledger.Snapshot())
	})

	t.Run("Order created without uid", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// given
		ledger, sut, creator, _ := setup(t, ctrl)
		ledger.AddItem(itemA)

		// when
		creator.EXPECT().CreateOrder(gomock.Any(), int64(10)).Return("", nil)
		err := sut.Commit(c)

		// then
		assert.Error(t, err)
		assert.False(t, ledger.Snapshot().IsEmpty())
	})

	t.Run("Attach items fails", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// given
		ledger, sut, creator, attacher := setup(t, ctrl)
		ledger.AddItem(itemA)
		ledger.AddItem(itemB)
		before := ledger.Snapshot()
		cause := myerrors.New(http.StatusBadGateway, fmt.Errorf("timeout"))

		// when
		creator.EXPECT().CreateOrder(gomock.Any(), int64(15)).Return("order-42", nil)
		attacher.EXPECT().AttachItems(gomock.Any(), "order-42", gomock.Any()).Return(cause)
		err := sut.Commit(c)

		// then
		require.Error(t, err)
		assert.True(t, IsPartialCheckout(err))
		orderUID, found := PartialOrderUID(err)
		assert.True(t, found)
		assert.Equal(t, "order-42", orderUID)
		assert.ErrorIs(t, err, cause)
		assert.Equal(t, http.StatusBadGateway, myerrors.GetHTTPStatus(err))
		assert.Equal(t, before, ledger.Snapshot())
	})
}

func TestAttachToOrder(t *testing.T) {
	c := context.TODO()

	t.Run("Retry after partial checkout", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// given
		ledger, sut, creator, attacher := setup(t, ctrl)
		ledger.AddItem(itemB)
		creator.EXPECT().CreateOrder(gomock.Any(), int64(5)).Return("order-7", nil)
		attacher.EXPECT().AttachItems(gomock.Any(), "order-7", gomock.Any()).Return(fmt.Errorf("network"))
		err := sut.Commit(c)
		orderUID, _ := PartialOrderUID(err)

		// when
		attacher.EXPECT().AttachItems(gomock.Any(), "order-7", []OrderItem{
			{ItemUID: "2", Price: 5, Quantity: 1, OrderUID: "order-7"},
		}).Return(nil)
		err = sut.AttachToOrder(c, orderUID)

		// then
		assert.NoError(t, err)
		assert.True(t, ledger.Snapshot().IsEmpty())
	})

	t.Run("Missing order uid", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		ledger, sut, _, _ := setup(t, ctrl)
		ledger.AddItem(itemA)

		err := sut.AttachToOrder(c, "")

		assert.True(t, myerrors.IsInvalidInput(err))
	})

	t.Run("Empty cart", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		_, sut, _, _ := setup(t, ctrl)

		err := sut.AttachToOrder(c, "order-7")

		assert.True(t, myerrors.IsInvalidInput(err))
	})
}

func setup(t *testing.T, ctrl *gomock.Controller) (*cart.Ledger, *Service, *MockOrderCreator, *MockItemsAttacher) {
	ledger := cart.NewLedger()
	creator := NewMockOrderCreator(ctrl)
	attacher := NewMockItemsAttacher(ctrl)
	sut := NewService(ledger, creator, attacher, mylog.New("checkout"))

	return ledger, sut, creator, attacher
}
