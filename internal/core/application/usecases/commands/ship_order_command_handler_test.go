package commands_test

import (
	"context"
	"errors"
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/product"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockShipUoW struct{ mock.Mock }

func (m *MockShipUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockShipUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockShipUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockShipUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockShipUoW) ProductRepository() ports.ProductRepository {
	args := m.Called()
	return args.Get(0).(ports.ProductRepository)
}

type MockShipUoWFactory struct{ mock.Mock }

func (m *MockShipUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

func TestNewShipOrderCommand(t *testing.T) {
	t.Run("should create valid command", func(t *testing.T) {
		orderID := kernel.NewUUID()

		cmd, err := commands.NewShipOrderCommand(orderID)

		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		assert.True(t, cmd.OrderID().IsEqual(orderID))
	})

	t.Run("should fail with invalid order ID", func(t *testing.T) {
		var invalidID kernel.UUID

		_, err := commands.NewShipOrderCommand(invalidID)

		require.Error(t, err)
	})

	t.Run("should reject zero value command", func(t *testing.T) {
		cmd := commands.ShipOrderCommand{}

		err := cmd.Validate()

		require.Error(t, err)
		require.ErrorIs(t, err, commands.ErrShipOrderCommandIsNotConstructed)
	})
}

func TestShipOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()

	productID1 := kernel.NewUUID()
	productID2 := kernel.NewUUID()
	testOrder, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(),
		[]kernel.UUID{productID1, productID2})
	require.NoError(t, err)
	testProduct1, err := product.RestoreProduct(productID1, 3)
	require.NoError(t, err)
	testProduct2, err := product.RestoreProduct(productID2, 1)
	require.NoError(t, err)

	cmd, err := commands.NewShipOrderCommand(testOrder.ID())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	productRepo := new(MockProductRepository)
	uow := new(MockShipUoW)
	publisher := new(MockOrderEventPublisher)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		uow.On("ProductRepository").Return(productRepo).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		productRepo.On("Get", ctx, productID1).Return(testProduct1, nil).Once(),
		productRepo.On("Get", ctx, productID2).Return(testProduct2, nil).Once(),
		productRepo.On("Update", ctx, testProduct1).Return(nil).Once(),
		productRepo.On("Update", ctx, testProduct2).Return(nil).Once(),
		orderRepo.On("Update", ctx, testOrder).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		publisher.On("PublishOrderShipped", ctx, testOrder).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockShipUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewShipOrderCommandHandler(factory, publisher)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	orderRepo.AssertExpectations(t)
	productRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
	publisher.AssertExpectations(t)

	assert.Equal(t, order.Shipped, testOrder.Status())
	assert.Equal(t, 2, testProduct1.Inventory())
	assert.Equal(t, 0, testProduct2.Inventory())
}

func TestShipOrderCommandHandler_Handle_DuplicateLinesDecrementTwice(t *testing.T) {
	ctx := t.Context()

	productID := kernel.NewUUID()
	testOrder, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(),
		[]kernel.UUID{productID, productID})
	require.NoError(t, err)
	testProduct, err := product.RestoreProduct(productID, 5)
	require.NoError(t, err)

	cmd, err := commands.NewShipOrderCommand(testOrder.ID())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	productRepo := new(MockProductRepository)
	uow := new(MockShipUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		uow.On("ProductRepository").Return(productRepo).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		// Loaded once, updated once, but decremented once per line.
		productRepo.On("Get", ctx, productID).Return(testProduct, nil).Once(),
		productRepo.On("Update", ctx, testProduct).Return(nil).Once(),
		orderRepo.On("Update", ctx, testOrder).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockShipUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewShipOrderCommandHandler(factory, nil)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	productRepo.AssertExpectations(t)
	assert.Equal(t, 3, testProduct.Inventory())
	assert.Equal(t, order.Shipped, testOrder.Status())
}

func TestShipOrderCommandHandler_Handle_OrderNotFound(t *testing.T) {
	ctx := t.Context()

	orderID := kernel.NewUUID()
	cmd, err := commands.NewShipOrderCommand(orderID)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	productRepo := new(MockProductRepository)
	uow := new(MockShipUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		uow.On("ProductRepository").Return(productRepo).Once(),
		orderRepo.On("Get", ctx, orderID).Return(nil, errs.NewObjectNotFoundError("order", orderID)).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockShipUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewShipOrderCommandHandler(factory, nil)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	uow.AssertNotCalled(t, "Commit", ctx)
	productRepo.AssertNotCalled(t, "Get", ctx, mock.Anything)
}

func TestShipOrderCommandHandler_Handle_ProductUnavailable(t *testing.T) {
	ctx := t.Context()

	productID1 := kernel.NewUUID()
	productID2 := kernel.NewUUID()
	testOrder, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(),
		[]kernel.UUID{productID1, productID2})
	require.NoError(t, err)
	testProduct1, err := product.RestoreProduct(productID1, 3)
	require.NoError(t, err)
	testProduct2, err := product.RestoreProduct(productID2, 0)
	require.NoError(t, err)

	cmd, err := commands.NewShipOrderCommand(testOrder.ID())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	productRepo := new(MockProductRepository)
	uow := new(MockShipUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		uow.On("ProductRepository").Return(productRepo).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		productRepo.On("Get", ctx, productID1).Return(testProduct1, nil).Once(),
		productRepo.On("Get", ctx, productID2).Return(testProduct2, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockShipUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewShipOrderCommandHandler(factory, nil)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, services.ErrProductUnavailable)
	uow.AssertNotCalled(t, "Commit", ctx)
	productRepo.AssertNotCalled(t, "Update", ctx, mock.Anything)

	assert.Equal(t, order.Pending, testOrder.Status())
	assert.Equal(t, 3, testProduct1.Inventory())
	assert.Equal(t, 0, testProduct2.Inventory())
}

func TestShipOrderCommandHandler_Handle_AlreadyShipped(t *testing.T) {
	ctx := t.Context()

	productID := kernel.NewUUID()
	testOrder, err := order.RestoreOrder(kernel.NewUUID(), kernel.NewUUID(),
		order.Shipped, []kernel.UUID{productID})
	require.NoError(t, err)
	testProduct, err := product.RestoreProduct(productID, 4)
	require.NoError(t, err)

	cmd, err := commands.NewShipOrderCommand(testOrder.ID())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	productRepo := new(MockProductRepository)
	uow := new(MockShipUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		uow.On("ProductRepository").Return(productRepo).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		productRepo.On("Get", ctx, productID).Return(testProduct, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockShipUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewShipOrderCommandHandler(factory, nil)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	uow.AssertNotCalled(t, "Commit", ctx)
	assert.Equal(t, 4, testProduct.Inventory())
}

func TestShipOrderCommandHandler_Handle_OrderWithoutProducts(t *testing.T) {
	ctx := t.Context()

	testOrder, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), nil)
	require.NoError(t, err)

	cmd, err := commands.NewShipOrderCommand(testOrder.ID())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	productRepo := new(MockProductRepository)
	uow := new(MockShipUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		uow.On("ProductRepository").Return(productRepo).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockShipUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewShipOrderCommandHandler(factory, nil)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, order.ErrOrderHasNoProducts)
	assert.Equal(t, order.Pending, testOrder.Status())
}

func TestShipOrderCommandHandler_Handle_ProductUpdateErrorRollsBack(t *testing.T) {
	ctx := t.Context()

	productID := kernel.NewUUID()
	testOrder, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), []kernel.UUID{productID})
	require.NoError(t, err)
	testProduct, err := product.RestoreProduct(productID, 2)
	require.NoError(t, err)

	cmd, err := commands.NewShipOrderCommand(testOrder.ID())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	productRepo := new(MockProductRepository)
	uow := new(MockShipUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		uow.On("ProductRepository").Return(productRepo).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		productRepo.On("Get", ctx, productID).Return(testProduct, nil).Once(),
		productRepo.On("Update", ctx, testProduct).Return(errors.New("update error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockShipUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewShipOrderCommandHandler(factory, nil)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.EqualError(t, err, "update error")
	uow.AssertNotCalled(t, "Commit", ctx)
	orderRepo.AssertNotCalled(t, "Update", ctx, mock.Anything)
}

func TestShipOrderCommandHandler_Handle_PublishFailureDoesNotFail(t *testing.T) {
	ctx := t.Context()

	productID := kernel.NewUUID()
	testOrder, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), []kernel.UUID{productID})
	require.NoError(t, err)
	testProduct, err := product.RestoreProduct(productID, 2)
	require.NoError(t, err)

	cmd, err := commands.NewShipOrderCommand(testOrder.ID())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	productRepo := new(MockProductRepository)
	uow := new(MockShipUoW)
	publisher := new(MockOrderEventPublisher)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		uow.On("ProductRepository").Return(productRepo).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		productRepo.On("Get", ctx, productID).Return(testProduct, nil).Once(),
		productRepo.On("Update", ctx, testProduct).Return(nil).Once(),
		orderRepo.On("Update", ctx, testOrder).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		publisher.On("PublishOrderShipped", ctx, testOrder).Return(errors.New("broker down")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockShipUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewShipOrderCommandHandler(factory, publisher)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	publisher.AssertExpectations(t)
	assert.Equal(t, order.Shipped, testOrder.Status())
}
