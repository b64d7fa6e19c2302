package queries_test

import (
	"context"
	"testing"
	"time"

	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type GetOrdersQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	handler   queries.GetOrdersQueryHandler
}

func (suite *GetOrdersQueryHandlerTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.OrderProductDTO{})
	suite.Require().NoError(err)

	suite.handler = queries.NewGetOrdersQueryHandler(db)
}

func (suite *GetOrdersQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *GetOrdersQueryHandlerTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders, order_products CASCADE").Error
	suite.Require().NoError(err)
}

func (suite *GetOrdersQueryHandlerTestSuite) seedOrder(
	customerID kernel.UUID,
	status order.Status,
	productIDs ...kernel.UUID,
) kernel.UUID {
	orderID := kernel.NewUUID()

	dto := orderrepo.OrderDTO{
		ID:         orderID.Bytes(),
		CustomerID: customerID.Bytes(),
		Status:     int(status),
	}
	for _, productID := range productIDs {
		dto.Products = append(dto.Products, orderrepo.OrderProductDTO{
			OrderID:   orderID.Bytes(),
			ProductID: productID.Bytes(),
		})
	}

	err := suite.db.Create(&dto).Error
	suite.Require().NoError(err)

	return orderID
}

func (suite *GetOrdersQueryHandlerTestSuite) TestHandle_EmptyDatabase_ReturnsEmptySlice() {
	query, err := queries.NewGetOrdersQuery(nil)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *GetOrdersQueryHandlerTestSuite) TestHandle_WithoutFilter_ReturnsAllOrders() {
	customer1 := kernel.NewUUID()
	customer2 := kernel.NewUUID()
	productID := kernel.NewUUID()

	orderID1 := suite.seedOrder(customer1, order.Pending, productID)
	orderID2 := suite.seedOrder(customer2, order.Shipped)

	query, err := queries.NewGetOrdersQuery(nil)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Len(result, 2)

	byID := make(map[kernel.UUID]queries.OrderResponse, len(result))
	for _, o := range result {
		byID[o.ID] = o
	}

	first, ok := byID[orderID1]
	suite.Require().True(ok)
	suite.True(first.CustomerID.IsEqual(customer1))
	suite.Equal(order.Pending, first.Status)
	suite.Equal([]kernel.UUID{productID}, first.ProductIDs)

	second, ok := byID[orderID2]
	suite.Require().True(ok)
	suite.True(second.CustomerID.IsEqual(customer2))
	suite.Equal(order.Shipped, second.Status)
	suite.Empty(second.ProductIDs)
}

func (suite *GetOrdersQueryHandlerTestSuite) TestHandle_WithFilter_ReturnsOnlyThatCustomersOrders() {
	customer1 := kernel.NewUUID()
	customer2 := kernel.NewUUID()

	orderID1 := suite.seedOrder(customer1, order.Pending)
	suite.seedOrder(customer2, order.Pending)
	orderID3 := suite.seedOrder(customer1, order.Shipped)

	query, err := queries.NewGetOrdersQuery(&customer1)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Len(result, 2)
	for _, o := range result {
		suite.True(o.CustomerID.IsEqual(customer1))
	}

	ids := []kernel.UUID{result[0].ID, result[1].ID}
	suite.Contains(ids, orderID1)
	suite.Contains(ids, orderID3)
}

func (suite *GetOrdersQueryHandlerTestSuite) TestHandle_FilterWithNoMatches_ReturnsEmptySlice() {
	suite.seedOrder(kernel.NewUUID(), order.Pending)

	unknownCustomer := kernel.NewUUID()
	query, err := queries.NewGetOrdersQuery(&unknownCustomer)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Empty(result)
}

func (suite *GetOrdersQueryHandlerTestSuite) TestHandle_DuplicateLines_PreservedInLineOrder() {
	customerID := kernel.NewUUID()
	productID1 := kernel.NewUUID()
	productID2 := kernel.NewUUID()

	orderID := suite.seedOrder(customerID, order.Pending, productID1, productID2, productID1)

	query, err := queries.NewGetOrdersQuery(nil)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.True(result[0].ID.IsEqual(orderID))
	suite.Equal([]kernel.UUID{productID1, productID2, productID1}, result[0].ProductIDs)
}

func (suite *GetOrdersQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	invalidQuery := queries.GetOrdersQuery{}

	result, err := suite.handler.Handle(context.Background(), invalidQuery)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.Contains(err.Error(), "must be created via NewGetOrdersQuery constructor")
}

func TestGetOrdersQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetOrdersQueryHandlerTestSuite))
}
