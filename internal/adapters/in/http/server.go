package http

import (
	"errors"
	"net/http"
	"strings"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/generated/servers"
	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// shipFailureMessage is the single message every shipping failure collapses
// to. Callers cannot distinguish "already shipped" from "no inventory" from
// "no products"; only an unknown order id (404) is reported separately.
const shipFailureMessage = "There was a problem shipping your order."

// Server implements the ServerInterface for handling HTTP requests.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler   commands.CreateOrderCommandHandler
	createProductHandler commands.CreateProductCommandHandler
	shipOrderHandler     commands.ShipOrderCommandHandler

	// Query handlers
	getOrdersHandler queries.GetOrdersQueryHandler
	getOrderHandler  queries.GetOrderQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	createProductHandler commands.CreateProductCommandHandler,
	shipOrderHandler commands.ShipOrderCommandHandler,
	getOrdersHandler queries.GetOrdersQueryHandler,
	getOrderHandler queries.GetOrderQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:   createOrderHandler,
		createProductHandler: createProductHandler,
		shipOrderHandler:     shipOrderHandler,
		getOrdersHandler:     getOrdersHandler,
		getOrderHandler:      getOrderHandler,
	}
}

// GetOrders handles GET /api/v1/orders - lists orders, optionally filtered by customer.
func (s *Server) GetOrders(ctx echo.Context, params servers.GetOrdersParams) error {
	var customerID *kernel.UUID
	if params.CustomerId != nil {
		id, err := kernel.UUIDFromBytes((*params.CustomerId)[:])
		if err != nil {
			return ctx.JSON(http.StatusBadRequest, servers.Error{
				Message: "Invalid customer_id filter",
			})
		}
		customerID = &id
	}

	query, err := queries.NewGetOrdersQuery(customerID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, servers.Error{
			Message: "Invalid customer_id filter",
		})
	}

	orders, err := s.getOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, servers.Error{
			Message: "Failed to retrieve orders",
		})
	}

	response := make([]servers.Order, len(orders))
	for i, o := range orders {
		response[i] = toServerOrder(o)
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetOrder handles GET /api/v1/orders/:orderId - fetches one order.
func (s *Server) GetOrder(ctx echo.Context, orderId openapi_types.UUID) error {
	orderID, err := kernel.UUIDFromBytes(orderId[:])
	if err != nil {
		return s.orderNotFound(ctx)
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return s.orderNotFound(ctx)
	}

	o, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return s.orderNotFound(ctx)
	}
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, servers.Error{
			Message: "Failed to retrieve order",
		})
	}

	return ctx.JSON(http.StatusOK, toServerOrder(o))
}

// CreateOrder handles POST /api/v1/orders - places a new order.
// The order id is generated server side and the status is always pending;
// anything a client supplies beyond customer_id and product_ids is ignored.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var newOrder servers.NewOrder
	if err := ctx.Bind(&newOrder); err != nil {
		return ctx.JSON(http.StatusBadRequest, servers.Error{
			Message: "Invalid request body",
		})
	}

	orderID := kernel.NewUUID()

	customerID, err := kernel.UUIDFromBytes(newOrder.CustomerId[:])
	if err != nil {
		return ctx.JSON(http.StatusUnprocessableEntity, validationErrors(
			errs.NewValueIsRequiredErrorWithCause("customer id", err)))
	}

	var productIDs []kernel.UUID
	if newOrder.ProductIds != nil {
		productIDs = make([]kernel.UUID, 0, len(*newOrder.ProductIds))
		for _, raw := range *newOrder.ProductIds {
			id, idErr := kernel.UUIDFromBytes(raw[:])
			if idErr != nil {
				return ctx.JSON(http.StatusUnprocessableEntity, validationErrors(
					errs.NewValueIsInvalidErrorWithCause("product id", idErr)))
			}
			productIDs = append(productIDs, id)
		}
	}

	cmd, err := commands.NewCreateOrderCommand(orderID, customerID, productIDs)
	if err != nil {
		return ctx.JSON(http.StatusUnprocessableEntity, validationErrors(err))
	}

	if handleErr := s.createOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return ctx.JSON(http.StatusInternalServerError, servers.Error{
			Message: "Failed to create order",
		})
	}

	ctx.Response().Header().Set(echo.HeaderLocation, "/api/v1/orders/"+orderID.String())
	return ctx.JSON(http.StatusCreated, servers.Order{
		Id:         orderID.Bytes(),
		CustomerId: customerID.Bytes(),
		Status:     "pending",
		ProductIds: toServerUUIDs(productIDs),
	})
}

// CreateProduct handles POST /api/v1/products - registers a product with inventory.
func (s *Server) CreateProduct(ctx echo.Context) error {
	var newProduct servers.NewProduct
	if err := ctx.Bind(&newProduct); err != nil {
		return ctx.JSON(http.StatusBadRequest, servers.Error{
			Message: "Invalid request body",
		})
	}

	productID := kernel.NewUUID()

	cmd, err := commands.NewCreateProductCommand(productID, newProduct.Inventory)
	if err != nil {
		return ctx.JSON(http.StatusUnprocessableEntity, validationErrors(err))
	}

	if handleErr := s.createProductHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return ctx.JSON(http.StatusInternalServerError, servers.Error{
			Message: "Failed to create product",
		})
	}

	ctx.Response().Header().Set(echo.HeaderLocation, "/api/v1/products/"+productID.String())
	return ctx.JSON(http.StatusCreated, servers.Product{
		Id:        productID.Bytes(),
		Inventory: newProduct.Inventory,
	})
}

// ShipOrder handles POST /api/v1/orders/:orderId/ship - runs the shipping workflow.
// Success returns 200 with the updated order; every workflow failure returns
// the generic 422 message.
func (s *Server) ShipOrder(ctx echo.Context, orderId openapi_types.UUID) error {
	orderID, err := kernel.UUIDFromBytes(orderId[:])
	if err != nil {
		return s.orderNotFound(ctx)
	}

	cmd, err := commands.NewShipOrderCommand(orderID)
	if err != nil {
		return s.orderNotFound(ctx)
	}

	err = s.shipOrderHandler.Handle(ctx.Request().Context(), cmd)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return s.orderNotFound(ctx)
	}
	if err != nil {
		return ctx.JSON(http.StatusUnprocessableEntity, servers.Error{
			Message: shipFailureMessage,
		})
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return s.orderNotFound(ctx)
	}

	o, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, servers.Error{
			Message: "Failed to retrieve order",
		})
	}

	return ctx.JSON(http.StatusOK, toServerOrder(o))
}

func (s *Server) orderNotFound(ctx echo.Context) error {
	return ctx.JSON(http.StatusNotFound, servers.Error{
		Message: "Order not found",
	})
}

// toServerOrder maps a query response to the wire representation.
func toServerOrder(o queries.OrderResponse) servers.Order {
	return servers.Order{
		Id:         o.ID.Bytes(),
		CustomerId: o.CustomerID.Bytes(),
		Status:     o.Status.String(),
		ProductIds: toServerUUIDs(o.ProductIDs),
	}
}

func toServerUUIDs(ids []kernel.UUID) []openapi_types.UUID {
	out := make([]openapi_types.UUID, len(ids))
	for i, id := range ids {
		out[i] = id.Bytes()
	}
	return out
}

// validationErrors maps a domain validation error to the field-level payload
// returned on 422 responses.
func validationErrors(err error) servers.ValidationErrors {
	var param string

	var required *errs.ValueIsRequiredError
	var invalid *errs.ValueIsInvalidError
	switch {
	case errors.As(err, &required):
		param = required.ParamName
	case errors.As(err, &invalid):
		param = invalid.ParamName
	}

	field := "base"
	switch {
	case strings.Contains(param, "customer"):
		field = "customer_id"
	case strings.Contains(param, "product"):
		field = "product_ids"
	case strings.Contains(param, "inventory"):
		field = "inventory"
	case strings.Contains(param, "status"):
		field = "status"
	}

	return servers.ValidationErrors{
		Errors: map[string][]string{field: {err.Error()}},
	}
}
