//go:build !integration

package rest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"devMart/business/orders"
	"devMart/domain"
	"devMart/pkg/apperr"

	"github.com/labstack/echo/v4"
)

type stubOrdersService struct {
	createFn func(ctx context.Context, userID uint, items []orders.OrderItemInput) (domain.Order, error)
	cancelFn func(ctx context.Context, orderID uint64, userID uint) error
	statusFn func(ctx context.Context, orderID uint64, status string) (domain.Order, error)
	getFn    func(ctx context.Context, orderID uint64, userID uint) (domain.Order, error)
	listFn   func(ctx context.Context, userID uint) ([]domain.Order, error)
}

func (s *stubOrdersService) CreateOrder(ctx context.Context, userID uint, items []orders.OrderItemInput) (domain.Order, error) {
	return s.createFn(ctx, userID, items)
}

func (s *stubOrdersService) CancelOrder(ctx context.Context, orderID uint64, userID uint) error {
	return s.cancelFn(ctx, orderID, userID)
}

func (s *stubOrdersService) UpdateOrderStatus(ctx context.Context, orderID uint64, status string) (domain.Order, error) {
	return s.statusFn(ctx, orderID, status)
}

func (s *stubOrdersService) GetOrder(ctx context.Context, orderID uint64, userID uint) (domain.Order, error) {
	return s.getFn(ctx, orderID, userID)
}

func (s *stubOrdersService) GetUserOrders(ctx context.Context, userID uint) ([]domain.Order, error) {
	return s.listFn(ctx, userID)
}

func newOrdersContext(method, target, body string, userID uint) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	c := e.NewContext(req, rec)
	c.Set("user_id", userID)

	return c, rec
}

func TestCreateOrderHandlerSuccess(t *testing.T) {
	var gotUserID uint
	svc := &stubOrdersService{
		createFn: func(ctx context.Context, userID uint, items []orders.OrderItemInput) (domain.Order, error) {
			gotUserID = userID
			return domain.Order{ID: 1, UserID: userID, Total: 30.00, Status: domain.StatusPending}, nil
		},
	}
	handler := NewOrdersHandler(svc)

	c, rec := newOrdersContext(http.MethodPost, "/api/v1/orders",
		`{"items":[{"product_id":1,"quantity":3}]}`, 7)

	if err := handler.CreateOrder(c); err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusCreated)
	}
	if gotUserID != 7 {
		t.Errorf("userID = %d, want 7", gotUserID)
	}
}

func TestCreateOrderHandlerRejectsEmptyItems(t *testing.T) {
	svc := &stubOrdersService{
		createFn: func(ctx context.Context, userID uint, items []orders.OrderItemInput) (domain.Order, error) {
			t.Fatal("service must not be called for an invalid payload")
			return domain.Order{}, nil
		},
	}
	handler := NewOrdersHandler(svc)

	c, rec := newOrdersContext(http.MethodPost, "/api/v1/orders", `{"items":[]}`, 7)

	if err := handler.CreateOrder(c); err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestCreateOrderHandlerConflict(t *testing.T) {
	svc := &stubOrdersService{
		createFn: func(ctx context.Context, userID uint, items []orders.OrderItemInput) (domain.Order, error) {
			return domain.Order{}, apperr.Conflictf("insufficient stock for product %d", 1)
		},
	}
	handler := NewOrdersHandler(svc)

	c, rec := newOrdersContext(http.MethodPost, "/api/v1/orders",
		`{"items":[{"product_id":1,"quantity":99}]}`, 7)

	if err := handler.CreateOrder(c); err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	if rec.Code != http.StatusConflict {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusConflict)
	}
}

func TestCancelOrderHandler(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"success", nil, http.StatusOK},
		{"not found", apperr.NotFoundf("order with id %d not found", 5), http.StatusNotFound},
		{"wrong owner", apperr.Permission("order does not belong to user"), http.StatusForbidden},
		{"not pending", apperr.Conflictf("cannot cancel an order in status %q", domain.StatusShipped), http.StatusConflict},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &stubOrdersService{
				cancelFn: func(ctx context.Context, orderID uint64, userID uint) error {
					return tc.err
				},
			}
			handler := NewOrdersHandler(svc)

			c, rec := newOrdersContext(http.MethodDelete, "/api/v1/orders/5", "", 7)
			c.SetParamNames("id")
			c.SetParamValues("5")

			if err := handler.CancelOrder(c); err != nil {
				t.Fatalf("CancelOrder: %v", err)
			}

			if rec.Code != tc.wantCode {
				t.Errorf("status = %d, want %d", rec.Code, tc.wantCode)
			}
		})
	}
}

func TestCancelOrderHandlerBadID(t *testing.T) {
	handler := NewOrdersHandler(&stubOrdersService{})

	c, rec := newOrdersContext(http.MethodDelete, "/api/v1/orders/abc", "", 7)
	c.SetParamNames("id")
	c.SetParamValues("abc")

	if err := handler.CancelOrder(c); err != nil {
		t.Fatalf("CancelOrder: %v", err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestUpdateOrderStatusHandler(t *testing.T) {
	svc := &stubOrdersService{
		statusFn: func(ctx context.Context, orderID uint64, status string) (domain.Order, error) {
			if status != domain.StatusShipped {
				t.Errorf("status = %q, want %q", status, domain.StatusShipped)
			}
			return domain.Order{ID: orderID, Status: status}, nil
		},
	}
	handler := NewOrdersHandler(svc)

	c, rec := newOrdersContext(http.MethodPut, "/api/v1/orders/5/status",
		`{"status":"shipped"}`, 7)
	c.SetParamNames("id")
	c.SetParamValues("5")

	if err := handler.UpdateOrderStatus(c); err != nil {
		t.Fatalf("UpdateOrderStatus: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestUpdateOrderStatusHandlerInvalidEnum(t *testing.T) {
	svc := &stubOrdersService{
		statusFn: func(ctx context.Context, orderID uint64, status string) (domain.Order, error) {
			return domain.Order{}, apperr.Validationf("invalid status %q", status)
		},
	}
	handler := NewOrdersHandler(svc)

	c, rec := newOrdersContext(http.MethodPut, "/api/v1/orders/5/status",
		`{"status":"refunded"}`, 7)
	c.SetParamNames("id")
	c.SetParamValues("5")

	if err := handler.UpdateOrderStatus(c); err != nil {
		t.Fatalf("UpdateOrderStatus: %v", err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestGetOrderByIDHandlerForbidden(t *testing.T) {
	svc := &stubOrdersService{
		getFn: func(ctx context.Context, orderID uint64, userID uint) (domain.Order, error) {
			return domain.Order{}, apperr.Permission("order does not belong to user")
		},
	}
	handler := NewOrdersHandler(svc)

	c, rec := newOrdersContext(http.MethodGet, "/api/v1/orders/5", "", 7)
	c.SetParamNames("id")
	c.SetParamValues("5")

	if err := handler.GetOrderByID(c); err != nil {
		t.Fatalf("GetOrderByID: %v", err)
	}

	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusForbidden)
	}
}
