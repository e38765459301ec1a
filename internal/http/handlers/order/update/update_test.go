package update

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/repair-orders/internal/models"
	orderservice "github.com/magabrotheeeer/repair-orders/internal/services/order"
)

// MockService реализует интерфейс update.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Update(ctx context.Context, id int, upd models.OrderUpdate) error {
	args := m.Called(ctx, id, upd)
	return args.Error(0)
}

func TestUpdateHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))

	tests := []struct {
		name           string
		idParam        string
		requestBody    string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:        "успешное обновление статуса",
			idParam:     "12",
			requestBody: `{"status":"Kész"}`,
			setupMock: func(m *MockService) {
				m.On("Update", mock.Anything, 12, mock.AnythingOfType("models.OrderUpdate")).
					Return(nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"order_id":12`,
		},
		{
			name:        "обновление всех трех полей",
			idParam:     "12",
			requestBody: `{"status":"Kész","technician":"Nagy Péter","invoice":"SZ-2026-014"}`,
			setupMock: func(m *MockService) {
				m.On("Update", mock.Anything, 12, mock.AnythingOfType("models.OrderUpdate")).
					Return(nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"order_id":12`,
		},
		{
			name:           "некорректный id в url",
			idParam:        "abc",
			requestBody:    `{"status":"Kész"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error":"invalid id"`,
		},
		{
			name:           "неизвестное поле отклоняется",
			idParam:        "12",
			requestBody:    `{"customer_name":"Valaki Más"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `"error":"only status, technician and invoice can be updated"`,
		},
		{
			name:        "пустое тело без изменяемых полей",
			idParam:     "12",
			requestBody: `{}`,
			setupMock: func(m *MockService) {
				m.On("Update", mock.Anything, 12, mock.AnythingOfType("models.OrderUpdate")).
					Return(orderservice.ErrEmptyUpdate)
			},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `"error":"no updatable fields in request"`,
		},
		{
			name:        "заказ не найден",
			idParam:     "99",
			requestBody: `{"status":"Kész"}`,
			setupMock: func(m *MockService) {
				m.On("Update", mock.Anything, 99, mock.AnythingOfType("models.OrderUpdate")).
					Return(orderservice.ErrOrderNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `"error":"order not found"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPut, "/orders/"+tt.idParam, bytes.NewReader([]byte(tt.requestBody)))
			req.Header.Set("Content-Type", "application/json")
			req = req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, "req-id"))

			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tt.idParam)
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)

			mockService.AssertExpectations(t)
		})
	}
}
