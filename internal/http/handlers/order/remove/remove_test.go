package remove

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	orderservice "github.com/magabrotheeeer/repair-orders/internal/services/order"
)

// MockService реализует интерфейс remove.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Remove(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestRemoveHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))

	tests := []struct {
		name           string
		idParam        string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:    "успешное удаление заказа",
			idParam: "12",
			setupMock: func(m *MockService) {
				m.On("Remove", mock.Anything, 12).Return(nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"deleted_id":12`,
		},
		{
			name:           "некорректный id в url",
			idParam:        "abc",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error":"invalid id"`,
		},
		{
			name:    "заказ не найден",
			idParam: "99",
			setupMock: func(m *MockService) {
				m.On("Remove", mock.Anything, 99).Return(orderservice.ErrOrderNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `"error":"order not found"`,
		},
		{
			name:    "ошибка сервиса",
			idParam: "12",
			setupMock: func(m *MockService) {
				m.On("Remove", mock.Anything, 12).Return(errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"error":"could not delete order"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodDelete, "/orders/"+tt.idParam, nil)
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
