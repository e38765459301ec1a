package list

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/repair-orders/internal/models"
	orderservice "github.com/magabrotheeeer/repair-orders/internal/services/order"
)

// MockService реализует интерфейс list.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) List(ctx context.Context, page, limit int) ([]*models.Order, models.Pagination, error) {
	args := m.Called(ctx, page, limit)
	orders, _ := args.Get(0).([]*models.Order)
	pagination, _ := args.Get(1).(models.Pagination)
	return orders, pagination, args.Error(2)
}

func TestListHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))

	tests := []struct {
		name           string
		url            string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешный список с параметрами по умолчанию",
			url:  "/orders",
			setupMock: func(m *MockService) {
				m.On("List", mock.Anything, 1, 20).Return(
					[]*models.Order{{ID: 1, CustomerName: "Szabó János", Status: models.DefaultStatus}},
					models.Pagination{Page: 1, Limit: 20, Total: 1, TotalPages: 1, HasNext: false, HasPrev: false},
					nil,
				)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"total_pages":1`,
		},
		{
			name: "вторая страница по 50",
			url:  "/orders?page=2&limit=50",
			setupMock: func(m *MockService) {
				m.On("List", mock.Anything, 2, 50).Return(
					[]*models.Order{},
					models.Pagination{Page: 2, Limit: 50, Total: 60, TotalPages: 2, HasNext: false, HasPrev: true},
					nil,
				)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"has_prev":true`,
		},
		{
			name: "некорректный номер страницы заменяется на первую",
			url:  "/orders?page=abc",
			setupMock: func(m *MockService) {
				m.On("List", mock.Anything, 1, 20).Return(
					[]*models.Order{},
					models.Pagination{Page: 1, Limit: 20},
					nil,
				)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"status":"OK"`,
		},
		{
			name:           "нечисловой limit",
			url:            "/orders?limit=abc",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `"error":"invalid page size"`,
		},
		{
			name: "недопустимый размер страницы",
			url:  "/orders?limit=25",
			setupMock: func(m *MockService) {
				m.On("List", mock.Anything, 1, 25).Return(
					nil, models.Pagination{}, orderservice.ErrInvalidPageSize,
				)
			},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `"error":"invalid page size"`,
		},
		{
			name: "ошибка сервиса",
			url:  "/orders",
			setupMock: func(m *MockService) {
				m.On("List", mock.Anything, 1, 20).Return(
					nil, models.Pagination{}, errors.New("db error"),
				)
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"error":"failed to list orders"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			req = req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, "req-id"))

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)

			mockService.AssertExpectations(t)
		})
	}
}
