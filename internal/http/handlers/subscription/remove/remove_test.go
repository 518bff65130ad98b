package remove

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/subscription-tracker/internal/storage"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Remove(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}

func TestRemoveHandler(t *testing.T) {
	tests := []struct {
		name           string
		id             string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешное удаление",
			id:   "3",
			setupMock: func(m *MockService) {
				m.On("Remove", mock.Anything, 3).Return(nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"deleted_id":3`,
		},
		{
			name:           "некорректный id",
			id:             "x",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "failed to decode id from url",
		},
		{
			name: "подписка не найдена",
			id:   "9",
			setupMock: func(m *MockService) {
				m.On("Remove", mock.Anything, 9).Return(fmt.Errorf("subscription.Remove: %w", storage.ErrNotFound))
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   "subscription not found",
		},
		{
			name: "ошибка хранилища",
			id:   "4",
			setupMock: func(m *MockService) {
				m.On("Remove", mock.Anything, 4).Return(errors.New("locked"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   "could not remove subscription",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			tt.setupMock(svc)

			req := httptest.NewRequest(http.MethodDelete, "/subscriptions/"+tt.id, nil)
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tt.id)
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
			w := httptest.NewRecorder()

			New(slog.New(slog.NewTextHandler(io.Discard, nil)), svc).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
			svc.AssertExpectations(t)
		})
	}
}
