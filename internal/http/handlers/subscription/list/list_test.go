package list

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/subscription-tracker/internal/models"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) List(ctx context.Context, activeOnly bool) ([]models.Subscription, error) {
	args := m.Called(ctx, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Subscription), args.Error(1)
}

func TestListHandler(t *testing.T) {
	subs := []models.Subscription{{ID: 1, Name: "Music"}, {ID: 2, Name: "Cloud"}}

	tests := []struct {
		name           string
		url            string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "по умолчанию только активные",
			url:  "/subscriptions",
			setupMock: func(m *MockService) {
				m.On("List", mock.Anything, true).Return(subs, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"list_count":2`,
		},
		{
			name: "все подписки",
			url:  "/subscriptions?active_only=false",
			setupMock: func(m *MockService) {
				m.On("List", mock.Anything, false).Return([]models.Subscription{}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"subscriptions":[]`,
		},
		{
			name:           "некорректный параметр",
			url:            "/subscriptions?active_only=maybe",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "active_only must be a boolean",
		},
		{
			name: "ошибка хранилища",
			url:  "/subscriptions",
			setupMock: func(m *MockService) {
				m.On("List", mock.Anything, true).Return(nil, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"error":"failed to list"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			tt.setupMock(svc)

			w := httptest.NewRecorder()
			New(slog.New(slog.NewTextHandler(io.Discard, nil)), svc).
				ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.url, nil))

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
			svc.AssertExpectations(t)
		})
	}
}
