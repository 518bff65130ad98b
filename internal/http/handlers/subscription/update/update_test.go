package update

import (
	"context"
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

func (m *MockService) Archive(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockService) Unarchive(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}

func serve(h http.Handler, id string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/subscriptions/"+id+"/archive", nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestArchiveHandler(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := new(MockService)
	svc.On("Archive", mock.Anything, 2).Return(nil)
	svc.On("Archive", mock.Anything, 8).Return(fmt.Errorf("wrap: %w", storage.ErrNotFound))

	w := serve(NewArchive(log, svc), "2")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"is_active":false`)

	w = serve(NewArchive(log, svc), "8")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = serve(NewArchive(log, svc), "two")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	svc.AssertExpectations(t)
	svc.AssertNotCalled(t, "Unarchive", mock.Anything, mock.Anything)
}

func TestUnarchiveHandler(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := new(MockService)
	svc.On("Unarchive", mock.Anything, 2).Return(nil)

	w := serve(NewUnarchive(log, svc), "2")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"is_active":true`)

	svc.AssertExpectations(t)
	svc.AssertNotCalled(t, "Archive", mock.Anything, mock.Anything)
}
