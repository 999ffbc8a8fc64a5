package delete_booking

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-ResourceBooking/internal/api/middleware"
	"github.com/m04kA/SMC-ResourceBooking/internal/domain"
	"github.com/m04kA/SMC-ResourceBooking/internal/service/bookings"
	"github.com/m04kA/SMC-ResourceBooking/internal/service/policy"
)

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

type fakeService struct {
	deleted []int64
	err     error
}

func (f *fakeService) Delete(_ context.Context, _ domain.Actor, id int64) error {
	if f.err != nil {
		return f.err
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func serve(svc *fakeService, path string, withActor bool) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/bookings/{bookingId}", NewHandler(svc, noopLogger{}).Handle).Methods(http.MethodDelete)

	req := httptest.NewRequest(http.MethodDelete, path, nil)
	if withActor {
		req = req.WithContext(middleware.WithActor(req.Context(), domain.Actor{UserID: 10, Role: domain.RoleGuest}))
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandle_Deleted(t *testing.T) {
	svc := &fakeService{}

	rec := serve(svc, "/bookings/12", true)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
	assert.Equal(t, []int64{12}, svc.deleted)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		err        error
		withActor  bool
		wantStatus int
	}{
		{name: "bad id", path: "/bookings/0", withActor: true, wantStatus: http.StatusBadRequest},
		{name: "no actor", path: "/bookings/12", wantStatus: http.StatusUnauthorized},
		{name: "not found", path: "/bookings/12", err: bookings.ErrBookingNotFound, withActor: true, wantStatus: http.StatusNotFound},
		{name: "guest deletes approved booking", path: "/bookings/12", err: policy.ErrAccessDenied, withActor: true, wantStatus: http.StatusForbidden},
		{name: "busy", path: "/bookings/12", err: bookings.ErrResourceBusy, withActor: true, wantStatus: http.StatusConflict},
		{name: "internal", path: "/bookings/12", err: errors.New("db down"), withActor: true, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&fakeService{err: tt.err}, tt.path, tt.withActor)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
