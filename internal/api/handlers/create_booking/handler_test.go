package create_booking

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	createBooking "github.com/lashroom/scheduling-service/internal/usecase/create_booking"
)

type fakeUseCase struct {
	gotReq *createBooking.Request
	resp   *createBooking.Response
	err    error
}

func (f *fakeUseCase) Execute(_ context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	f.gotReq = req
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

type noopLogger struct{}

func (noopLogger) Info(format string, v ...interface{})  {}
func (noopLogger) Warn(format string, v ...interface{})  {}
func (noopLogger) Error(format string, v ...interface{}) {}

func doRequest(t *testing.T, h *Handler, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", bytes.NewReader(raw))
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandle_CreatesBooking(t *testing.T) {
	uc := &fakeUseCase{
		resp: &createBooking.Response{
			ID:           42,
			ServiceID:    1,
			Date:         time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC),
			StartTime:    "10:00",
			EndTime:      "12:00",
			Status:       "pending",
			ServiceName:  "Классическое наращивание",
			ServicePrice: 2500,
			ClientName:   "Анна",
			ClientPhone:  "+79990001122",
		},
	}
	h := NewHandler(uc, noopLogger{})

	rec := doRequest(t, h, CreateBookingRequest{
		ServiceID:   1,
		Date:        "2026-09-14",
		StartTime:   "10:00",
		ClientName:  "Анна",
		ClientPhone: "+79990001122",
	})

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, "2026-09-14", resp.Date)
	assert.Equal(t, "10:00", resp.StartTime)
	assert.Equal(t, "12:00", resp.EndTime)
	assert.Equal(t, "pending", resp.Status)

	require.NotNil(t, uc.gotReq)
	assert.Equal(t, int64(1), uc.gotReq.ServiceID)
	assert.Equal(t, "Анна", uc.gotReq.ClientName)
}

func TestHandle_InvalidDateFormat(t *testing.T) {
	uc := &fakeUseCase{}
	h := NewHandler(uc, noopLogger{})

	rec := doRequest(t, h, CreateBookingRequest{
		ServiceID:   1,
		Date:        "14.09.2026",
		StartTime:   "10:00",
		ClientName:  "Анна",
		ClientPhone: "+79990001122",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, uc.gotReq)
}

func TestHandle_InvalidBody(t *testing.T) {
	h := NewHandler(&fakeUseCase{}, noopLogger{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	h.Handle(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "slot conflict", err: createBooking.ErrSlotConflict, wantStatus: http.StatusConflict},
		{name: "service not found", err: createBooking.ErrServiceNotFound, wantStatus: http.StatusNotFound},
		{name: "service unavailable", err: createBooking.ErrServiceUnavailable, wantStatus: http.StatusConflict},
		{name: "date in past", err: createBooking.ErrInvalidDate, wantStatus: http.StatusBadRequest},
		{name: "date too far", err: createBooking.ErrDateTooFarInFuture, wantStatus: http.StatusBadRequest},
		{name: "too late to book", err: createBooking.ErrTooLateToBook, wantStatus: http.StatusConflict},
		{name: "outside working hours", err: createBooking.ErrOutsideWorkingHours, wantStatus: http.StatusConflict},
		{name: "invalid input", err: createBooking.ErrInvalidInput, wantStatus: http.StatusBadRequest},
		{name: "internal error", err: createBooking.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&fakeUseCase{err: tt.err}, noopLogger{})

			rec := doRequest(t, h, CreateBookingRequest{
				ServiceID:   1,
				Date:        "2026-09-14",
				StartTime:   "10:00",
				ClientName:  "Анна",
				ClientPhone: "+79990001122",
			})

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
