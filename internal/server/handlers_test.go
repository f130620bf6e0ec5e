package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/AbdulAhadRauf/best-train-finder/internal/api/tbs"
	"github.com/AbdulAhadRauf/best-train-finder/internal/search"
)

type stubSource struct {
	payload *tbs.AvailabilityResponse
	err     error
}

func (s *stubSource) Fetch(ctx context.Context, from, to, date string) (*tbs.AvailabilityResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.payload, nil
}

func testRouter(t *testing.T, src search.Source) http.Handler {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return NewRouter(search.NewSearcher(src, nil, logger), logger)
}

func stubPayload(t *testing.T) *tbs.AvailabilityResponse {
	t.Helper()
	var resp tbs.AvailabilityResponse
	err := json.Unmarshal([]byte(`{
		"train_between_stations": [
			{
				"train_number": "12034",
				"extended_train_name": "Shatabdi Exp",
				"from_sta": "06:00",
				"to_sta": "11:30",
				"duration": "5:30",
				"train_date": "2025-08-15",
				"sa_data": [
					{
						"booking_class": "CC",
						"availibility": "AVAILABLE-0010",
						"seat_availibility": [{"ticket_fare": "450", "cache_text": "just now"}]
					}
				]
			}
		]
	}`), &resp)
	if err != nil {
		t.Fatalf("Failed to build stub payload: %v", err)
	}
	return &resp
}

func TestSearchEndpoint(t *testing.T) {
	router := testRouter(t, &stubSource{payload: stubPayload(t)})

	req := httptest.NewRequest(http.MethodGet,
		"/api/search?from=ndls&to=cnb&date=2025-08-15&classes=cc,3a&sort=cheapest", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp searchResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(resp.Records) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(resp.Records))
	}
	if resp.Records[0].BookingClass != "CC" {
		t.Errorf("Expected CC record, got %s", resp.Records[0].BookingClass)
	}
	if resp.Records[0].DeparturePeriod != "Morning" {
		t.Errorf("Expected Morning period, got %q", resp.Records[0].DeparturePeriod)
	}
	if resp.Summary == nil || resp.Summary.MinFare != 450 {
		t.Errorf("Expected summary with min fare 450, got %v", resp.Summary)
	}
}

func TestSearchEndpointEmptyResult(t *testing.T) {
	router := testRouter(t, &stubSource{payload: &tbs.AvailabilityResponse{}})

	req := httptest.NewRequest(http.MethodGet, "/api/search?from=NDLS&to=CNB&date=2025-08-15", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var resp searchResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(resp.Records) != 0 {
		t.Errorf("Expected no records, got %d", len(resp.Records))
	}
	if resp.Message == "" {
		t.Error("Expected an explanatory message for an empty result")
	}
}

func TestSearchEndpointBadRequest(t *testing.T) {
	router := testRouter(t, &stubSource{payload: &tbs.AvailabilityResponse{}})

	tests := []struct {
		name string
		url  string
	}{
		{"missing params", "/api/search"},
		{"unknown class", "/api/search?from=NDLS&to=CNB&date=2025-08-15&classes=XX"},
		{"bad sort", "/api/search?from=NDLS&to=CNB&date=2025-08-15&sort=wat"},
		{"bad window", "/api/search?from=NDLS&to=CNB&date=2025-08-15&time_window=dawn"},
		{"bad duration", "/api/search?from=NDLS&to=CNB&date=2025-08-15&max_duration_hours=lots"},
		{"bad boolean", "/api/search?from=NDLS&to=CNB&date=2025-08-15&include_nearby_dates=perhaps"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("Expected 400, got %d", rec.Code)
			}
		})
	}
}

func TestSearchEndpointFetchFailure(t *testing.T) {
	src := &stubSource{err: fmt.Errorf("%w: upstream down", tbs.ErrFetchFailed)}
	router := testRouter(t, src)

	req := httptest.NewRequest(http.MethodGet, "/api/search?from=NDLS&to=CNB&date=2025-08-15", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("Expected 502, got %d", rec.Code)
	}

	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode error response: %v", err)
	}
	if resp.Error == "" {
		t.Error("Expected a human-readable reason in the error response")
	}
}

func TestHealthEndpoint(t *testing.T) {
	router := testRouter(t, &stubSource{payload: &tbs.AvailabilityResponse{}})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("Expected 200, got %d", rec.Code)
	}
}
