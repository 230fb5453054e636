package voicenter

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestFetchCDRs_MissingToken(t *testing.T) {
	requested := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requested = true
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.FetchCDRs(context.Background(), "", time.Now().Add(-time.Hour), time.Now())
	if !errors.Is(err, ErrNoAPIToken) {
		t.Fatalf("expected ErrNoAPIToken, got %v", err)
	}
	if requested {
		t.Error("no network call should be made without a token")
	}
}

func TestFetchCDRs_Success(t *testing.T) {
	var gotBody map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Fatalf("failed to decode request body: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"ERROR_NUMBER":      0,
			"ERROR_DESCRIPTION": "",
			"CDR_LIST": []map[string]interface{}{
				{"CallID": "abc-1", "Date": "2025-05-30T10:00:00Z", "CallerNumber": "0501234567", "CdrType": 1, "DialStatus": "ANSWER", "Duration": 42},
			},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	from := time.Date(2025, 5, 30, 9, 0, 0, 0, time.UTC)
	to := time.Date(2025, 5, 30, 11, 0, 0, 0, time.UTC)

	cdrs, err := client.FetchCDRs(context.Background(), "token-1", from, to)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cdrs) != 1 {
		t.Fatalf("got %d CDRs, want 1", len(cdrs))
	}
	if cdrs[0].CallID != "abc-1" || cdrs[0].Duration != 42 {
		t.Errorf("unexpected CDR: %+v", cdrs[0])
	}

	if gotBody["code"] != "token-1" {
		t.Errorf("request code = %v, want token-1", gotBody["code"])
	}
	search := gotBody["search"].(map[string]interface{})
	if search["fromdate"] != "2025-05-30T09:00:00" {
		t.Errorf("fromdate = %v, want 2025-05-30T09:00:00", search["fromdate"])
	}
	if search["todate"] != "2025-05-30T11:00:00" {
		t.Errorf("todate = %v, want 2025-05-30T11:00:00", search["todate"])
	}
	sorts := gotBody["sort"].([]interface{})
	first := sorts[0].(map[string]interface{})
	if first["field"] != "date" || first["order"] != "desc" {
		t.Errorf("sort = %v, want date desc", first)
	}
	if fields, ok := gotBody["fields"].([]interface{}); !ok || len(fields) == 0 {
		t.Error("request should carry the fixed field list")
	}
}

func TestFetchCDRs_VendorError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"ERROR_NUMBER":      401,
			"ERROR_DESCRIPTION": "invalid credentials",
			"CDR_LIST":          []interface{}{},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.FetchCDRs(context.Background(), "bad-token", time.Now().Add(-time.Hour), time.Now())

	var vendorErr *VendorError
	if !errors.As(err, &vendorErr) {
		t.Fatalf("expected *VendorError, got %v", err)
	}
	if vendorErr.Code != 401 || vendorErr.Description != "invalid credentials" {
		t.Errorf("unexpected vendor error: %+v", vendorErr)
	}
}

func TestFetchCDRs_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.FetchCDRs(context.Background(), "token-1", time.Now().Add(-time.Hour), time.Now())

	var transportErr *TransportError
	if !errors.As(err, &transportErr) {
		t.Fatalf("expected *TransportError, got %v", err)
	}
}

func TestFetchCDRs_ConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // shut it down so the dial fails

	client := NewClient(server.URL)
	_, err := client.FetchCDRs(context.Background(), "token-1", time.Now().Add(-time.Hour), time.Now())

	var transportErr *TransportError
	if !errors.As(err, &transportErr) {
		t.Fatalf("expected *TransportError, got %v", err)
	}
}
