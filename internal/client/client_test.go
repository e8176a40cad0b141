package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"InvestTracker/internal/date"
	"InvestTracker/internal/model"
)

func TestTickerPrices_ListByTicker(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/ticker-prices/ticker/7" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		w.Write([]byte(`[
			{"price_id":1,"ticker_id":7,"date":"2023-01-02","price":110.5,"created_at":"2023-01-02T10:00:00","updated_at":"2023-01-02T10:00:00"},
			{"price_id":2,"ticker_id":7,"date":"2023-01-01","price":100,"created_at":"","updated_at":""}
		]`))
	}))
	defer srv.Close()

	c := New(srv.URL, 5*time.Second, "")
	prices, err := c.TickerPrices.ListByTicker(context.Background(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(prices) != 2 {
		t.Fatalf("expected 2 prices, got %d", len(prices))
	}
	if prices[0].Date != date.New(2023, 1, 2) || prices[0].Price != 110.5 {
		t.Errorf("unexpected first price: %+v", prices[0])
	}
}

func TestResource_CRUD(t *testing.T) {
	var gotMethod, gotPath string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		gotBody = nil
		if r.Body != nil && r.ContentLength > 0 {
			json.NewDecoder(r.Body).Decode(&gotBody)
		}
		switch r.Method {
		case http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
		case http.MethodPost:
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"account_id":3,"account_name":"Brokerage"}`))
		default:
			w.Write([]byte(`{"account_id":3,"account_name":"Brokerage"}`))
		}
	}))
	defer srv.Close()

	c := New(srv.URL+"/", 5*time.Second, "")
	ctx := context.Background()

	acc, err := c.Accounts.Create(ctx, model.AccountCreate{AccountName: "Brokerage"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if gotMethod != http.MethodPost || gotPath != "/accounts" || gotBody["account_name"] != "Brokerage" {
		t.Errorf("create sent %s %s %v", gotMethod, gotPath, gotBody)
	}
	if acc.AccountID != 3 {
		t.Errorf("expected id 3, got %d", acc.AccountID)
	}

	name := "Retirement"
	if _, err := c.Accounts.Update(ctx, 3, model.AccountUpdate{AccountName: &name}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if gotMethod != http.MethodPut || gotPath != "/accounts/3" {
		t.Errorf("update sent %s %s", gotMethod, gotPath)
	}
	if _, ok := gotBody["description"]; ok {
		t.Error("unset update fields must be omitted")
	}

	if _, err := c.Accounts.Get(ctx, 3); err != nil || gotPath != "/accounts/3" {
		t.Errorf("get: %v, path %s", err, gotPath)
	}
	if err := c.Accounts.Delete(ctx, 3); err != nil || gotMethod != http.MethodDelete {
		t.Errorf("delete: %v, method %s", err, gotMethod)
	}
}

func TestBackupRestore(t *testing.T) {
	var gotPath, gotDir string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotDir = r.URL.Query().Get("backup_dir")
		w.Write([]byte(`{"status":"ok"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second, "")
	if err := c.Backup(context.Background(), ""); err != nil {
		t.Fatalf("backup: %v", err)
	}
	if gotPath != "/backup/backup" || gotDir != DefaultBackupDir {
		t.Errorf("backup sent %s dir=%q", gotPath, gotDir)
	}
	if err := c.Restore(context.Background(), "/srv/backups"); err != nil {
		t.Fatalf("restore: %v", err)
	}
	if gotPath != "/backup/restore" || gotDir != "/srv/backups" {
		t.Errorf("restore sent %s dir=%q", gotPath, gotDir)
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		status int
		want   Kind
	}{
		{http.StatusNotFound, KindNotFound},
		{http.StatusInternalServerError, KindServer},
		{http.StatusBadGateway, KindServer},
		{http.StatusGatewayTimeout, KindTimeout},
		{http.StatusUnprocessableEntity, KindRequest},
	}
	for _, tt := range tests {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", tt.status)
		}))
		c := New(srv.URL, time.Second, "")
		_, err := c.Tickers.List(context.Background())
		srv.Close()

		var apiErr *APIError
		if !errors.As(err, &apiErr) || apiErr.StatusCode != tt.status {
			t.Errorf("status %d: expected APIError, got %v", tt.status, err)
			continue
		}
		if got := Classify(err); got != tt.want {
			t.Errorf("status %d: expected %v, got %v", tt.status, tt.want, got)
		}
	}
}

func TestClassify_NetworkAndTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := New(url, time.Second, "").Tickers.List(context.Background())
	if got := Classify(err); got != KindNetwork {
		t.Errorf("closed server: expected network, got %v (%v)", got, err)
	}

	slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer slow.Close()
	_, err = New(slow.URL, 20*time.Millisecond, "").Tickers.List(context.Background())
	if got := Classify(err); got != KindTimeout {
		t.Errorf("slow server: expected timeout, got %v (%v)", got, err)
	}
	if UserMessage(err) == "" {
		t.Error("expected a user message")
	}
}
