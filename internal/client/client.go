package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"InvestTracker/internal/model"
)

// DefaultBackupDir is the backend-side directory used by Backup and Restore.
const DefaultBackupDir = "../data"

// Client talks to the investment tracker REST backend.
type Client struct {
	BaseURL string
	HTTP    *http.Client

	Accounts          *Resource[model.Account, model.AccountCreate, model.AccountUpdate]
	Tickers           *Resource[model.Ticker, model.TickerCreate, model.TickerUpdate]
	TickerPrices      *TickerPrices
	Holdings          *Resource[model.AccountHolding, model.AccountHoldingCreate, model.AccountHoldingUpdate]
	Properties        *Resource[model.Property, model.PropertyCreate, model.PropertyUpdate]
	PropertyValues    *Resource[model.PropertyValue, model.PropertyValueCreate, model.PropertyValueUpdate]
	PropertyMortgages *Resource[model.PropertyMortgage, model.PropertyMortgageCreate, model.PropertyMortgageUpdate]
}

// New creates a client with optional proxy support.
func New(baseURL string, timeout time.Duration, proxyURL string) *Client {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return NewWithHTTPClient(baseURL, &http.Client{Timeout: timeout, Transport: transport})
}

// NewWithHTTPClient creates a client on top of an existing http.Client.
func NewWithHTTPClient(baseURL string, hc *http.Client) *Client {
	c := &Client{BaseURL: strings.TrimRight(baseURL, "/"), HTTP: hc}
	c.Accounts = newResource[model.Account, model.AccountCreate, model.AccountUpdate](c, "/accounts")
	c.Tickers = newResource[model.Ticker, model.TickerCreate, model.TickerUpdate](c, "/tickers")
	c.TickerPrices = &TickerPrices{newResource[model.TickerPrice, model.TickerPriceCreate, model.TickerPriceUpdate](c, "/ticker-prices")}
	c.Holdings = newResource[model.AccountHolding, model.AccountHoldingCreate, model.AccountHoldingUpdate](c, "/holdings")
	c.Properties = newResource[model.Property, model.PropertyCreate, model.PropertyUpdate](c, "/properties")
	c.PropertyValues = newResource[model.PropertyValue, model.PropertyValueCreate, model.PropertyValueUpdate](c, "/property-values")
	c.PropertyMortgages = newResource[model.PropertyMortgage, model.PropertyMortgageCreate, model.PropertyMortgageUpdate](c, "/property-mortgages")
	return c
}

// Backup asks the backend to dump its data into dir.
func (c *Client) Backup(ctx context.Context, dir string) error {
	return c.backupCall(ctx, "/backup/backup", dir)
}

// Restore asks the backend to reload its data from dir.
func (c *Client) Restore(ctx context.Context, dir string) error {
	return c.backupCall(ctx, "/backup/restore", dir)
}

func (c *Client) backupCall(ctx context.Context, path, dir string) error {
	if dir == "" {
		dir = DefaultBackupDir
	}
	q := url.Values{"backup_dir": {dir}}
	return c.do(ctx, http.MethodPost, path+"?"+q.Encode(), nil, nil)
}

// do sends a JSON request and decodes a JSON response into out when out is non-nil.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &APIError{Method: method, Path: path, StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(b))}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}
