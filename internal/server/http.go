package server

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"InvestTracker/internal/chart"
	"InvestTracker/internal/client"
	"InvestTracker/internal/collector"
	"InvestTracker/internal/model"
	"InvestTracker/internal/networth"
)

// Handlers serves performance, charts and net worth over HTTP.
type Handlers struct {
	Collector   *collector.Collector
	Charts      *chart.Renderer
	NetWorth    func(ctx context.Context) (networth.Summary, error)
	ChartWindow model.LookbackWindow
}

func NewHTTPMux(h *Handlers) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	mux.HandleFunc("GET /api/tickers/{ref}/performance", h.performance)
	mux.HandleFunc("GET /api/tickers/{ref}/chart.png", h.chart)
	mux.HandleFunc("GET /api/networth", h.networth)
	return mux
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func ListenAndServe(ctx context.Context, addr string, handler http.Handler) error {
	srv := &http.Server{Addr: addr, Handler: handler, ReadHeaderTimeout: 10 * time.Second}
	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	log.Printf("[INFO] http server listening on %s", addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		log.Println("[INFO] http server stopped")
		return nil
	}
}

type performanceResponse struct {
	Ticker    model.Ticker              `json:"ticker"`
	Current   *model.PricePoint         `json:"current"`
	Results   []model.PerformanceResult `json:"results"`
	Series    []model.PricePoint        `json:"series"`
	FetchedAt time.Time                 `json:"fetched_at"`
}

func (h *Handlers) performance(w http.ResponseWriter, r *http.Request) {
	tp, err := h.Collector.Collect(r.Context(), r.PathValue("ref"))
	if err != nil {
		writeError(w, err)
		return
	}
	resp := performanceResponse{
		Ticker:    tp.Ticker,
		Results:   tp.Results,
		Series:    tp.Series,
		FetchedAt: tp.FetchedAt,
	}
	if cur, ok := tp.Current(); ok {
		resp.Current = &cur
	}
	if resp.Series == nil {
		resp.Series = []model.PricePoint{}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handlers) chart(w http.ResponseWriter, r *http.Request) {
	window := h.ChartWindow
	if v := r.URL.Query().Get("window"); v != "" {
		if v == "ALL" || v == "all" {
			window = model.LookbackWindow{}
		} else {
			lw, ok := model.WindowByLabel(v)
			if !ok {
				writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unknown window " + v})
				return
			}
			window = lw
		}
	}
	tp, err := h.Collector.Collect(r.Context(), r.PathValue("ref"))
	if err != nil {
		writeError(w, err)
		return
	}
	png, err := h.Charts.Render(tp.Ticker.TickerSymbol, tp.Series, window)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "max-age=60")
	w.Write(png)
}

func (h *Handlers) networth(w http.ResponseWriter, r *http.Request) {
	if h.NetWorth == nil {
		writeJSON(w, http.StatusNotImplemented, map[string]string{"error": "net worth is not configured"})
		return
	}
	s, err := h.NetWorth(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

// statusFor maps a failure to the HTTP status returned to callers.
func statusFor(err error) int {
	switch {
	case errors.Is(err, collector.ErrTickerNotFound), errors.Is(err, chart.ErrNoData):
		return http.StatusNotFound
	}
	switch client.Classify(err) {
	case client.KindNotFound:
		return http.StatusNotFound
	case client.KindTimeout:
		return http.StatusGatewayTimeout
	case client.KindUnknown:
		return http.StatusInternalServerError
	default:
		return http.StatusBadGateway
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	msg := client.UserMessage(err)
	if client.Classify(err) == client.KindUnknown {
		msg = err.Error()
	}
	if status >= 500 {
		log.Printf("[ERROR] %v", err)
	}
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[WARN] encode response: %v", err)
	}
}
