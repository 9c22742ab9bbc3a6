package tradesim

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// Server exposes the simulator over a small JSON HTTP API. It is a thin
// collaborator: all invariants live in the Engine and the Ledger.
type Server struct {
	cfg       Config
	engine    *Engine
	provider  *YahooProvider
	history   *History
	snapshots *SnapshotStore
	log       *slog.Logger
}

// NewServer wires the HTTP layer to its collaborators.
func NewServer(cfg Config, engine *Engine, provider *YahooProvider, history *History, snapshots *SnapshotStore, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{
		cfg:       cfg,
		engine:    engine,
		provider:  provider,
		history:   history,
		snapshots: snapshots,
		log:       log,
	}
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.HandleFunc("GET /api/quote/{ticker}", s.handleQuote)
	mux.HandleFunc("GET /api/candles/{ticker}", s.handleCandles)
	mux.HandleFunc("GET /api/portfolio", s.handlePortfolio)
	mux.HandleFunc("POST /api/trade", s.handleTrade)
	mux.HandleFunc("GET /api/pl", s.handlePL)
	mux.HandleFunc("GET /api/history", s.handleHistory)
	mux.HandleFunc("GET /api/snapshots", s.handleSnapshots)
	return mux
}

// ListenAndServe blocks serving the API on the configured address.
func (s *Server) ListenAndServe() error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Server.Host, s.cfg.Server.Port)
	s.log.Info("serving HTTP API", "addr", addr)
	return http.ListenAndServe(addr, s.Handler())
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error("could not encode response", "err", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}

// tradeStatus maps an engine failure to an HTTP status: input errors are the
// caller's fault, domain rejections are conflicts with the account state, and
// pricing failures are an upstream problem.
func tradeStatus(err error) int {
	switch {
	case errors.Is(err, ErrInvalidTicker),
		errors.Is(err, ErrInvalidQuantity),
		errors.Is(err, ErrInvalidPrice):
		return http.StatusBadRequest
	case errors.Is(err, ErrInsufficientFunds),
		errors.Is(err, ErrInsufficientHoldings),
		errors.Is(err, ErrMarketClosed):
		return http.StatusConflict
	case errors.Is(err, ErrPriceFetchFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleQuote(w http.ResponseWriter, r *http.Request) {
	ticker, err := ValidateTicker(r.PathValue("ticker"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	q, err := s.provider.Quote(r.Context(), ticker)
	if err != nil {
		s.writeError(w, http.StatusBadGateway, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"ticker":       q.Ticker,
		"price":        q.Price,
		"currency":     q.Price.Currency(),
		"name":         q.Name,
		"market_state": q.MarketState,
		"timestamp":    q.Time.Format(time.RFC3339),
	})
}

func (s *Server) handleCandles(w http.ResponseWriter, r *http.Request) {
	ticker, err := ValidateTicker(r.PathValue("ticker"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	rng := r.URL.Query().Get("range")
	if rng == "" {
		rng = "1mo"
	}

	candles, err := s.provider.Candles(r.Context(), ticker, rng)
	if err != nil {
		s.writeError(w, http.StatusBadGateway, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"ticker": ticker, "candles": candles})
}

func (s *Server) handlePortfolio(w http.ResponseWriter, r *http.Request) {
	ledger := s.engine.Ledger()

	prices := make(map[string]Money)
	for ticker := range ledger.Tickers() {
		price, err := s.provider.LatestPrice(r.Context(), ticker)
		if err != nil {
			s.log.Warn("price unavailable for portfolio valuation", "ticker", ticker, "err", err)
			continue
		}
		prices[ticker] = price
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"cash":        ledger.Cash(),
		"currency":    ledger.Currency(),
		"holdings":    ledger.Holdings(),
		"prices":      prices,
		"total_value": ledger.TotalValue(prices),
	})
}

func (s *Server) handleTrade(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Action   string      `json:"action"`
		Ticker   string      `json:"ticker"`
		Quantity json.Number `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}

	side, err := ParseSide(req.Action)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("action must be BUY or SELL: %w", err))
		return
	}
	qty, err := ParseQuantity(req.Quantity.String())
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	var tx *Transaction
	if side == SideBuy {
		tx, err = s.engine.Buy(r.Context(), req.Ticker, qty)
	} else {
		tx, err = s.engine.Sell(r.Context(), req.Ticker, qty)
	}
	if err != nil {
		s.writeError(w, tradeStatus(err), err)
		return
	}

	// The trade is committed; a ledger save failure is reported, not fatal.
	saved := true
	if err := SaveLedger(s.cfg.LedgerPath(), s.engine.Ledger()); err != nil {
		s.log.Error("could not save ledger after trade", "err", err)
		saved = false
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"transaction": tx,
		"cash":        s.engine.Ledger().Cash(),
		"holdings":    s.engine.Ledger().Holdings(),
		"saved":       saved,
	})
}

func (s *Server) handlePL(w http.ResponseWriter, r *http.Request) {
	report := ComputePL(r.Context(), s.history.Load(), nil, s.provider, s.log)
	s.writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	records := s.history.Load()
	if records == nil {
		records = []Transaction{}
	}
	s.writeJSON(w, http.StatusOK, records)
}

func (s *Server) handleSnapshots(w http.ResponseWriter, r *http.Request) {
	rows, err := s.snapshots.ReadAll()
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}

	// keep the wire layout identical to the CSV columns.
	out := make([]map[string]any, 0, len(rows))
	for _, snap := range rows {
		out = append(out, map[string]any{
			"timestamp":      snap.Timestamp.Format(time.RFC3339),
			"event":          snap.Event,
			"ticker":         snap.Ticker,
			"quantity":       snap.Quantity,
			"price":          snap.Price,
			"cash":           snap.Cash,
			"holdings_value": snap.HoldingsValue,
			"total_value":    snap.TotalValue,
		})
	}
	s.writeJSON(w, http.StatusOK, out)
}
