package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter constructs the router with all API endpoints registered.
func NewRouter(svc PoolService) http.Handler {
	h := NewHandler(svc)
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Get("/pool", h.PoolStatusHandler)
	r.Get("/account/{accountId}", h.GetAccountHandler)
	r.Post("/account/{accountId}/deposit", h.DepositHandler)
	r.Post("/account/{accountId}/withdraw", h.WithdrawHandler)

	return r
}
