package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	CyclesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "signal_cycles_total", Help: "Evaluation cycles completed"},
	)
	CycleErrorsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "signal_cycle_errors_total", Help: "Evaluation cycles aborted with an error"},
	)
	SignalsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "signals_total", Help: "Signals emitted"},
		[]string{"ticker", "action"},
	)
	TickerFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "signal_ticker_failures_total", Help: "Per-ticker evaluation failures"},
		[]string{"ticker"},
	)
)

func init() {
	prometheus.MustRegister(CyclesTotal, CycleErrorsTotal, SignalsTotal, TickerFailuresTotal)
}

func Serve(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() { _ = srv.ListenAndServe() }()
	return srv
}
