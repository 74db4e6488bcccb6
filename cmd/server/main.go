// Command mbel-server is an HTTP surface over the MBEL façade: a /check
// endpoint for diagnostics, a /query endpoint for the Query Engine, and a
// /metrics endpoint for the server's own Prometheus instruments.
package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/LoryBug/mbel/internal/mbellog"
	"github.com/LoryBug/mbel/internal/requestid"
)

var allowedOrigins = []string{
	"http://localhost:5173",
}

func corsMiddleware(next http.Handler) http.Handler {
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = struct{}{}
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if _, ok := allowed[origin]; ok {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Request-Id")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func requestIDMiddleware(log *zap.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-Id")
		if id == "" {
			id = requestid.New()
		}
		w.Header().Set("X-Request-Id", id)
		log.Debug("request", zap.String("request_id", id), zap.String("method", r.Method), zap.String("path", r.URL.Path))
		next.ServeHTTP(w, r)
	})
}

func main() {
	port := flag.Int("port", 8080, "port to listen on")
	verbose := flag.Bool("verbose", false, "enable debug logging")
	flag.Parse()

	log, err := mbellog.New(*verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger init failed: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	mux := http.NewServeMux()
	mux.HandleFunc("/check", handleCheck(log))
	mux.HandleFunc("/query", handleQuery(log))
	mux.Handle("/metrics", promhttp.Handler())

	addr := fmt.Sprintf(":%d", *port)
	log.Info("mbel server listening", zap.String("addr", addr))
	handler := corsMiddleware(requestIDMiddleware(log, mux))
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Error("server error", zap.Error(err))
	}
}
