// cmd/voting-client/main.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"evoting-client/internal/api"
	"evoting-client/internal/common/cache"
	"evoting-client/internal/common/config"
	"evoting-client/internal/common/errors"
	"evoting-client/internal/common/logger"
	"evoting-client/internal/common/observability"
	"evoting-client/internal/voting/receipts"
	"evoting-client/internal/voting/results"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2 // Exponential backoff
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

// The binary runs the public kiosk surface of the voting client:
// anonymous receipt verification and live election results. The
// authenticated flows (ballot, applications) are session-scoped and
// consumed as a library.
func main() {
	zapLog := logger.New("info", "console")
	defer zapLog.Sync()

	// Wrap zap logger with our logger interface
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting voting client...")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	obs := observability.New(cfg.Observability.ServiceName)
	defer obs.Shutdown()

	rootCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Init Redis cache with retry (optional) ---
	var cacheClient *cache.Client
	if cfg.Cache.Enabled {
		err = retryWithBackoff(func() error {
			var err error
			cacheClient, err = cache.New(cfg.Cache)
			if err != nil {
				return err
			}
			return cacheClient.Ping(rootCtx)
		}, 10, 2*time.Second, zapLog, "Redis connection")

		if err != nil {
			zapLog.Fatal("redis failed after retries", zap.Error(err))
		}
		defer cacheClient.Close()
		zapLog.Info("Redis connected successfully")
	} else {
		zapLog.Info("Cache disabled, election reads go straight to the API")
	}

	// --- Init election API client ---
	apiClient := api.NewClient(cfg.API, log, obs)
	zapLog.Info("Election API client initialized",
		zap.String("base_url", cfg.API.BaseURL))

	receiptService := receipts.New(apiClient, log)

	// --- Results poller for the kiosk election ---
	resultsPoller := results.NewPoller(apiClient,
		config.GetDuration(cfg.Voting.ResultsPollInterval), log)
	if cfg.Voting.ResultsElectionID != 0 {
		resultsPoller.Start(rootCtx, cfg.Voting.ResultsElectionID, nil)
		zapLog.Info("Results poller started",
			zap.Int64("election_id", cfg.Voting.ResultsElectionID))
	}

	// --- Kiosk endpoints ---
	http.HandleFunc("/kiosk/verify", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		var req struct {
			ReceiptCode string `json:"receipt_code"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		verification, err := receiptService.Verify(r.Context(), req.ReceiptCode)
		w.Header().Set("Content-Type", "application/json")
		if err != nil {
			se, _ := err.(*errors.StandardError)
			status := http.StatusBadGateway
			msg := "Verification is temporarily unavailable."
			if se != nil {
				msg = se.UserMessage()
				if !se.Retryable {
					status = http.StatusNotFound
				}
			}
			w.WriteHeader(status)
			json.NewEncoder(w).Encode(map[string]string{"detail": msg})
			return
		}
		json.NewEncoder(w).Encode(verification)
	})

	http.HandleFunc("/kiosk/results", func(w http.ResponseWriter, r *http.Request) {
		snapshot := resultsPoller.Latest()
		w.Header().Set("Content-Type", "application/json")
		if snapshot == nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]string{"detail": "No results available yet."})
			return
		}
		json.NewEncoder(w).Encode(snapshot)
	})

	// --- Health & Metrics Server ---
	go func() {
		http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]string{
				"status": "healthy",
				"time":   time.Now().Format(time.RFC3339),
			})
		})
		http.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]string{
				"status": "ready",
				"time":   time.Now().Format(time.RFC3339),
			})
		})
		http.Handle("/metrics", promhttp.Handler())
		zapLog.Info("Kiosk/Metrics server listening on " + cfg.Observability.ListenAddr)
		if err := http.ListenAndServe(cfg.Observability.ListenAddr, nil); err != nil {
			zapLog.Error("Kiosk/Metrics server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	<-rootCtx.Done()

	zapLog.Info("Shutdown signal received, stopping voting client...")
	resultsPoller.Wait()

	zapLog.Info("Voting client stopped gracefully")
}
