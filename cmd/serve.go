package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/se-builders/crm-sync/internal/extract"
	"github.com/se-builders/crm-sync/internal/model"
	syncer "github.com/se-builders/crm-sync/internal/sync"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start webhook server for sync requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		env, err := initEnv(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: buildMux(env.Syncer),
		}

		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			srv.Shutdown(ctx)
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

func buildMux(s *syncer.Syncer) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	mux.HandleFunc("GET /status", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"hubspot_enabled": s.Enabled()})
	})

	mux.HandleFunc("POST /sync/conversation", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Email   string       `json:"email"`
			Turns   []model.Turn `json:"turns"`
			Summary string       `json:"summary"`
		}
		if !decodeRequest(w, r, &req) {
			return
		}
		if req.Email == "" {
			http.Error(w, `{"error":"email is required"}`, http.StatusBadRequest)
			return
		}

		ok, err := s.LogConversation(r.Context(), req.Email, req.Turns, req.Summary)
		if err != nil {
			writeSyncError(w, err, "conversation", req.Email)
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"logged": ok})
	})

	mux.HandleFunc("POST /sync/estimate", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Email         string  `json:"email"`
			FacilityType  string  `json:"facility_type"`
			SquareFootage int     `json:"square_footage"`
			Location      string  `json:"location"`
			Timeline      string  `json:"timeline"`
			QualityLevel  string  `json:"quality_level"`
			EstimateText  string  `json:"estimate_text"`
			Amount        float64 `json:"amount"`
		}
		if !decodeRequest(w, r, &req) {
			return
		}
		if req.Email == "" {
			http.Error(w, `{"error":"email is required"}`, http.StatusBadRequest)
			return
		}

		amount := req.Amount
		if amount == 0 {
			amount = extract.EstimatedCost(req.EstimateText)
		}

		dealID, err := s.LogCostEstimate(r.Context(), req.Email, model.EstimateFields{
			FacilityType:  req.FacilityType,
			SquareFootage: req.SquareFootage,
			Location:      req.Location,
			Timeline:      req.Timeline,
			QualityLevel:  req.QualityLevel,
		}, req.EstimateText, amount)
		if err != nil {
			writeSyncError(w, err, "estimate", req.Email)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"deal_id": dealID, "amount": amount})
	})

	mux.HandleFunc("POST /sync/safety", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Project      string `json:"project"`
			Location     string `json:"location"`
			Severity     string `json:"severity"`
			Description  string `json:"description"`
			ContactEmail string `json:"contact_email"`
		}
		if !decodeRequest(w, r, &req) {
			return
		}
		if req.Project == "" {
			http.Error(w, `{"error":"project is required"}`, http.StatusBadRequest)
			return
		}

		severity, ok := model.ParseSeverity(req.Severity)
		if !ok {
			// Unrecognized severities schedule at the default rather
			// than being rejected.
			severity = model.Severity(req.Severity)
		}

		taskID, err := s.LogSafetyIssue(r.Context(), req.Project, req.Location, severity, req.Description, req.ContactEmail)
		if err != nil {
			writeSyncError(w, err, "safety", req.Project)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"task_id": taskID})
	})

	return mux
}

func decodeRequest(w http.ResponseWriter, r *http.Request, out any) bool {
	if err := json.NewDecoder(r.Body).Decode(out); err != nil {
		http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeSyncError(w http.ResponseWriter, err error, op, subject string) {
	if errors.Is(err, syncer.ErrDisabled) {
		http.Error(w, `{"error":"hubspot integration is not configured"}`, http.StatusServiceUnavailable)
		return
	}
	zap.L().Error("sync request failed",
		zap.String("operation", op),
		zap.String("subject", subject),
		zap.Error(err),
	)
	http.Error(w, `{"error":"sync failed"}`, http.StatusBadGateway)
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
