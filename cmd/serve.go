package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/screen-cli/internal/model"
	"github.com/sells-group/screen-cli/internal/store"
	"github.com/sells-group/screen-cli/internal/ticker"
)

var servePort int

// screenFunc runs one screen; injected so handler tests can fake the
// pipeline.
type screenFunc func(ctx context.Context, company model.Company) (*model.ScreenResult, error)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the screening HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate("serve"); err != nil {
			return err
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()
		if err := st.Migrate(ctx); err != nil {
			return eris.Wrap(err, "migrate store")
		}

		screener := initScreener()
		router := newRouter(st, loadTickerTable(), screener.Run)

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:         fmt.Sprintf(":%d", port),
			Handler:      router,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 5 * time.Minute,
			IdleTimeout:  60 * time.Second,
		}

		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}

func newRouter(st store.Store, table *ticker.Table, runScreen screenFunc) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Post("/screen", func(w http.ResponseWriter, req *http.Request) {
		var body struct {
			Name   string `json:"name"`
			Ticker string `json:"ticker"`
		}
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		company := model.Company{Name: body.Name, Ticker: body.Ticker}
		if company.Name == "" && company.Ticker != "" && table != nil {
			company.Name = table.CompanyName(company.Ticker)
		}
		if company.Name == "" {
			writeError(w, http.StatusBadRequest, "name or a resolvable ticker is required")
			return
		}

		run, err := st.CreateRun(req.Context(), company)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "create run failed")
			return
		}

		result, err := runScreen(req.Context(), company)
		if err != nil {
			zap.L().Error("serve: screen failed",
				zap.String("company", company.Name),
				zap.Error(err),
			)
			if sErr := st.UpdateRunStatus(req.Context(), run.ID, model.RunFailed); sErr != nil {
				zap.L().Warn("serve: failed to mark run failed", zap.Error(sErr))
			}
			writeError(w, http.StatusBadGateway, "screen failed")
			return
		}
		if err := st.UpdateRunResult(req.Context(), run.ID, result); err != nil {
			zap.L().Warn("serve: failed to store run result", zap.Error(err))
		}

		writeJSON(w, http.StatusOK, result)
	})

	r.Get("/runs", func(w http.ResponseWriter, req *http.Request) {
		filter := store.RunFilter{
			Status:  model.RunStatus(req.URL.Query().Get("status")),
			Company: req.URL.Query().Get("company"),
		}
		runs, err := st.ListRuns(req.Context(), filter)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "list runs failed")
			return
		}
		if runs == nil {
			runs = []model.Run{}
		}
		writeJSON(w, http.StatusOK, runs)
	})

	r.Get("/runs/{id}", func(w http.ResponseWriter, req *http.Request) {
		run, err := st.GetRun(req.Context(), chi.URLParam(req, "id"))
		if err != nil {
			writeError(w, http.StatusNotFound, "run not found")
			return
		}
		writeJSON(w, http.StatusOK, run)
	})

	return r
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		zap.L().Info("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
