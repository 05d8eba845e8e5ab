package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"policyd/internal/codec"
	"policyd/internal/manager"
	"policyd/internal/policy"
	"policyd/internal/runtime"
	"policyd/pkg/types"
)

// Service defines the methods required by the HTTP API layer.
type Service interface {
	Act(ctx context.Context, obs policy.Observation) (manager.Result, error)
	Adapt(obs policy.Observation) (policy.ModelInput, error)
	Status(ctx context.Context) types.StatusResponse
	Ready(ctx context.Context) bool
}

func NewMux(svc Service) http.Handler {
	r := chi.NewRouter()
	// Basic middlewares: request id, real ip, recoverer
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(MetricsMiddleware)
	// Compression for JSON endpoints
	r.Use(middleware.Compress(5))
	// Security headers
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	})
	if corsEnabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: corsAllowedOrigins,
			AllowedMethods: corsAllowedMethods,
			AllowedHeaders: corsAllowedHeaders,
			MaxAge:         300,
		}))
	}

	r.Post("/act", handleAct(svc))
	r.Post("/adapt", handleAdapt(svc))
	r.Get("/example", handleExample)
	r.Get("/status", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, svc.Status(r.Context()))
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if svc.Ready(r.Context()) {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("ready"))
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("loading"))
	})

	// Prometheus metrics endpoint
	r.Get("/metrics", promhttp.Handler().ServeHTTP)
	MountSwagger(r)

	return r
}

// readObservation enforces JSON content, the body limit and converts the
// wire record. On failure it has already written the error response.
func readObservation(w http.ResponseWriter, r *http.Request) (policy.Observation, bool) {
	ct := r.Header.Get("Content-Type")
	if ct == "" || !strings.HasPrefix(strings.ToLower(ct), "application/json") {
		writeJSONError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return policy.Observation{}, false
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	var req types.ObservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			writeJSONError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return policy.Observation{}, false
		}
		writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
		return policy.Observation{}, false
	}
	obs, err := codec.Observation(req)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return policy.Observation{}, false
	}
	return obs, true
}

// handleAct godoc
//
//	@Summary		Compute an action sequence
//	@Description	Adapts the observation, runs the policy model and returns the first horizon x action_width actions.
//	@Tags			policy
//	@Accept			json
//	@Produce		json
//	@Param			observation	body		types.ObservationRequest	true	"Observation"
//	@Success		200			{object}	types.ActionResponse
//	@Failure		400			{object}	types.ErrorResponse
//	@Failure		422			{object}	types.ErrorResponse
//	@Failure		429			{object}	types.ErrorResponse
//	@Failure		503			{object}	types.ErrorResponse
//	@Router			/act [post]
func handleAct(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		lvl := requestLogLevel(r)
		obs, ok := readObservation(w, r)
		if !ok {
			observeAct("bad_request", 0)
			return
		}
		if lvl >= LevelInfo {
			logEvent(r, "act start", nil)
		}
		// Join server base context with request context so shutdown cancels work too.
		joinedCtx, cancel := joinContexts(serverBaseCtx, r.Context())
		defer cancel()
		res, err := svc.Act(joinedCtx, obs)
		if err != nil {
			// If context was canceled (client disconnect), just return.
			if r.Context().Err() != nil || serverBaseCtx.Err() != nil {
				observeAct("canceled", 0)
				return
			}
			status := statusFor(err)
			if status == http.StatusTooManyRequests {
				IncrementBackpressure(manager.TooBusyReason(err))
			}
			observeAct(outcomeFor(status), 0)
			writeJSONError(w, status, err.Error())
			if lvl >= LevelInfo {
				logEvent(r, "act end", map[string]any{"status": status, "dur": time.Since(start).String(), "error": err.Error()})
			}
			return
		}
		observeAct("ok", res.InferDuration)
		rows, cols := res.Actions.Dims()
		resp := types.ActionResponse{
			ID:          res.ID.String(),
			Horizon:     rows,
			ActionWidth: cols,
			Actions:     res.Actions.Rows(),
			InferMS:     float64(res.InferDuration.Microseconds()) / 1000,
		}
		out := io.Writer(w)
		if lvl >= LevelDebug {
			out = io.MultiWriter(w, &loggingLineWriter{prefix: "act> "})
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if err := json.NewEncoder(out).Encode(resp); err != nil {
			log.Printf("act: encode response: %v", err)
		}
		if lvl >= LevelInfo {
			logEvent(r, "act end", map[string]any{"status": http.StatusOK, "dur": time.Since(start).String(), "sequence_id": resp.ID})
		}
	}
}

// handleAdapt godoc
//
//	@Summary		Preview the model input
//	@Description	Runs only the input adapter and returns slot shapes, masks, padded state and prompt.
//	@Tags			policy
//	@Accept			json
//	@Produce		json
//	@Param			observation	body		types.ObservationRequest	true	"Observation"
//	@Success		200			{object}	types.AdaptResponse
//	@Failure		400			{object}	types.ErrorResponse
//	@Failure		422			{object}	types.ErrorResponse
//	@Router			/adapt [post]
func handleAdapt(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		obs, ok := readObservation(w, r)
		if !ok {
			return
		}
		in, err := svc.Adapt(obs)
		if err != nil {
			writeJSONError(w, statusFor(err), err.Error())
			return
		}
		writeJSON(w, http.StatusOK, codec.AdaptSummary(in))
	}
}

// handleExample godoc
//
//	@Summary	Example observation
//	@Tags		policy
//	@Produce	json
//	@Success	200	{object}	types.ObservationRequest
//	@Router		/example [get]
func handleExample(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, codec.Request(policy.MakeExample()))
}

// statusFor maps service errors to HTTP status codes.
func statusFor(err error) int {
	var se *runtime.StatusError
	var he HTTPError
	switch {
	case codec.IsDecodeError(err), policy.IsMissingField(err):
		return http.StatusBadRequest
	case policy.IsShapeError(err):
		return http.StatusUnprocessableEntity
	case manager.IsTooBusy(err):
		return http.StatusTooManyRequests
	case manager.IsDependencyUnavailable(err):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.As(err, &se), runtime.IsProtocolError(err):
		return http.StatusBadGateway
	case errors.As(err, &he):
		return he.StatusCode()
	}
	return http.StatusInternalServerError
}

func outcomeFor(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "bad_request"
	case http.StatusUnprocessableEntity:
		return "shape_error"
	case http.StatusTooManyRequests:
		return "too_busy"
	case http.StatusServiceUnavailable, http.StatusBadGateway, http.StatusGatewayTimeout:
		return "runtime_error"
	}
	return "error"
}
