// Package health reports store liveness over HTTP and the gRPC health
// protocol.
package health

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
	"google.golang.org/grpc"
	grpchealth "google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"vidtube/internal/common"
)

// ServiceName is the name reported to gRPC health clients.
const ServiceName = "vidtube.api"

type Pinger interface {
	Ping(ctx context.Context) error
}

type Status struct {
	Status string `json:"status"`
}

type Handler struct {
	store   Pinger
	timeout time.Duration
}

func NewHandler(store Pinger, timeout time.Duration) *Handler {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &Handler{store: store, timeout: timeout}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/healthcheck", h.Check).Methods(http.MethodGet)
}

func (h *Handler) Check(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		log.Ctx(r.Context()).Warn().Err(err).Msg("health check failed")
		common.WriteError(w, &common.APIError{
			StatusCode: http.StatusServiceUnavailable,
			Message:    "Database unavailable",
			Retryable:  true,
			Err:        err,
		})
		return
	}
	common.WriteSuccess(w, http.StatusOK, Status{Status: "OK"}, "Health check passed")
}

// NewGRPCServer returns a gRPC server exposing the standard health service
// and reflection, plus the health server so Watch can drive it.
func NewGRPCServer() (*grpc.Server, *grpchealth.Server) {
	server := grpc.NewServer()
	hs := grpchealth.NewServer()
	healthpb.RegisterHealthServer(server, hs)
	reflection.Register(server)
	return server, hs
}

// Watch pings the store every interval and publishes the result until ctx is
// cancelled, then marks the service as not serving.
func Watch(ctx context.Context, hs *grpchealth.Server, store Pinger, interval time.Duration) {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := healthpb.HealthCheckResponse_UNKNOWN
	for {
		status := servingStatus(ctx, store, interval)
		if status != last {
			log.Info().Str("service", ServiceName).Str("status", status.String()).Msg("health status changed")
			last = status
		}
		hs.SetServingStatus(ServiceName, status)
		hs.SetServingStatus("", status)

		select {
		case <-ctx.Done():
			hs.Shutdown()
			return
		case <-ticker.C:
		}
	}
}

func servingStatus(ctx context.Context, store Pinger, timeout time.Duration) healthpb.HealthCheckResponse_ServingStatus {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := store.Ping(ctx); err != nil {
		return healthpb.HealthCheckResponse_NOT_SERVING
	}
	return healthpb.HealthCheckResponse_SERVING
}
