package handler

import (
	"context"

	"google.golang.org/grpc"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/rl1809/storefront-cart/internal/port"
)

// HealthService answers grpc.health.v1 checks by pinging the cart store.
type HealthService struct {
	healthpb.UnimplementedHealthServer
	store port.HealthChecker
}

func NewHealthService(store port.HealthChecker) *HealthService {
	return &HealthService{store: store}
}

func (h *HealthService) Register(s *grpc.Server) {
	healthpb.RegisterHealthServer(s, h)
}

func (h *HealthService) Check(ctx context.Context, req *healthpb.HealthCheckRequest) (*healthpb.HealthCheckResponse, error) {
	if h.store != nil {
		if err := h.store.Ping(ctx); err != nil {
			return &healthpb.HealthCheckResponse{Status: healthpb.HealthCheckResponse_NOT_SERVING}, nil
		}
	}
	return &healthpb.HealthCheckResponse{Status: healthpb.HealthCheckResponse_SERVING}, nil
}
