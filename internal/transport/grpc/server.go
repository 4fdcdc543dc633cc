package grpc

import (
	"context"
	"time"

	"lmsplatform/internal/platform/logger"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

const checkInterval = 15 * time.Second

// HealthServer reports serving status over the standard gRPC health protocol
// and keeps it in step with the datastore.
type HealthServer struct {
	Server *grpc.Server
	health *health.Server
	ping   func(ctx context.Context) error
	log    *logger.Logger
}

func NewHealthServer(ping func(ctx context.Context) error, log *logger.Logger) *HealthServer {
	s := &HealthServer{
		Server: grpc.NewServer(),
		health: health.NewServer(),
		ping:   ping,
		log:    log.With("server", "grpc"),
	}
	healthpb.RegisterHealthServer(s.Server, s.health)
	reflection.Register(s.Server)
	return s
}

// Watch probes the datastore until ctx is done.
func (s *HealthServer) Watch(ctx context.Context) {
	s.check(ctx)

	ticker := time.NewTicker(checkInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			s.health.Shutdown()
			return
		case <-ticker.C:
			s.check(ctx)
		}
	}
}

func (s *HealthServer) check(ctx context.Context) {
	status := healthpb.HealthCheckResponse_SERVING
	if s.ping != nil {
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		err := s.ping(pingCtx)
		cancel()
		if err != nil {
			s.log.Warn("Datastore health check failed", "error", err)
			status = healthpb.HealthCheckResponse_NOT_SERVING
		}
	}
	s.health.SetServingStatus("", status)
}
