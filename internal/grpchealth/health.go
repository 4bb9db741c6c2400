// Package grpchealth serves the standard gRPC health protocol for
// orchestrators and provides the matching probe client.
package grpchealth

import (
	"context"
	"fmt"
	"net"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/example/casino-admin/internal/logging"
)

// ServiceName is the health service key reported alongside the overall "" key.
const ServiceName = "casino.admin.v1.AdminAPI"

// Checker reports whether a dependency is reachable.
type Checker func(ctx context.Context) error

// Server flips the health status between SERVING and NOT_SERVING according
// to the result of the checker.
type Server struct {
	grpc     *grpc.Server
	health   *health.Server
	check    Checker
	interval time.Duration
	logger   *zap.Logger
}

// NewServer creates a health server polling check every interval.
func NewServer(check Checker, interval time.Duration, logger *zap.Logger) *Server {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	hs := health.NewServer()
	gs := grpc.NewServer()
	healthpb.RegisterHealthServer(gs, hs)
	return &Server{grpc: gs, health: hs, check: check, interval: interval, logger: logger}
}

// Serve blocks serving on lis until Stop is called.
func (s *Server) Serve(lis net.Listener) error {
	return s.grpc.Serve(lis)
}

// Watch refreshes the status immediately and then on every tick until ctx ends.
func (s *Server) Watch(ctx context.Context) {
	s.refresh(ctx)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.refresh(ctx)
		}
	}
}

func (s *Server) refresh(ctx context.Context) {
	status := healthpb.HealthCheckResponse_SERVING
	checkCtx, cancel := context.WithTimeout(ctx, s.interval)
	defer cancel()
	if err := s.check(checkCtx); err != nil {
		status = healthpb.HealthCheckResponse_NOT_SERVING
		s.logger.Warn("health check failed", zap.Error(err))
	}
	s.health.SetServingStatus("", status)
	s.health.SetServingStatus(ServiceName, status)
}

// Stop marks every service NOT_SERVING and drains in-flight calls.
func (s *Server) Stop() {
	s.health.Shutdown()
	s.grpc.GracefulStop()
}

// Probe dials addr and returns nil only when service reports SERVING.
func Probe(ctx context.Context, addr, service string) error {
	dialCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	conn, err := grpc.DialContext(
		dialCtx,
		addr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithBlock(),
	)
	if err != nil {
		return logging.NewOperationError("grpchealth.dial", "", err)
	}
	defer conn.Close()

	resp, err := healthpb.NewHealthClient(conn).Check(ctx, &healthpb.HealthCheckRequest{Service: service})
	if err != nil {
		return logging.NewOperationError("grpchealth.check", "", err)
	}
	if resp.GetStatus() != healthpb.HealthCheckResponse_SERVING {
		return fmt.Errorf("service %q is %s", service, resp.GetStatus())
	}
	return nil
}
