package grpchealth

import (
	"context"
	"errors"
	"net"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func startServer(t *testing.T, check Checker) (*Server, string, context.CancelFunc) {
	t.Helper()
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	s := NewServer(check, 20*time.Millisecond, zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	go s.Watch(ctx)
	go func() { _ = s.Serve(lis) }()
	t.Cleanup(func() {
		cancel()
		s.Stop()
	})
	return s, lis.Addr().String(), cancel
}

func TestProbeFollowsChecker(t *testing.T) {
	var failing atomic.Bool
	_, addr, _ := startServer(t, func(context.Context) error {
		if failing.Load() {
			return errors.New("store unreachable")
		}
		return nil
	})

	ctx := context.Background()
	require.Eventually(t, func() bool { return Probe(ctx, addr, ServiceName) == nil }, 2*time.Second, 10*time.Millisecond)
	assert.NoError(t, Probe(ctx, addr, ""))

	failing.Store(true)
	require.Eventually(t, func() bool { return Probe(ctx, addr, ServiceName) != nil }, 2*time.Second, 10*time.Millisecond)
	err := Probe(ctx, addr, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NOT_SERVING")
}

func TestProbeUnknownServiceFails(t *testing.T) {
	_, addr, _ := startServer(t, func(context.Context) error { return nil })

	err := Probe(context.Background(), addr, "no.such.Service")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "grpchealth.check")
}

func TestProbeUnreachableAddress(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	err := Probe(ctx, "127.0.0.1:1", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "grpchealth.dial")
}
