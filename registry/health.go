package registry

import (
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const defaultFailureThreshold = 3

// HealthChecker periodically dials every instance a Registry returns
// for a watched service and deregisters the ones that fail enough
// consecutive checks in a row. It runs entirely off to the side of the
// hot send/NextPacket path; a stuck or slow backend only ever affects
// its own registry entry, never a Connection already dialed to it.
type HealthChecker struct {
	registry         Registry
	cron             *cron.Cron
	logger           *zap.Logger
	timeout          time.Duration
	failureThreshold int

	mu           sync.Mutex
	serviceNames []string
	failures     map[string]int // serviceName + "/" + addr -> consecutive failures
}

// NewHealthChecker builds a checker that dials with the given per-probe
// timeout and deregisters an instance after failureThreshold consecutive
// failed dials. failureThreshold <= 0 defaults to 3.
func NewHealthChecker(reg Registry, timeout time.Duration, failureThreshold int, logger *zap.Logger) *HealthChecker {
	if failureThreshold <= 0 {
		failureThreshold = defaultFailureThreshold
	}
	return &HealthChecker{
		registry:         reg,
		cron:             cron.New(cron.WithSeconds()),
		logger:           logger,
		timeout:          timeout,
		failureThreshold: failureThreshold,
		failures:         make(map[string]int),
	}
}

// Watch adds serviceName to the set of services probed on every tick.
// Safe to call after Start.
func (h *HealthChecker) Watch(serviceName string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, s := range h.serviceNames {
		if s == serviceName {
			return
		}
	}
	h.serviceNames = append(h.serviceNames, serviceName)
}

// Start parses schedule (a standard cron expression with a leading
// seconds field, e.g. "*/10 * * * * *" for every 10 seconds) and begins
// the periodic check loop.
func (h *HealthChecker) Start(schedule string) error {
	if _, err := h.cron.AddFunc(schedule, h.runOnce); err != nil {
		return fmt.Errorf("invalid health check schedule %q: %w", schedule, err)
	}
	h.cron.Start()
	return nil
}

// Stop halts the checker and waits for any in-flight check to finish.
func (h *HealthChecker) Stop() {
	<-h.cron.Stop().Done()
}

func (h *HealthChecker) runOnce() {
	h.mu.Lock()
	serviceNames := append([]string(nil), h.serviceNames...)
	h.mu.Unlock()

	for _, serviceName := range serviceNames {
		instances, err := h.registry.Discover(serviceName)
		if err != nil {
			h.logger.Warn("health check: discover failed", zap.String("service", serviceName), zap.Error(err))
			continue
		}
		for _, inst := range instances {
			h.probe(serviceName, inst)
		}
	}
}

func (h *HealthChecker) probe(serviceName string, inst Instance) {
	key := serviceName + "/" + inst.Addr
	conn, err := net.DialTimeout("tcp", inst.Addr, h.timeout)
	if err == nil {
		conn.Close()
		h.mu.Lock()
		delete(h.failures, key)
		h.mu.Unlock()
		return
	}

	h.mu.Lock()
	h.failures[key]++
	failures := h.failures[key]
	h.mu.Unlock()

	h.logger.Warn("health check failed",
		zap.String("service", serviceName),
		zap.String("addr", inst.Addr),
		zap.Int("consecutive_failures", failures),
		zap.Error(err),
	)

	if failures < h.failureThreshold {
		return
	}

	if err := h.registry.Deregister(serviceName, inst.Addr); err != nil {
		h.logger.Warn("health check: deregister failed",
			zap.String("service", serviceName), zap.String("addr", inst.Addr), zap.Error(err))
		return
	}
	h.logger.Warn("deregistered unhealthy instance",
		zap.String("service", serviceName), zap.String("addr", inst.Addr), zap.Int("consecutive_failures", failures))

	h.mu.Lock()
	delete(h.failures, key)
	h.mu.Unlock()
}
