package integrations

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/sony/gobreaker"

	"github.com/matzehuels/isograph/pkg/httputil"
)

// BreakerConfig configures the circuit breaker in front of a remote service.
type BreakerConfig struct {
	Name        string
	MaxRequests uint32        // requests let through while half-open
	Interval    time.Duration // closed-state window for resetting counts
	Timeout     time.Duration // open duration before probing again
	MinRequests uint32        // requests before the failure ratio counts
	Threshold   float64       // failure ratio that opens the breaker
}

// DefaultBreakerConfig returns the settings used by NewClient.
func DefaultBreakerConfig(name string) BreakerConfig {
	return BreakerConfig{
		Name:        name,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		MinRequests: 5,
		Threshold:   0.6,
	}
}

// NewBreaker builds a circuit breaker. Only transient failures (network
// errors, 5xx) count against the service; a 404 is a valid answer.
func NewBreaker(cfg BreakerConfig, logger *log.Logger) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= cfg.Threshold
		},
		IsSuccessful: func(err error) bool {
			return err == nil || !httputil.IsRetryable(err)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			if logger != nil {
				logger.Warn("circuit breaker state changed", "service", name, "from", from, "to", to)
			}
		},
	})
}
