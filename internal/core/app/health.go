package app

import (
	"context"
	"fmt"
	"time"
)

type HealthStatus struct {
	Status     string            `json:"status"`
	Timestamp  time.Time         `json:"timestamp"`
	Components map[string]string `json:"components"`
}

type HealthService struct {
	app *App
}

func NewHealthService(app *App) *HealthService {
	return &HealthService{app: app}
}

type availabilityProber interface {
	Available() error
}

func (s *HealthService) Check(ctx context.Context) HealthStatus {
	status := HealthStatus{
		Status:     "up",
		Timestamp:  time.Now().UTC(),
		Components: make(map[string]string),
	}

	if s.app.Analyzer == nil {
		status.Status = "degraded"
		status.Components["analyzer"] = "missing"
	} else {
		status.Components["analyzer"] = fmt.Sprintf("ok (style %s)", s.app.Analyzer.Style())
	}

	// Checker
	switch {
	case s.app.Analyzer == nil || !s.app.Analyzer.Validates():
		status.Components["checker"] = "disabled"
	case s.app.Checker == nil:
		status.Status = "degraded"
		status.Components["checker"] = "missing but validation enabled"
	default:
		if prober, ok := s.app.Checker.(availabilityProber); ok {
			if err := prober.Available(); err != nil {
				status.Status = "degraded"
				status.Components["checker"] = fmt.Sprintf("unavailable: %v", err)
				break
			}
		}
		status.Components["checker"] = "ok (" + s.app.Checker.Name() + ")"
	}

	results, summary := s.app.Snapshot()
	status.Components["results"] = fmt.Sprintf("%d files, %.1f%% coverage, %d failed", len(results), summary.CoveragePercentage, summary.Failed)

	if s.app.Watching() {
		status.Components["watcher"] = "ok"
	}

	return status
}
