package server

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/arpitbiyaniazz/ecooracal/internal/advisor"
	"github.com/arpitbiyaniazz/ecooracal/internal/schema"
	"github.com/arpitbiyaniazz/ecooracal/internal/utility"
	"github.com/labstack/echo/v4"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"
	"golang.org/x/sync/errgroup"
)

/* ====================================================================
                   		Operational Handlers
==================================================================== */

const gigabyte = 1024 * 1024 * 1024

// healthHandler collects system-level metrics and whether the AI client is usable.
func (s *Server) healthHandler(c echo.Context) error {
	ctx := c.Request().Context()
	logger := utility.LoggerFromContext(c)

	var (
		mu       sync.Mutex
		failures []string
		report   = map[string]interface{}{}
	)
	record := func(section string, data map[string]interface{}, err error) {
		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			failures = append(failures, section)
			logger.Warn().Err(err).Str("check", section).Msg("Health check failed")
			return
		}
		report[section] = data
	}

	// Checks run concurrently; one failing does not cancel the others.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		v, err := mem.VirtualMemoryWithContext(gctx)
		if err != nil {
			record("memory", nil, err)
			return nil
		}
		record("memory", map[string]interface{}{
			"total_gb":     fmt.Sprintf("%.2f GB", float64(v.Total)/gigabyte),
			"used_gb":      fmt.Sprintf("%.2f GB", float64(v.Used)/gigabyte),
			"used_percent": fmt.Sprintf("%.2f%%", v.UsedPercent),
			"free_gb":      fmt.Sprintf("%.2f GB", float64(v.Free)/gigabyte),
		}, nil)
		return nil
	})
	g.Go(func() error {
		percents, err := cpu.PercentWithContext(gctx, s.cpuSample, false)
		if err == nil && len(percents) == 0 {
			err = fmt.Errorf("no cpu samples")
		}
		if err != nil {
			record("cpu", nil, err)
			return nil
		}
		cores, _ := cpu.CountsWithContext(gctx, true)
		record("cpu", map[string]interface{}{
			"usage_percent": fmt.Sprintf("%.2f%%", percents[0]),
			"cores":         cores,
		}, nil)
		return nil
	})
	g.Go(func() error {
		d, err := disk.UsageWithContext(gctx, "/")
		if err != nil {
			record("disk", nil, err)
			return nil
		}
		record("disk", map[string]interface{}{
			"total_gb":     fmt.Sprintf("%.2f GB", float64(d.Total)/gigabyte),
			"used_gb":      fmt.Sprintf("%.2f GB", float64(d.Used)/gigabyte),
			"used_percent": fmt.Sprintf("%.2f%%", d.UsedPercent),
		}, nil)
		return nil
	})
	g.Go(func() error {
		h, err := host.InfoWithContext(gctx)
		if err != nil {
			record("host", nil, err)
			return nil
		}
		record("host", map[string]interface{}{
			"os":       h.OS,
			"platform": h.Platform,
			"arch":     h.KernelArch,
			"hostname": h.Hostname,
		}, nil)
		return nil
	})
	_ = g.Wait()

	status := "online"
	if len(failures) > 0 {
		status = "degraded"
		report["failed_checks"] = failures
	}
	report["status"] = status
	report["ai_configured"] = s.aiConfigured
	report["runtime"] = map[string]interface{}{
		"uptime":     time.Since(s.startTime).Round(time.Second).String(),
		"start_time": s.startTime.Format(time.RFC3339),
	}

	return c.JSON(http.StatusOK, report)
}

// --- Feature catalogue ---

type fieldInfo struct {
	Name        string   `json:"name"`
	Label       string   `json:"label"`
	Description string   `json:"description"`
	Kind        string   `json:"kind"`
	Optional    bool     `json:"optional"`
	Min         int      `json:"min"`
	Max         int      `json:"max"`
	Aliases     []string `json:"aliases,omitempty"`
}

type featureInfo struct {
	Feature string      `json:"feature"`
	Route   string      `json:"route"`
	Fields  []fieldInfo `json:"fields"`
}

// featuresHandler lists every feature's route and input fields so a form
// front-end can render itself.
func (s *Server) featuresHandler(c echo.Context) error {
	catalogue := advisor.Catalogue()
	features := make([]featureInfo, 0, len(catalogue))
	for _, in := range catalogue {
		features = append(features, featureInfo{
			Feature: in.Feature,
			Route:   featureRoutes[in.Feature],
			Fields:  describeFields(in.Fields),
		})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"features": features})
}

func describeFields(fields []schema.Field) []fieldInfo {
	out := make([]fieldInfo, 0, len(fields))
	for _, f := range fields {
		out = append(out, fieldInfo{
			Name:        f.Name,
			Label:       f.Label,
			Description: f.Description,
			Kind:        f.Kind.String(),
			Optional:    f.Optional,
			Min:         f.Min,
			Max:         f.Max,
			Aliases:     f.Aliases,
		})
	}
	return out
}
