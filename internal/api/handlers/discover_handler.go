package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/vc-intel/backend/internal/pipeline"
	"github.com/vc-intel/backend/pkg/logger"
)

type DiscoverHandler struct {
	pipeline *pipeline.Pipeline
}

func NewDiscoverHandler(p *pipeline.Pipeline) *DiscoverHandler {
	return &DiscoverHandler{pipeline: p}
}

// RunDiscovery executes one discovery pass synchronously and returns
// the run summary. Runs take a while; callers should set
// generous timeouts.
func (h *DiscoverHandler) RunDiscovery(c *fiber.Ctx) error {
	run, err := h.pipeline.Run(c.Context())
	if err != nil {
		logger.Error("Discovery run failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":  "Discovery run failed",
			"run_id": run.ID,
		})
	}

	return c.JSON(fiber.Map{
		"run_id":          run.ID,
		"started_at":      run.StartedAt,
		"duration_ms":     run.DurationMS,
		"raw_results":     run.RawCount,
		"unique_articles": run.UniqueCount,
		"stored":          run.StoredCount,
		"high_priority":   run.HighPriority,
		"queries_issued":  run.QueriesIssued,
		"queries_failed":  run.QueriesFailed,
	})
}
