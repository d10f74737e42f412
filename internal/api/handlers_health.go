// Reelmatch - Multi-Strategy Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/tomtom215/reelmatch/internal/recommend"
)

// healthPingTimeout bounds the database ping in /health.
const healthPingTimeout = 2 * time.Second

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status        string                   `json:"status"`
	Database      bool                     `json:"database"`
	Artifact      recommend.TrainingStatus `json:"artifact"`
	UptimeSeconds int64                    `json:"uptime_seconds"`
}

// TrainResponse is the body of POST /api/v1/admin/train.
type TrainResponse struct {
	Version    int64     `json:"version"`
	Items      int       `json:"items"`
	Vocabulary int       `json:"vocabulary"`
	TrainedAt  time.Time `json:"trained_at"`
}

// Health handles GET /health. A failed database ping answers 503; a missing
// artifact only marks the service degraded since the content route can fall
// back to TMDB.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	ctx, cancel := context.WithTimeout(r.Context(), healthPingTimeout)
	defer cancel()

	resp := HealthResponse{
		Status:        "healthy",
		Database:      true,
		Artifact:      h.engine.Status(),
		UptimeSeconds: int64(time.Since(h.startTime).Seconds()),
	}
	if err := h.store.Ping(ctx); err != nil {
		h.logger.Warn().Err(err).Msg("Health check: database ping failed")
		resp.Status = "unhealthy"
		resp.Database = false
		rw.writeJSON(http.StatusServiceUnavailable, APIResponse{Success: false, Data: resp, Meta: rw.meta()})
		return
	}
	if !resp.Artifact.Loaded {
		resp.Status = "degraded"
	}
	rw.Success(resp)
}

// AdminTrain handles POST /api/v1/admin/train with a synchronous rebuild.
func (h *Handler) AdminTrain(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	artifact, err := h.trainer.Train(r.Context())
	switch {
	case errors.Is(err, recommend.ErrCatalogTooSmall):
		rw.Error(http.StatusConflict, ErrCodeCatalogTooSmall, "Catalog has too few movies to train")
		return
	case err != nil:
		rw.InternalError(err)
		return
	}

	h.logger.Info().Int64("version", artifact.Version).Int("items", artifact.Len()).Msg("Artifact trained via admin endpoint")
	rw.Success(TrainResponse{
		Version:    artifact.Version,
		Items:      artifact.Len(),
		Vocabulary: artifact.Model.Dim(),
		TrainedAt:  artifact.TrainedAt,
	})
}
