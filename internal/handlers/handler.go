// Package handlers implements the REST API consumed by the admin dashboard.
package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kolinabir/hirelens/internal/database"
	"github.com/kolinabir/hirelens/internal/digest"
	"github.com/kolinabir/hirelens/internal/extractor"
	"github.com/kolinabir/hirelens/internal/ingest"
)

type Handler struct {
	repo   *database.Repository
	worker *ingest.Worker
	digest *digest.Service
}

func New(repo *database.Repository, worker *ingest.Worker, digestSvc *digest.Service) *Handler {
	return &Handler{repo: repo, worker: worker, digest: digestSvc}
}

func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Extract runs the local extractor over the posted JSON array without
// touching the database. The request body IS the posts payload.
func (h *Handler) Extract(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read request body"})
		return
	}

	jobs, err := extractor.ExtractJobPosts(string(body))
	if err != nil {
		if errors.Is(err, extractor.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": len(jobs), "jobs": jobs})
}

func notFoundOr500(c *gin.Context, err error) {
	if errors.Is(err, database.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
