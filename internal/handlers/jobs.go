package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/kolinabir/hirelens/internal/database"
	"github.com/kolinabir/hirelens/internal/ingest"
	"github.com/kolinabir/hirelens/internal/models"
)

// IngestPosts archives the posted raw posts and upserts the jobs extracted
// from them. Same payload shape as Extract, but persists.
func (h *Handler) IngestPosts(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read request body"})
		return
	}

	var posts []models.Post
	if err := json.Unmarshal(body, &posts); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "posts payload is not a JSON array"})
		return
	}
	if len(posts) == 0 {
		c.JSON(http.StatusOK, ingest.Counts{})
		return
	}

	counts, err := h.worker.IngestPosts(c.Request.Context(), posts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, counts)
}

func (h *Handler) ListJobs(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	query := database.JobQuery{
		Search:         c.Query("search"),
		EmploymentType: c.Query("employmentType"),
		Skill:          c.Query("skill"),
		Tag:            c.Query("tag"),
		Page:           page,
		Limit:          limit,
	}

	jobs, total, err := h.repo.ListJobs(c.Request.Context(), query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"jobs":  jobs,
		"total": total,
		"page":  page,
		"limit": limit,
	})
}

func (h *Handler) GetJob(c *gin.Context) {
	job, err := h.repo.GetJobByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		notFoundOr500(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

func (h *Handler) CreateJob(c *gin.Context) {
	var job models.ExtractedJob
	if err := c.ShouldBindJSON(&job); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if job.JobTitle == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "jobTitle is required"})
		return
	}

	if _, err := h.repo.UpsertJob(c.Request.Context(), &job); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, job)
}

func (h *Handler) UpdateJob(c *gin.Context) {
	var job models.ExtractedJob
	if err := c.ShouldBindJSON(&job); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.repo.UpdateJob(c.Request.Context(), c.Param("id"), &job); err != nil {
		notFoundOr500(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

func (h *Handler) DeleteJob(c *gin.Context) {
	if err := h.repo.DeleteJob(c.Request.Context(), c.Param("id")); err != nil {
		notFoundOr500(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
