package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/kolinabir/hirelens/internal/models"
)

// ---------------- SCRAPE TARGETS ----------------

func (h *Handler) ListTargets(c *gin.Context) {
	targets, err := h.repo.ListTargets(c.Request.Context(), false)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"targets": targets})
}

func (h *Handler) CreateTarget(c *gin.Context) {
	var target models.ScrapeTarget
	if err := c.ShouldBindJSON(&target); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := validateTarget(&target); err != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	if err := h.repo.CreateTarget(c.Request.Context(), &target); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, target)
}

func (h *Handler) UpdateTarget(c *gin.Context) {
	var target models.ScrapeTarget
	if err := c.ShouldBindJSON(&target); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := validateTarget(&target); err != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	if err := h.repo.UpdateTarget(c.Request.Context(), c.Param("id"), &target); err != nil {
		notFoundOr500(c, err)
		return
	}
	c.JSON(http.StatusOK, target)
}

func (h *Handler) DeleteTarget(c *gin.Context) {
	if err := h.repo.DeleteTarget(c.Request.Context(), c.Param("id")); err != nil {
		notFoundOr500(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

func validateTarget(t *models.ScrapeTarget) string {
	if t.URL == "" {
		return "url is required"
	}
	switch t.Kind {
	case models.TargetFacebook, models.TargetWebsite:
		return ""
	default:
		return "kind must be facebook or website"
	}
}

// ---------------- SUBSCRIBERS ----------------

func (h *Handler) ListSubscribers(c *gin.Context) {
	subs, err := h.repo.ListSubscribers(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"subscribers": subs})
}

func (h *Handler) CreateSubscriber(c *gin.Context) {
	var sub models.Subscriber
	if err := c.ShouldBindJSON(&sub); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	sub.Email = strings.TrimSpace(strings.ToLower(sub.Email))
	if sub.Email == "" || !strings.Contains(sub.Email, "@") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "a valid email is required"})
		return
	}

	if err := h.repo.CreateSubscriber(c.Request.Context(), &sub); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, sub)
}

func (h *Handler) DeleteSubscriber(c *gin.Context) {
	if err := h.repo.DeleteSubscriber(c.Request.Context(), c.Param("id")); err != nil {
		notFoundOr500(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// ---------------- DIGEST ----------------

// SendDigest triggers a digest send immediately.
func (h *Handler) SendDigest(c *gin.Context) {
	jobs, subscribers, err := h.digest.Send(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"jobs": jobs, "subscribers": subscribers})
}
