package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/retirepath-backend/internal/requestdata"
	"github.com/yungbote/retirepath-backend/internal/services"
)

type RoadmapHandler struct {
	roadmapService  services.RoadmapService
	progressService services.ProgressService
}

func NewRoadmapHandler(roadmapService services.RoadmapService, progressService services.ProgressService) *RoadmapHandler {
	return &RoadmapHandler{roadmapService: roadmapService, progressService: progressService}
}

func (rh *RoadmapHandler) Generate(c *gin.Context) {
	rh.generate(c, services.ActionGenerate)
}

func (rh *RoadmapHandler) Regenerate(c *gin.Context) {
	rh.generate(c, services.ActionRegenerate)
}

func (rh *RoadmapHandler) generate(c *gin.Context, action services.GenerationAction) {
	rd := requestdata.GetRequestData(c.Request.Context())
	view, err := rh.roadmapService.Generate(c.Request.Context(), rd.UserID, action)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"roadmap": view})
}

func (rh *RoadmapHandler) GetLatest(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	view, err := rh.roadmapService.Latest(c.Request.Context(), rd.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	if view == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no roadmap generated"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"roadmap": view})
}

// SetCheck flips one task's checked state and returns the recomputed
// progress.
func (rh *RoadmapHandler) SetCheck(c *gin.Context) {
	roadmapID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid roadmap id"})
		return
	}
	var req struct {
		Month     int   `json:"month"`
		TaskIndex *int  `json:"task_index"`
		Checked   *bool `json:"checked"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.TaskIndex == nil || req.Checked == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "task_index and checked are required"})
		return
	}
	rd := requestdata.GetRequestData(c.Request.Context())
	progress, err := rh.progressService.SetChecked(c.Request.Context(), rd.UserID, roadmapID, req.Month, *req.TaskIndex, *req.Checked)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"progress": progress})
}

func (rh *RoadmapHandler) GetChecks(c *gin.Context) {
	roadmapID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid roadmap id"})
		return
	}
	rd := requestdata.GetRequestData(c.Request.Context())
	checks, err := rh.progressService.LoadAll(c.Request.Context(), rd.UserID, roadmapID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"checks": checks})
}
