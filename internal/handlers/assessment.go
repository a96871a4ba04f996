package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/retirepath-backend/internal/requestdata"
	"github.com/yungbote/retirepath-backend/internal/services"
)

type AssessmentHandler struct {
	assessmentService services.AssessmentService
}

func NewAssessmentHandler(assessmentService services.AssessmentService) *AssessmentHandler {
	return &AssessmentHandler{assessmentService: assessmentService}
}

func (ah *AssessmentHandler) GetQuestions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"questions": ah.assessmentService.Questions()})
}

func (ah *AssessmentHandler) Submit(c *gin.Context) {
	var req struct {
		Answers map[string]string `json:"answers"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	rd := requestdata.GetRequestData(c.Request.Context())
	row, err := ah.assessmentService.Submit(c.Request.Context(), rd.UserID, req.Answers)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"assessment_id": row.ID, "created_at": row.CreatedAt})
}

func (ah *AssessmentHandler) GetLatest(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	res, err := ah.assessmentService.Latest(c.Request.Context(), rd.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	if res == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no assessment submitted"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": res})
}
