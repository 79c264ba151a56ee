package handler

import (
	"Plaza/internal/api/dto"
	"Plaza/internal/pkg/response"
	"Plaza/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	reviewService service.ReviewService
}

func NewReviewHandler(review service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: review}
}

func (s *ReviewHandler) ListPending(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	items, err := s.reviewService.ListPending(c, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, items)
}

func (s *ReviewHandler) Resolve(c *gin.Context) {
	userID := c.GetUint64("user_id")
	itemID := c.Param("item_id")

	var req dto.ResolveReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	if err := s.reviewService.Resolve(c, userID, itemID, req.Approve); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
