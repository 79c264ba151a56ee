package handler

import (
	"Plaza/internal/pkg/response"
	"Plaza/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type UserFollowHandler struct {
	followService service.UserFollowService
}

func NewUserFollowHandler(follow service.UserFollowService) *UserFollowHandler {
	return &UserFollowHandler{followService: follow}
}

func (s *UserFollowHandler) Follow(c *gin.Context) {
	userID := c.GetUint64("user_id")
	targetID, err := strconv.ParseUint(c.Param("following_id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	if err := s.followService.Follow(c, userID, targetID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *UserFollowHandler) Unfollow(c *gin.Context) {
	userID := c.GetUint64("user_id")
	targetID, err := strconv.ParseUint(c.Param("following_id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	if err := s.followService.Unfollow(c, userID, targetID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
