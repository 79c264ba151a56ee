package handler

import (
	"Plaza/internal/api/dto"
	"Plaza/internal/pkg/response"
	"Plaza/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	notificationService service.NotificationService
}

func NewNotificationHandler(notification service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notification}
}

func (s *NotificationHandler) GetAll(c *gin.Context) {
	userID := c.GetUint64("user_id")

	var page dto.PageQuery
	if err := c.ShouldBindQuery(&page); err != nil {
		response.Error(c, err)
		return
	}

	list, err := s.notificationService.GetAll(c, userID, page.Page, page.PageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, list)
}

func (s *NotificationHandler) GetUnread(c *gin.Context) {
	userID := c.GetUint64("user_id")

	list, err := s.notificationService.GetUnread(c, userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, list)
}

func (s *NotificationHandler) CountUnread(c *gin.Context) {
	userID := c.GetUint64("user_id")

	count, err := s.notificationService.CountUnread(c, userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, count)
}

func (s *NotificationHandler) MarkRead(c *gin.Context) {
	userID := c.GetUint64("user_id")
	id, err := strconv.ParseUint(c.Param("notification_id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	if err := s.notificationService.MarkRead(c, userID, id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *NotificationHandler) MarkAllRead(c *gin.Context) {
	userID := c.GetUint64("user_id")

	if err := s.notificationService.MarkAllRead(c, userID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *NotificationHandler) Delete(c *gin.Context) {
	userID := c.GetUint64("user_id")
	id, err := strconv.ParseUint(c.Param("notification_id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	if err := s.notificationService.Delete(c, userID, id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// SweepOld is an admin-triggered retention pass; the cron job runs the
// same operation on a schedule.
func (s *NotificationHandler) SweepOld(c *gin.Context) {
	deleted, err := s.notificationService.SweepOld(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, map[string]int64{"deleted": deleted})
}
