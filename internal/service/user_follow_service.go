package service

import (
	"Plaza/internal/model"
	"Plaza/internal/repository"
	"context"
	log "log/slog"
)

type UserFollowService interface {
	Follow(ctx context.Context, followerID, targetID uint64) error
	Unfollow(ctx context.Context, followerID, targetID uint64) error
}

type userFollowServiceImpl struct {
	followRepo          repository.UserFollowRepo
	userRepo            repository.UserRepo
	notificationService NotificationService
}

func NewUserFollowService(
	follow repository.UserFollowRepo,
	user repository.UserRepo,
	notification NotificationService,
) UserFollowService {
	return &userFollowServiceImpl{
		followRepo:          follow,
		userRepo:            user,
		notificationService: notification,
	}
}

func (s *userFollowServiceImpl) Follow(ctx context.Context, followerID, targetID uint64) error {
	if followerID == targetID {
		return ErrUserFollowSelf
	}

	target, err := s.userRepo.GetUserByID(ctx, targetID)
	if err != nil {
		return err
	}
	if target == nil {
		return ErrUserNotFound
	}

	exists, err := s.followRepo.CheckFollowExists(ctx, followerID, targetID)
	if err != nil {
		return err
	}
	if exists {
		return ErrActionDuplicate
	}

	if err := s.followRepo.CreateFollow(ctx, &model.UserFollow{
		FollowerID:  followerID,
		FollowingID: targetID,
	}); err != nil {
		return err
	}

	if err := s.notificationService.CreateFollowNotification(ctx, targetID, followerID); err != nil {
		log.Warn("failed to create follow notification", "targetID", targetID, "actorID", followerID, "err", err)
	}
	return nil
}

func (s *userFollowServiceImpl) Unfollow(ctx context.Context, followerID, targetID uint64) error {
	deleted, err := s.followRepo.DeleteFollow(ctx, followerID, targetID)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return nil
	}

	if err := s.notificationService.RemoveFollowNotification(ctx, targetID, followerID); err != nil {
		log.Warn("failed to retract follow notification", "targetID", targetID, "actorID", followerID, "err", err)
	}
	return nil
}
