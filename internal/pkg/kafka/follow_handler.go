package kafka

import (
	"Plaza/internal/service"
	"context"
	log "log/slog"

	"github.com/IBM/sarama"
)

// FollowsHandler consumes user_follows binlog events and keeps follow
// notifications in sync with the relation table.
type FollowsHandler struct {
	notificationService service.NotificationService
}

func NewFollowsHandler(notificationService service.NotificationService) *FollowsHandler {
	return &FollowsHandler{
		notificationService: notificationService,
	}
}

func (s *FollowsHandler) Setup(sarama.ConsumerGroupSession) error {
	log.Info("follows consumer setup")
	return nil
}

func (s *FollowsHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Info("follows consumer cleanup")
	return nil
}

func (s *FollowsHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	log.Info("topic-follows consume claim")
	err := pullMessageBatch(session, claim, s.logic)
	if err != nil {
		log.Error("topic-follows process batch error", "err", err)
		return err
	}
	return nil
}

func (s *FollowsHandler) logic(ctx context.Context, msg *sarama.ConsumerMessage) error {
	canalMsg, err := ToCanalMessage(msg, "user_follows")
	if err != nil {
		return err
	}

	switch canalMsg.Type {
	case INSERT:
		return s.handleInsert(ctx, canalMsg)
	case DELETE:
		return s.handleDelete(ctx, canalMsg)
	default:
		return nil
	}
}

func (s *FollowsHandler) handleInsert(ctx context.Context, msg *CanalMessage) error {
	if len(msg.Data) == 0 {
		return nil
	}
	row := msg.Data[0]
	followerID := StrToUint64(row["follower_id"])
	followingID := StrToUint64(row["following_id"])
	if followerID == 0 || followingID == 0 {
		return nil
	}

	if err := s.notificationService.CreateFollowNotification(ctx, followingID, followerID); err != nil {
		log.ErrorContext(ctx, "failed to create follow notification", "followerID", followerID, "followingID", followingID, "err", err)
		return err
	}

	log.InfoContext(ctx, "follow event processed", "followerID", followerID, "followingID", followingID)
	return nil
}

func (s *FollowsHandler) handleDelete(ctx context.Context, msg *CanalMessage) error {
	if len(msg.Data) == 0 {
		return nil
	}
	row := msg.Data[0]
	followerID := StrToUint64(row["follower_id"])
	followingID := StrToUint64(row["following_id"])
	if followerID == 0 || followingID == 0 {
		return nil
	}

	if err := s.notificationService.RemoveFollowNotification(ctx, followingID, followerID); err != nil {
		log.ErrorContext(ctx, "failed to retract follow notification", "followerID", followerID, "followingID", followingID, "err", err)
		return err
	}

	log.InfoContext(ctx, "unfollow event processed", "followerID", followerID, "followingID", followingID)
	return nil
}
