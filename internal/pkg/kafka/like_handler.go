package kafka

import (
	"Plaza/internal/service"
	"context"
	log "log/slog"

	"github.com/IBM/sarama"
)

// LikesHandler consumes like-row binlog events and drives the notification
// fan-out. The notification layer deduplicates, so replays and the direct
// API path landing the same event are harmless.
type LikesHandler struct {
	notificationService service.NotificationService
}

func NewLikesHandler(notificationService service.NotificationService) *LikesHandler {
	return &LikesHandler{
		notificationService: notificationService,
	}
}

func (s *LikesHandler) Setup(sarama.ConsumerGroupSession) error {
	log.Info("likes consumer setup")
	return nil
}

func (s *LikesHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Info("likes consumer cleanup")
	return nil
}

func (s *LikesHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	log.Info("topic-likes consume claim")
	err := pullMessageBatch(session, claim, s.logic)
	if err != nil {
		log.Error("topic-likes process batch error", "err", err)
		return err
	}
	return nil
}

func (s *LikesHandler) logic(ctx context.Context, msg *sarama.ConsumerMessage) error {
	canalMsg, err := ToCanalMessage(msg, "likes")
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

func (s *LikesHandler) handleInsert(ctx context.Context, msg *CanalMessage) error {
	if len(msg.Data) == 0 {
		return nil
	}
	row := msg.Data[0]
	userID, postID := StrToUint64(row["user_id"]), StrToUint64(row["post_id"])
	if userID == 0 || postID == 0 {
		return nil
	}

	if err := s.notificationService.CreateLikeNotification(ctx, postID, userID); err != nil {
		log.ErrorContext(ctx, "failed to create like notification", "postID", postID, "userID", userID, "err", err)
		return err
	}

	log.InfoContext(ctx, "like event processed", "userID", userID, "postID", postID)
	return nil
}

func (s *LikesHandler) handleDelete(ctx context.Context, msg *CanalMessage) error {
	if len(msg.Data) == 0 {
		return nil
	}
	row := msg.Data[0]
	userID, postID := StrToUint64(row["user_id"]), StrToUint64(row["post_id"])
	if userID == 0 || postID == 0 {
		return nil
	}

	if err := s.notificationService.RemoveLikeNotification(ctx, postID, userID); err != nil {
		log.ErrorContext(ctx, "failed to retract like notification", "postID", postID, "userID", userID, "err", err)
		return err
	}

	log.InfoContext(ctx, "unlike event processed", "userID", userID, "postID", postID)
	return nil
}
