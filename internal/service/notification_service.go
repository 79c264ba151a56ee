package service

import (
	"Plaza/internal/api/config"
	"Plaza/internal/api/dto"
	"Plaza/internal/model"
	"Plaza/internal/pkg/consts"
	"Plaza/internal/pkg/minio"
	"Plaza/internal/pkg/redis"
	"Plaza/internal/repository"
	"context"
	log "log/slog"
	"strconv"
	"time"

	"github.com/jinzhu/copier"
)

// Pusher delivers named events to a recipient's live connections.
// Satisfied by hub.Hub.
type Pusher interface {
	Push(recipientID uint64, event string, data any) error
}

type NotificationService interface {
	CreateLikeNotification(ctx context.Context, postID, actorID uint64) error
	CreateCommentNotification(ctx context.Context, postID, actorID uint64) error
	CreateFollowNotification(ctx context.Context, targetID, actorID uint64) error
	RemoveLikeNotification(ctx context.Context, postID, actorID uint64) error
	RemoveFollowNotification(ctx context.Context, targetID, actorID uint64) error

	GetAll(ctx context.Context, recipientID uint64, page, pageSize int) ([]*dto.NotificationDTO, error)
	GetUnread(ctx context.Context, recipientID uint64) ([]*dto.NotificationDTO, error)
	CountUnread(ctx context.Context, recipientID uint64) (*dto.UnreadCountDTO, error)
	MarkRead(ctx context.Context, recipientID, id uint64) error
	MarkAllRead(ctx context.Context, recipientID uint64) error
	Delete(ctx context.Context, recipientID, id uint64) error
	SweepOld(ctx context.Context) (int64, error)
}

type notificationServiceImpl struct {
	notificationRepo repository.NotificationRepo
	userRepo         repository.UserRepo
	postRepo         repository.PostRepo
	pusher           Pusher
}

func NewNotificationService(
	notification repository.NotificationRepo,
	user repository.UserRepo,
	post repository.PostRepo,
	pusher Pusher,
) NotificationService {
	return &notificationServiceImpl{
		notificationRepo: notification,
		userRepo:         user,
		postRepo:         post,
		pusher:           pusher,
	}
}

// CreateLikeNotification notifies the post owner that someone liked
// their post. Self-likes and duplicates inside the dedup window are
// silent no-ops.
func (s *notificationServiceImpl) CreateLikeNotification(ctx context.Context, postID, actorID uint64) error {
	post, err := s.postRepo.GetPost(ctx, postID)
	if err != nil {
		return err
	}
	if post == nil {
		return ErrPostNotFound
	}
	return s.create(ctx, &model.Notification{
		RecipientID: post.UserID,
		ActorID:     actorID,
		Kind:        consts.NotificationKindLike,
		TargetID:    &postID,
		Message:     "le gusto tu publicacion",
	})
}

// CreateCommentNotification notifies the post owner about a new
// comment. Comments are never deduplicated.
func (s *notificationServiceImpl) CreateCommentNotification(ctx context.Context, postID, actorID uint64) error {
	post, err := s.postRepo.GetPost(ctx, postID)
	if err != nil {
		return err
	}
	if post == nil {
		return ErrPostNotFound
	}
	return s.create(ctx, &model.Notification{
		RecipientID: post.UserID,
		ActorID:     actorID,
		Kind:        consts.NotificationKindComment,
		TargetID:    &postID,
		Message:     "comento tu publicacion",
	})
}

func (s *notificationServiceImpl) CreateFollowNotification(ctx context.Context, targetID, actorID uint64) error {
	target, err := s.userRepo.GetUserByID(ctx, targetID)
	if err != nil {
		return err
	}
	if target == nil {
		return ErrUserNotFound
	}
	return s.create(ctx, &model.Notification{
		RecipientID: targetID,
		ActorID:     actorID,
		Kind:        consts.NotificationKindFollow,
		Message:     "empezo a seguirte",
	})
}

// create runs the shared insert-then-push sequence. Push failures are
// logged and swallowed; storage failures propagate.
func (s *notificationServiceImpl) create(ctx context.Context, n *model.Notification) error {
	if n.RecipientID == n.ActorID {
		return nil
	}

	created, err := s.notificationRepo.Create(ctx, n)
	if err != nil {
		return err
	}
	if !created {
		return nil
	}

	s.pushNew(ctx, n)
	s.pushCounter(ctx, n.RecipientID)
	return nil
}

// RemoveLikeNotification retracts the like notification when a like is
// undone. Only the counter is re-pushed; clients reconcile the list on
// their next fetch.
func (s *notificationServiceImpl) RemoveLikeNotification(ctx context.Context, postID, actorID uint64) error {
	post, err := s.postRepo.GetPost(ctx, postID)
	if err != nil {
		return err
	}
	if post == nil || post.UserID == actorID {
		return nil
	}

	deleted, err := s.notificationRepo.DeleteByAction(ctx, post.UserID, actorID, consts.NotificationKindLike, &postID)
	if err != nil {
		return err
	}
	if deleted > 0 {
		s.pushCounter(ctx, post.UserID)
	}
	return nil
}

func (s *notificationServiceImpl) RemoveFollowNotification(ctx context.Context, targetID, actorID uint64) error {
	if targetID == actorID {
		return nil
	}

	deleted, err := s.notificationRepo.DeleteByAction(ctx, targetID, actorID, consts.NotificationKindFollow, nil)
	if err != nil {
		return err
	}
	if deleted > 0 {
		s.pushCounter(ctx, targetID)
	}
	return nil
}

func (s *notificationServiceImpl) GetAll(ctx context.Context, recipientID uint64, page, pageSize int) ([]*dto.NotificationDTO, error) {
	list, err := s.notificationRepo.ListPage(ctx, recipientID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}
	return s.enrichList(ctx, list), nil
}

func (s *notificationServiceImpl) GetUnread(ctx context.Context, recipientID uint64) ([]*dto.NotificationDTO, error) {
	list, err := s.notificationRepo.ListUnread(ctx, recipientID, 100, 0)
	if err != nil {
		return nil, err
	}
	return s.enrichList(ctx, list), nil
}

// CountUnread serves from the cache when possible; the store stays
// authoritative and repopulates the cache on a miss.
func (s *notificationServiceImpl) CountUnread(ctx context.Context, recipientID uint64) (*dto.UnreadCountDTO, error) {
	key := consts.NotificationUnreadKey + strconv.FormatUint(recipientID, 10)
	if cached, err := redis.GetInt64(ctx, key); err == nil {
		return &dto.UnreadCountDTO{Total: cached}, nil
	}

	total, err := s.refreshUnread(ctx, recipientID)
	if err != nil {
		return nil, err
	}
	return &dto.UnreadCountDTO{Total: total}, nil
}

func (s *notificationServiceImpl) MarkRead(ctx context.Context, recipientID, id uint64) error {
	n, err := s.notificationRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if n == nil {
		return ErrNotificationMissing
	}
	if n.RecipientID != recipientID {
		return UnauthorizedError
	}
	if n.Read {
		return nil
	}

	if _, err := s.notificationRepo.MarkRead(ctx, id, recipientID); err != nil {
		return err
	}
	s.pushCounter(ctx, recipientID)
	return nil
}

func (s *notificationServiceImpl) MarkAllRead(ctx context.Context, recipientID uint64) error {
	if _, err := s.notificationRepo.MarkAllRead(ctx, recipientID); err != nil {
		return err
	}
	s.pushCounter(ctx, recipientID)
	return nil
}

func (s *notificationServiceImpl) Delete(ctx context.Context, recipientID, id uint64) error {
	n, err := s.notificationRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if n == nil {
		return ErrNotificationMissing
	}
	if n.RecipientID != recipientID {
		return UnauthorizedError
	}

	if _, err := s.notificationRepo.Delete(ctx, id, recipientID); err != nil {
		return err
	}
	if !n.Read {
		s.pushCounter(ctx, recipientID)
	}
	return nil
}

// SweepOld removes notifications past the retention horizon.
func (s *notificationServiceImpl) SweepOld(ctx context.Context) (int64, error) {
	days := 30
	if config.Cfg != nil && config.Cfg.NotificationRetention > 0 {
		days = config.Cfg.NotificationRetention
	}
	return s.notificationRepo.DeleteOlderThan(ctx, time.Duration(days)*24*time.Hour)
}

func (s *notificationServiceImpl) pushNew(ctx context.Context, n *model.Notification) {
	d := s.enrich(ctx, n)
	if err := s.pusher.Push(n.RecipientID, consts.EventNewNotification, d); err != nil {
		log.Warn("failed to push notification event", "recipientID", n.RecipientID, "err", err)
	}
}

// pushCounter recomputes the unread total from the store and pushes
// it. The pushed value is authoritative-latest, never a delta.
func (s *notificationServiceImpl) pushCounter(ctx context.Context, recipientID uint64) {
	total, err := s.refreshUnread(ctx, recipientID)
	if err != nil {
		log.Warn("failed to recompute unread counter", "recipientID", recipientID, "err", err)
		return
	}
	if err := s.pusher.Push(recipientID, consts.EventCounterUpdate, dto.UnreadCountDTO{Total: total}); err != nil {
		log.Warn("failed to push counter event", "recipientID", recipientID, "err", err)
	}
}

func (s *notificationServiceImpl) refreshUnread(ctx context.Context, recipientID uint64) (int64, error) {
	total, err := s.notificationRepo.CountUnread(ctx, recipientID)
	if err != nil {
		return 0, err
	}

	key := consts.NotificationUnreadKey + strconv.FormatUint(recipientID, 10)
	if err := redis.SetWithExpiration(ctx, key, total, 10*time.Minute); err != nil {
		log.Debug("failed to cache unread counter", "recipientID", recipientID, "err", err)
	}
	return total, nil
}

func (s *notificationServiceImpl) enrich(ctx context.Context, n *model.Notification) *dto.NotificationDTO {
	d := &dto.NotificationDTO{}
	_ = copier.Copy(d, n)
	d.CreatedAt = n.CreatedAt.UTC().Format(time.RFC3339)

	actor, err := s.userRepo.GetUserByID(ctx, n.ActorID)
	if err == nil && actor != nil {
		d.ActorNickname = actor.Nickname
		d.ActorAvatar = minio.GetPublicURL(actor.AvatarURL)
	}
	return d
}

// enrichList resolves actor profiles in one query for a page of rows.
func (s *notificationServiceImpl) enrichList(ctx context.Context, list []*model.Notification) []*dto.NotificationDTO {
	actorIDs := make([]uint64, 0, len(list))
	seen := make(map[uint64]bool, len(list))
	for _, n := range list {
		if !seen[n.ActorID] {
			seen[n.ActorID] = true
			actorIDs = append(actorIDs, n.ActorID)
		}
	}

	actors := make(map[uint64]*model.User, len(actorIDs))
	if len(actorIDs) > 0 {
		users, err := s.userRepo.GetUsersByIDs(ctx, actorIDs)
		if err != nil {
			log.Warn("failed to resolve notification actors", "err", err)
		}
		for _, u := range users {
			actors[u.ID] = u
		}
	}

	res := make([]*dto.NotificationDTO, 0, len(list))
	for _, n := range list {
		d := &dto.NotificationDTO{}
		_ = copier.Copy(d, n)
		d.CreatedAt = n.CreatedAt.UTC().Format(time.RFC3339)
		if actor, ok := actors[n.ActorID]; ok {
			d.ActorNickname = actor.Nickname
			d.ActorAvatar = minio.GetPublicURL(actor.AvatarURL)
		}
		res = append(res, d)
	}
	return res
}
