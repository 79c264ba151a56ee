package repository

import (
	"Plaza/internal/model"
	"Plaza/internal/pkg/consts"
	"context"
	"time"

	"gorm.io/gorm"
)

// DedupWindow is the trailing interval within which a duplicate
// like/follow notification is suppressed. Kept as a hard constant for
// behavioral parity with the original service.
const DedupWindow = 24 * time.Hour

type NotificationRepo interface {
	// Create inserts a notification row. For like/follow kinds it
	// first checks the dedup window and returns created=false (no
	// error) when a matching row already exists. Comments always
	// insert.
	Create(ctx context.Context, n *model.Notification) (bool, error)
	// DeleteByAction removes the row(s) written for a since-undone
	// action and reports how many were removed.
	DeleteByAction(ctx context.Context, recipientID, actorID uint64, kind string, targetID *uint64) (int64, error)
	GetByID(ctx context.Context, id uint64) (*model.Notification, error)
	ListPage(ctx context.Context, recipientID uint64, limit, offset int) ([]*model.Notification, error)
	ListUnread(ctx context.Context, recipientID uint64, limit, offset int) ([]*model.Notification, error)
	CountUnread(ctx context.Context, recipientID uint64) (int64, error)
	MarkRead(ctx context.Context, id, recipientID uint64) (int64, error)
	MarkAllRead(ctx context.Context, recipientID uint64) (int64, error)
	Delete(ctx context.Context, id, recipientID uint64) (int64, error)
	DeleteOlderThan(ctx context.Context, age time.Duration) (int64, error)
}

type NotificationRepoImpl struct {
	db *gorm.DB
}

func NewNotificationRepo(db *gorm.DB) NotificationRepo {
	return &NotificationRepoImpl{db: db}
}

// dedupable reports whether a kind participates in the dedup window.
// Every comment yields its own notification.
func dedupable(kind string) bool {
	return kind == consts.NotificationKindLike || kind == consts.NotificationKindFollow
}

// Create inserts the row unless an identical like/follow notification
// exists within the trailing window. Suppression is a defined no-op
// outcome, not an error.
func (s *NotificationRepoImpl) Create(ctx context.Context, n *model.Notification) (bool, error) {
	if dedupable(n.Kind) {
		var count int64
		query := s.db.WithContext(ctx).
			Model(&model.Notification{}).
			Where("recipient_id = ? AND de_usuario_id = ? AND type = ? AND created_at > ?",
				n.RecipientID, n.ActorID, n.Kind, time.Now().Add(-DedupWindow))
		if n.TargetID != nil {
			query = query.Where("target_id = ?", *n.TargetID)
		} else {
			query = query.Where("target_id IS NULL")
		}
		if err := query.Count(&count).Error; err != nil {
			return false, err
		}
		if count > 0 {
			return false, nil
		}
	}

	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}
	if err := s.db.WithContext(ctx).Create(n).Error; err != nil {
		return false, err
	}
	return true, nil
}

// DeleteByAction removes the matching row(s) on the undo path.
func (s *NotificationRepoImpl) DeleteByAction(ctx context.Context, recipientID, actorID uint64, kind string, targetID *uint64) (int64, error) {
	query := s.db.WithContext(ctx).
		Where("recipient_id = ? AND de_usuario_id = ? AND type = ?", recipientID, actorID, kind)
	if targetID != nil {
		query = query.Where("target_id = ?", *targetID)
	} else {
		query = query.Where("target_id IS NULL")
	}
	result := query.Delete(&model.Notification{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// GetByID fetches a single notification; missing rows yield (nil, nil).
func (s *NotificationRepoImpl) GetByID(ctx context.Context, id uint64) (*model.Notification, error) {
	var n model.Notification
	result := s.db.WithContext(ctx).First(&n, id)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, result.Error
	}
	return &n, nil
}

// ListPage returns the recipient's notifications newest-first.
func (s *NotificationRepoImpl) ListPage(ctx context.Context, recipientID uint64, limit, offset int) ([]*model.Notification, error) {
	var list []*model.Notification
	result := s.db.WithContext(ctx).
		Where("recipient_id = ?", recipientID).
		Order("created_at desc").
		Limit(limit).
		Offset(offset).
		Find(&list)
	if result.Error != nil {
		return nil, result.Error
	}
	return list, nil
}

// ListUnread returns only unread notifications, newest-first.
func (s *NotificationRepoImpl) ListUnread(ctx context.Context, recipientID uint64, limit, offset int) ([]*model.Notification, error) {
	var list []*model.Notification
	result := s.db.WithContext(ctx).
		Where("recipient_id = ? AND `read` = ?", recipientID, false).
		Order("created_at desc").
		Limit(limit).
		Offset(offset).
		Find(&list)
	if result.Error != nil {
		return nil, result.Error
	}
	return list, nil
}

// CountUnread recomputes the unread counter from the store. The store
// is the single source of truth for read state.
func (s *NotificationRepoImpl) CountUnread(ctx context.Context, recipientID uint64) (int64, error) {
	var count int64
	result := s.db.WithContext(ctx).
		Model(&model.Notification{}).
		Where("recipient_id = ? AND `read` = ?", recipientID, false).
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}
	return count, nil
}

// MarkRead flips a single row, scoped to the owning recipient.
func (s *NotificationRepoImpl) MarkRead(ctx context.Context, id, recipientID uint64) (int64, error) {
	result := s.db.WithContext(ctx).
		Model(&model.Notification{}).
		Where("id = ? AND recipient_id = ?", id, recipientID).
		Update("read", true)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// MarkAllRead flips every unread row for the recipient.
func (s *NotificationRepoImpl) MarkAllRead(ctx context.Context, recipientID uint64) (int64, error) {
	result := s.db.WithContext(ctx).
		Model(&model.Notification{}).
		Where("recipient_id = ? AND `read` = ?", recipientID, false).
		Update("read", true)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// Delete removes one row, scoped to the owning recipient.
func (s *NotificationRepoImpl) Delete(ctx context.Context, id, recipientID uint64) (int64, error) {
	result := s.db.WithContext(ctx).
		Where("id = ? AND recipient_id = ?", id, recipientID).
		Delete(&model.Notification{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// DeleteOlderThan is the retention sweep.
func (s *NotificationRepoImpl) DeleteOlderThan(ctx context.Context, age time.Duration) (int64, error) {
	result := s.db.WithContext(ctx).
		Where("created_at < ?", time.Now().Add(-age)).
		Delete(&model.Notification{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
