package service

import (
	"Plaza/internal/api/dto"
	"Plaza/internal/model"
	"Plaza/internal/pkg/minio"
	"Plaza/internal/pkg/mongo"
	"Plaza/internal/repository"
	"context"
	log "log/slog"
	"time"
)

type PostActionService interface {
	LikePost(ctx context.Context, userID, postID uint64) error
	UnlikePost(ctx context.Context, userID, postID uint64) error
	CreateComment(ctx context.Context, userID, postID uint64, req *dto.CreateCommentRequest) (*dto.CommentDTO, error)
	GetComments(ctx context.Context, postID uint64, page, pageSize int) ([]*dto.CommentDTO, error)
	DeleteComment(ctx context.Context, userID, commentID uint64) error
}

type postActionServiceImpl struct {
	actionRepo          repository.PostActionRepo
	postRepo            repository.PostRepo
	userRepo            repository.UserRepo
	reviewRepo          mongo.ReviewRepo
	notificationService NotificationService
}

func NewPostActionService(
	action repository.PostActionRepo,
	post repository.PostRepo,
	user repository.UserRepo,
	review mongo.ReviewRepo,
	notification NotificationService,
) PostActionService {
	return &postActionServiceImpl{
		actionRepo:          action,
		postRepo:            post,
		userRepo:            user,
		reviewRepo:          review,
		notificationService: notification,
	}
}

// LikePost records the like and notifies the post owner. A failed
// notification never rolls back the like.
func (s *postActionServiceImpl) LikePost(ctx context.Context, userID, postID uint64) error {
	post, err := s.postRepo.GetPost(ctx, postID)
	if err != nil {
		return err
	}
	if post == nil {
		return ErrPostNotFound
	}

	exists, err := s.actionRepo.CheckLikeExists(ctx, userID, postID)
	if err != nil {
		return err
	}
	if exists {
		return ErrActionDuplicate
	}

	if err := s.actionRepo.CreateLike(ctx, &model.Like{UserID: userID, PostID: postID}); err != nil {
		return err
	}

	if err := s.notificationService.CreateLikeNotification(ctx, postID, userID); err != nil {
		log.Warn("failed to create like notification", "postID", postID, "actorID", userID, "err", err)
	}
	return nil
}

func (s *postActionServiceImpl) UnlikePost(ctx context.Context, userID, postID uint64) error {
	deleted, err := s.actionRepo.DeleteLike(ctx, userID, postID)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return nil
	}

	if err := s.notificationService.RemoveLikeNotification(ctx, postID, userID); err != nil {
		log.Warn("failed to retract like notification", "postID", postID, "actorID", userID, "err", err)
	}
	return nil
}

// CreateComment censors the text before storing it. The stored content
// is always the censored form; the original never leaves this call.
func (s *postActionServiceImpl) CreateComment(ctx context.Context, userID, postID uint64, req *dto.CreateCommentRequest) (*dto.CommentDTO, error) {
	post, err := s.postRepo.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	decision := moderateComment(ctx, req.Content)

	comment := &model.PostComment{
		PostID:       postID,
		UserID:       userID,
		Content:      decision.RedactedText,
		WasRedacted:  decision.WasRedacted,
		Severity:     decision.Severity,
		FlaggedCount: decision.FlaggedCount,
		NeedsReview:  decision.NeedsReview,
	}
	if err := s.actionRepo.CreateComment(ctx, comment); err != nil {
		return nil, err
	}

	if decision.NeedsReview && s.reviewRepo != nil {
		item := &mongo.ReviewItem{
			ContentID: comment.ID,
			Kind:      mongo.ReviewKindComment,
			AuthorID:  userID,
			Text:      req.Content,
			Reason:    decision.Reason,
		}
		if err := s.reviewRepo.Enqueue(ctx, item); err != nil {
			log.Warn("failed to enqueue comment for review", "commentID", comment.ID, "err", err)
		}
	}

	if err := s.notificationService.CreateCommentNotification(ctx, postID, userID); err != nil {
		log.Warn("failed to create comment notification", "postID", postID, "actorID", userID, "err", err)
	}

	author, _ := s.userRepo.GetUserByID(ctx, userID)
	return toCommentDTO(comment, author), nil
}

func (s *postActionServiceImpl) GetComments(ctx context.Context, postID uint64, page, pageSize int) ([]*dto.CommentDTO, error) {
	comments, err := s.actionRepo.GetCommentsByPostID(ctx, postID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}

	authorIDs := make([]uint64, 0, len(comments))
	seen := make(map[uint64]bool, len(comments))
	for _, c := range comments {
		if !seen[c.UserID] {
			seen[c.UserID] = true
			authorIDs = append(authorIDs, c.UserID)
		}
	}

	authors := make(map[uint64]*model.User, len(authorIDs))
	if len(authorIDs) > 0 {
		users, err := s.userRepo.GetUsersByIDs(ctx, authorIDs)
		if err != nil {
			log.Warn("failed to resolve comment authors", "err", err)
		}
		for _, u := range users {
			authors[u.ID] = u
		}
	}

	res := make([]*dto.CommentDTO, 0, len(comments))
	for _, c := range comments {
		res = append(res, toCommentDTO(c, authors[c.UserID]))
	}
	return res, nil
}

func (s *postActionServiceImpl) DeleteComment(ctx context.Context, userID, commentID uint64) error {
	comment, err := s.actionRepo.GetCommentByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment == nil {
		return ErrCommentNotFound
	}
	if comment.UserID != userID {
		return UnauthorizedError
	}
	return s.actionRepo.DeleteComment(ctx, commentID)
}

func toCommentDTO(comment *model.PostComment, author *model.User) *dto.CommentDTO {
	d := &dto.CommentDTO{
		ID:          comment.ID,
		PostID:      comment.PostID,
		Content:     comment.Content,
		WasRedacted: comment.WasRedacted,
		Severity:    comment.Severity,
		CreatedAt:   comment.CreatedAt.UTC().Format(time.RFC3339),
	}
	if author != nil {
		d.Author = &dto.UserSimpleDTO{
			ID:        author.ID,
			Nickname:  author.Nickname,
			AvatarURL: minio.GetPublicURL(author.AvatarURL),
		}
	}
	return d
}
