package service

import (
	"Plaza/internal/api/dto"
	"Plaza/internal/pkg/consts"
	"Plaza/internal/pkg/mongo"
	"Plaza/internal/repository"
	"context"
	log "log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ReviewService drives the human moderation queue. Resolving a post
// item flips the post's visibility status to match the verdict.
type ReviewService interface {
	ListPending(ctx context.Context, limit int) ([]*dto.ReviewItemDTO, error)
	Resolve(ctx context.Context, reviewerID uint64, itemID string, approve bool) error
}

type reviewServiceImpl struct {
	reviewRepo mongo.ReviewRepo
	postRepo   repository.PostRepo
}

func NewReviewService(review mongo.ReviewRepo, post repository.PostRepo) ReviewService {
	return &reviewServiceImpl{
		reviewRepo: review,
		postRepo:   post,
	}
}

func (s *reviewServiceImpl) ListPending(ctx context.Context, limit int) ([]*dto.ReviewItemDTO, error) {
	items, err := s.reviewRepo.ListPending(ctx, limit)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.ReviewItemDTO, 0, len(items))
	for _, item := range items {
		res = append(res, &dto.ReviewItemDTO{
			ID:         item.ID.Hex(),
			ContentID:  item.ContentID,
			Kind:       item.Kind,
			AuthorID:   item.AuthorID,
			Text:       item.Text,
			ImageURL:   item.ImageURL,
			Reason:     item.Reason,
			Categories: item.Categories,
			Confidence: item.Confidence,
			Fallback:   item.Fallback,
			CreatedAt:  item.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return res, nil
}

func (s *reviewServiceImpl) Resolve(ctx context.Context, reviewerID uint64, itemID string, approve bool) error {
	if _, err := primitive.ObjectIDFromHex(itemID); err != nil {
		return ErrParamInvalid
	}

	target, err := s.reviewRepo.GetByID(ctx, itemID)
	if err != nil {
		return err
	}
	if target == nil || target.Status != mongo.ReviewStatusPending {
		return ErrReviewItemNotFound
	}

	status := mongo.ReviewStatusApproved
	if !approve {
		status = mongo.ReviewStatusRejected
	}
	if err := s.reviewRepo.Resolve(ctx, itemID, reviewerID, status); err != nil {
		return err
	}

	if target.Kind == mongo.ReviewKindPost || target.Kind == mongo.ReviewKindImage {
		s.applyPostVerdict(ctx, target.ContentID, approve)
	}
	return nil
}

func (s *reviewServiceImpl) applyPostVerdict(ctx context.Context, postID uint64, approve bool) {
	post, err := s.postRepo.GetPost(ctx, postID)
	if err != nil || post == nil {
		log.Warn("reviewed post no longer available", "postID", postID, "err", err)
		return
	}

	if approve {
		post.Status = consts.PostStatusPublished
	} else {
		post.Status = consts.PostStatusRejected
	}
	if err := s.postRepo.UpdatePost(ctx, post); err != nil {
		log.Warn("failed to apply review verdict", "postID", postID, "err", err)
	}
}
