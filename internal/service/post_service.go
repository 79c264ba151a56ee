package service

import (
	"Plaza/internal/api/dto"
	"Plaza/internal/model"
	"Plaza/internal/pkg/consts"
	"Plaza/internal/pkg/minio"
	"Plaza/internal/pkg/moderation"
	"Plaza/internal/pkg/mongo"
	"Plaza/internal/repository"
	"context"
	log "log/slog"
	"time"
)

// Indirection over the moderation pipeline so tests can stub it.
var (
	moderatePost    = moderation.ModeratePost
	moderateImage   = moderation.ModerateImage
	moderateComment = moderation.ModerateComment
)

type PostService interface {
	CreatePost(ctx context.Context, userID uint64, req *dto.CreatePostRequest) (*dto.CreatePostResponse, error)
	GetPost(ctx context.Context, postID uint64) (*dto.PostDTO, error)
	GetUserPosts(ctx context.Context, userID uint64, page, pageSize int) ([]*dto.PostDTO, error)
	DeletePost(ctx context.Context, userID, postID uint64) error
}

type postServiceImpl struct {
	postRepo   repository.PostRepo
	userRepo   repository.UserRepo
	reviewRepo mongo.ReviewRepo
}

func NewPostService(post repository.PostRepo, user repository.UserRepo, review mongo.ReviewRepo) PostService {
	return &postServiceImpl{
		postRepo:   post,
		userRepo:   user,
		reviewRepo: review,
	}
}

// CreatePost moderates the text (and image, when present) before the
// row is written. The post always gets stored; the verdict only
// decides its visibility status. A rejection is reported to the
// author with the reason, and anything demoted to review or published
// through the fail-open path is parked for a human moderator.
func (s *postServiceImpl) CreatePost(ctx context.Context, userID uint64, req *dto.CreatePostRequest) (*dto.CreatePostResponse, error) {
	content := moderatePost(ctx, req.Content, req.Category)

	var image *moderation.ContentDecision
	if req.ImageURL != nil && *req.ImageURL != "" {
		image = moderateImage(ctx, *req.ImageURL, req.Content)
	}

	decision := moderation.Combine(content, image)

	post := &model.Post{
		UserID:               userID,
		Content:              req.Content,
		Category:             req.Category,
		ImageURL:             req.ImageURL,
		Status:               statusFor(decision.Action),
		ModerationAction:     decision.Action,
		ModerationReason:     decision.Reason,
		ModerationConfidence: decision.Confidence,
		FlaggedCategories:    decision.FlaggedCategories,
	}
	if err := s.postRepo.CreatePost(ctx, post); err != nil {
		return nil, err
	}

	if decision.Action == moderation.ActionReview || decision.Action == moderation.ActionFallback {
		s.enqueueReview(ctx, post, decision)
	}

	resp := &dto.CreatePostResponse{
		Moderation: &dto.ModerationResultDTO{
			Approved:          decision.Approved,
			Action:            decision.Action,
			Reason:            decision.Reason,
			Confidence:        decision.Confidence,
			FlaggedCategories: decision.FlaggedCategories,
		},
	}
	if decision.Action != moderation.ActionReject {
		resp.Post = toPostDTO(post, nil)
	}
	return resp, nil
}

func statusFor(action string) int8 {
	switch action {
	case moderation.ActionReject:
		return consts.PostStatusRejected
	case moderation.ActionReview:
		return consts.PostStatusReview
	default:
		return consts.PostStatusPublished
	}
}

func (s *postServiceImpl) enqueueReview(ctx context.Context, post *model.Post, decision *moderation.ContentDecision) {
	if s.reviewRepo == nil {
		return
	}
	item := &mongo.ReviewItem{
		ContentID:  post.ID,
		Kind:       mongo.ReviewKindPost,
		AuthorID:   post.UserID,
		Text:       post.Content,
		Reason:     decision.Reason,
		Categories: decision.FlaggedCategories,
		Confidence: decision.Confidence,
		Fallback:   decision.Action == moderation.ActionFallback,
	}
	if post.ImageURL != nil {
		item.ImageURL = *post.ImageURL
	}
	if err := s.reviewRepo.Enqueue(ctx, item); err != nil {
		log.Warn("failed to enqueue review item", "postID", post.ID, "err", err)
	}
}

func (s *postServiceImpl) GetPost(ctx context.Context, postID uint64) (*dto.PostDTO, error) {
	post, err := s.postRepo.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	if post.Status == consts.PostStatusRejected {
		return nil, ErrPostRejected
	}

	author, err := s.userRepo.GetUserByID(ctx, post.UserID)
	if err != nil {
		return nil, err
	}
	return toPostDTO(post, author), nil
}

func (s *postServiceImpl) GetUserPosts(ctx context.Context, userID uint64, page, pageSize int) ([]*dto.PostDTO, error) {
	posts, err := s.postRepo.GetPostsByUserID(ctx, userID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}

	author, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.PostDTO, 0, len(posts))
	for _, p := range posts {
		if p.Status == consts.PostStatusRejected {
			continue
		}
		res = append(res, toPostDTO(p, author))
	}
	return res, nil
}

func (s *postServiceImpl) DeletePost(ctx context.Context, userID, postID uint64) error {
	post, err := s.postRepo.GetPost(ctx, postID)
	if err != nil {
		return err
	}
	if post == nil {
		return ErrPostNotFound
	}
	if post.UserID != userID {
		return UnauthorizedError
	}
	return s.postRepo.DeletePost(ctx, postID)
}

func toPostDTO(post *model.Post, author *model.User) *dto.PostDTO {
	d := &dto.PostDTO{
		ID:        post.ID,
		Content:   post.Content,
		Category:  post.Category,
		ImageURL:  post.ImageURL,
		Status:    post.Status,
		CreatedAt: post.CreatedAt.UTC().Format(time.RFC3339),
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
