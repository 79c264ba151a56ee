package service

import (
	"Plaza/internal/api/dto"
	"Plaza/internal/model"
	"Plaza/internal/pkg/consts"
	"Plaza/internal/pkg/minio"
	"Plaza/internal/pkg/redis"
	"Plaza/internal/pkg/security"
	"Plaza/internal/repository"
	"context"
	"errors"
	log "log/slog"
	"time"

	"github.com/go-sql-driver/mysql"
)

type UserService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserDTO, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	Logout(ctx context.Context, token string) error
	GetUserInfo(ctx context.Context, userID uint64) (*dto.UserDTO, error)
}

type userServiceImpl struct {
	userRepo repository.UserRepo
}

func NewUserService(user repository.UserRepo) UserService {
	return &userServiceImpl{userRepo: user}
}

func (s *userServiceImpl) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserDTO, error) {
	existing, err := s.userRepo.GetUserByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUserExist
	}

	hashed, err := security.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:  req.Username,
		Nickname:  req.Nickname,
		Password:  hashed,
		AvatarURL: consts.DefaultAvatarURL,
	}
	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		// Concurrent registration with the same username loses the
		// unique-index race rather than the existence pre-check.
		if isDuplicateError(err) {
			return nil, ErrUserExist
		}
		return nil, err
	}

	return toUserDTO(user), nil
}

func (s *userServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userRepo.GetUserByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if user.IsBan {
		return nil, ErrUserBan
	}
	if err := security.CheckPasswordHash(req.Password, user.Password); err != nil {
		return nil, ErrPasswordIncorrect
	}

	token, err := security.GenerateToken(user.ID)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		Token: token,
		User:  toUserDTO(user),
	}, nil
}

// Logout revokes the token signature until its natural expiry.
func (s *userServiceImpl) Logout(ctx context.Context, token string) error {
	sig, err := security.ExtractSignature(token)
	if err != nil {
		return UnauthorizedError
	}
	if err := redis.SetWithExpiration(ctx, consts.TokenRevokedKey+sig, "1", 24*time.Hour); err != nil {
		log.Warn("failed to record token revocation", "err", err)
		return UnExpectedError
	}
	return nil
}

func (s *userServiceImpl) GetUserInfo(ctx context.Context, userID uint64) (*dto.UserDTO, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return toUserDTO(user), nil
}

func isDuplicateError(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
		return true
	}
	return false
}

func toUserDTO(user *model.User) *dto.UserDTO {
	return &dto.UserDTO{
		ID:        user.ID,
		Username:  user.Username,
		Nickname:  user.Nickname,
		AvatarURL: minio.GetPublicURL(user.AvatarURL),
	}
}
