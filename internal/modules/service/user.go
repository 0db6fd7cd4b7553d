package service

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/subtrackhq/subtrack/internal/config"
	"github.com/subtrackhq/subtrack/internal/modules/model"
	"github.com/subtrackhq/subtrack/internal/modules/repo"
	"github.com/subtrackhq/subtrack/internal/pkg/apperr"
	"github.com/subtrackhq/subtrack/internal/pkg/utils"
	"github.com/subtrackhq/subtrack/internal/pkg/utils/tokens"
)

type RegisterInput struct {
	Username string
	Email    string
	Password string
}

type UserService interface {
	// Register creates the account and returns the raw API key exactly once;
	// only its HMAC is persisted.
	Register(ctx context.Context, in RegisterInput) (*model.User, string, error)
}

type userService struct {
	r   repo.UserRepo
	cfg *config.Config
}

func NewUserService(r repo.UserRepo, cfg *config.Config) UserService {
	return &userService{r: r, cfg: cfg}
}

func (s *userService) Register(ctx context.Context, in RegisterInput) (*model.User, string, error) {
	fields := map[string]string{}
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))

	if in.Username == "" {
		fields["username"] = "username is required"
	}
	if in.Email == "" || !strings.Contains(in.Email, "@") {
		fields["email"] = "a valid email is required"
	}
	if len(in.Password) < 8 {
		fields["password"] = "password must be at least 8 characters"
	}

	if in.Username != "" {
		taken, err := s.r.UsernameTaken(ctx, in.Username)
		if err != nil {
			return nil, "", storageErr(err)
		}
		if taken {
			fields["username"] = "username is already taken"
		}
	}
	if _, ok := fields["email"]; !ok {
		taken, err := s.r.EmailTaken(ctx, in.Email)
		if err != nil {
			return nil, "", storageErr(err)
		}
		if taken {
			fields["email"] = "email is already registered"
		}
	}

	if err := apperr.Validation(fields); err != nil {
		return nil, "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	secret, err := utils.GenerateKey("", 48)
	if err != nil {
		return nil, "", err
	}
	apiKey := s.cfg.Auth.APIKeyPrefix + secret

	u := &model.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: string(hash),
		APIKeyHMAC:   tokens.HMAC256Hex(s.cfg.Auth.SecretPepper, secret),
	}
	if err := s.r.Create(ctx, u); err != nil {
		return nil, "", storageErr(err)
	}

	return u, apiKey, nil
}
