package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MrSidSir/sidEstate/internal/common"
	"github.com/MrSidSir/sidEstate/internal/logging"
	"github.com/MrSidSir/sidEstate/internal/server/auth"
	"github.com/MrSidSir/sidEstate/internal/server/config"
	"github.com/MrSidSir/sidEstate/internal/server/models"
	"github.com/MrSidSir/sidEstate/internal/server/repositories/repomanager"
	"github.com/MrSidSir/sidEstate/internal/server/repositories/users"
)

// federatedAttempts bounds how many generated usernames a federated sign-in
// tries before giving up.
const federatedAttempts = 3

type SignupInput struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,max=72"`
}

type FederatedInput struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Photo string `json:"photo"`
}

// UserUpdate is a profile change request; nil or empty fields are left
// untouched.
type UserUpdate struct {
	Username *string `json:"username" validate:"omitempty,min=1"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Avatar   *string `json:"avatar"`
	Password *string `json:"password" validate:"omitempty,max=72"`
}

type UserService struct {
	users    users.Repository
	secret   []byte
	validity time.Duration
	logger   logging.Logger

	randHex func(size int) (string, error)
}

func NewUserService(m repomanager.RepositoryManager, cfg *config.Config, logger logging.Logger) *UserService {
	return &UserService{
		users:    m.Users(),
		secret:   []byte(cfg.SecretKey),
		validity: cfg.TokenValidityDuration,
		logger:   logger.With("module", "users"),
		randHex:  common.MakeRandHexString,
	}
}

func (s *UserService) issueToken(userID string) (string, error) {
	token, err := auth.GenerateToken(userID, s.secret, s.validity)
	if err != nil {
		return "", fmt.Errorf("%w: sign token: %v", common.ErrorInternal, err)
	}
	return token, nil
}

// Signup creates an account with a freshly hashed password.
func (s *UserService) Signup(ctx context.Context, in SignupInput) (*models.User, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.Create(ctx, &models.User{
		Username: in.Username,
		Email:    in.Email,
		Password: hash,
		Avatar:   common.DefaultAvatarURL,
	})
	if err != nil {
		if errors.Is(err, common.ErrorConflict) {
			return nil, common.NewError(common.ErrorConflict, "Username or email already in use!")
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	s.logger.Info(ctx, "user signed up", "user_id", user.ID)
	return user, nil
}

// Signin checks the credentials and returns the user with a session token.
func (s *UserService) Signin(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, "", common.NewError(common.ErrorNotFound, "User not found!")
		}
		return nil, "", fmt.Errorf("error loading user: %w", err)
	}

	ok, err := auth.CheckPassword(user.Password, password)
	if err != nil {
		return nil, "", fmt.Errorf("%w: check password: %v", common.ErrorInternal, err)
	}
	if !ok {
		s.logger.Debug(ctx, "wrong password", "user_id", user.ID)
		return nil, "", common.NewError(common.ErrorUnauthorized, "Wrong credentials!")
	}

	token, err := s.issueToken(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// federatedUsername derives a username from a display name: spaces removed,
// lower-cased, plus four random hex characters.
func (s *UserService) federatedUsername(name string) (string, error) {
	suffix, err := s.randHex(2)
	if err != nil {
		return "", err
	}
	return strings.ToLower(strings.Join(strings.Fields(name), "")) + suffix, nil
}

// Federated signs in the holder of an external identity, creating a local
// account on first sight. The generated password is never revealed.
func (s *UserService) Federated(ctx context.Context, in FederatedInput) (*models.User, string, error) {
	if err := validateStruct(in); err != nil {
		return nil, "", err
	}

	user, err := s.users.GetByEmail(ctx, in.Email)
	if err != nil && !errors.Is(err, common.ErrorNotFound) {
		return nil, "", fmt.Errorf("error loading user: %w", err)
	}
	if user == nil {
		user, err = s.createFederated(ctx, in)
		if err != nil {
			return nil, "", err
		}
	}

	token, err := s.issueToken(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *UserService) createFederated(ctx context.Context, in FederatedInput) (*models.User, error) {
	password, err := s.randHex(8)
	if err != nil {
		return nil, fmt.Errorf("%w: random password: %v", common.ErrorInternal, err)
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	avatar := in.Photo
	if avatar == "" {
		avatar = common.DefaultAvatarURL
	}

	for attempt := 1; attempt <= federatedAttempts; attempt++ {
		username, err := s.federatedUsername(in.Name)
		if err != nil {
			return nil, fmt.Errorf("%w: random username: %v", common.ErrorInternal, err)
		}

		user, err := s.users.Create(ctx, &models.User{
			Username: username,
			Email:    in.Email,
			Password: hash,
			Avatar:   avatar,
		})
		if err == nil {
			s.logger.Info(ctx, "federated user created", "user_id", user.ID)
			return user, nil
		}
		if !errors.Is(err, common.ErrorConflict) {
			return nil, fmt.Errorf("error creating user: %w", err)
		}

		// a concurrent sign-in may have registered the same email
		if existing, gerr := s.users.GetByEmail(ctx, in.Email); gerr == nil {
			return existing, nil
		}
		s.logger.Warn(ctx, "generated username taken", "attempt", attempt)
	}

	return nil, common.NewError(common.ErrorConflict, "Could not allocate a username, please try again!")
}

// Get returns the public view of a user.
func (s *UserService) Get(ctx context.Context, id string) (*models.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.NewError(common.ErrorNotFound, "User not found!")
		}
		return nil, fmt.Errorf("error loading user: %w", err)
	}
	return user, nil
}

// Update changes the actor's own profile. A new password is re-hashed.
func (s *UserService) Update(ctx context.Context, actorID, id string, in UserUpdate) (*models.User, error) {
	if actorID != id {
		return nil, common.NewError(common.ErrorForbidden, "You can only update your own account!")
	}
	if in.Password != nil && *in.Password == "" {
		in.Password = nil
	}
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	patch := models.UserPatch{Username: in.Username, Email: in.Email, Avatar: in.Avatar}
	if in.Password != nil {
		hash, err := auth.HashPassword(*in.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		patch.Password = &hash
	}
	if patch.IsEmpty() {
		return s.Get(ctx, id)
	}

	user, err := s.users.Update(ctx, id, patch)
	switch {
	case errors.Is(err, common.ErrorNotFound):
		return nil, common.NewError(common.ErrorNotFound, "User not found!")
	case errors.Is(err, common.ErrorConflict):
		return nil, common.NewError(common.ErrorConflict, "Username or email already in use!")
	case err != nil:
		return nil, fmt.Errorf("error updating user: %w", err)
	}
	return user, nil
}

// Delete removes the actor's own account. Their listings are kept.
func (s *UserService) Delete(ctx context.Context, actorID, id string) error {
	if actorID != id {
		return common.NewError(common.ErrorForbidden, "You can only delete your own account!")
	}

	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.NewError(common.ErrorNotFound, "User not found!")
		}
		return fmt.Errorf("error deleting user: %w", err)
	}

	s.logger.Info(ctx, "user deleted", "user_id", id)
	return nil
}
