package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"lmsplatform/internal/domain"
	"lmsplatform/internal/infrastructure/repository"
	"lmsplatform/internal/infrastructure/security"
	"lmsplatform/internal/platform/logger"

	"github.com/google/uuid"
)

const minPasswordLength = 6

type AuthUseCase struct {
	userRepo     *repository.UserRepository
	tokenStore   TokenStore
	hasher       *security.PasswordHasher
	tokenManager *security.TokenManager
	log          *logger.Logger
}

func NewAuthUseCase(
	ur *repository.UserRepository,
	ts TokenStore,
	h *security.PasswordHasher,
	tm *security.TokenManager,
	log *logger.Logger,
) *AuthUseCase {
	return &AuthUseCase{
		userRepo:     ur,
		tokenStore:   ts,
		hasher:       h,
		tokenManager: tm,
		log:          log.With("usecase", "Auth"),
	}
}

type Registration struct {
	Email      string
	Password   string
	FullName   string
	Grade      *string
	Division   *string
	Curriculum *string
}

// Tokens is an issued access/refresh pair.
type Tokens struct {
	AccessToken  string
	RefreshToken string
}

func (uc *AuthUseCase) Register(ctx context.Context, in Registration) (*domain.User, error) {
	email := strings.TrimSpace(in.Email)
	if email == "" || !strings.Contains(email, "@") || len(in.Password) < minPasswordLength {
		return nil, domain.ErrInvalidInput
	}

	hash, err := uc.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:           uuid.New(),
		Email:        email,
		FullName:     strings.TrimSpace(in.FullName),
		PasswordHash: hash,
		Role:         domain.RoleUser,
		Grade:        optional(in.Grade),
		Division:     optional(in.Division),
		Curriculum:   optional(in.Curriculum),
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	uc.log.Info("User registered", "user_id", user.ID.String())
	return user, nil
}

func (uc *AuthUseCase) Login(ctx context.Context, email, password string) (Tokens, error) {
	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return Tokens{}, domain.ErrInvalidCredentials
		}
		return Tokens{}, err
	}
	if err := uc.hasher.Compare(user.PasswordHash, password); err != nil {
		return Tokens{}, domain.ErrInvalidCredentials
	}

	return uc.issue(ctx, domain.Identity{UserID: user.ID, Role: user.Role})
}

// Refresh rotates a refresh token. The presented token must still be live in
// the token store; it is revoked before the new pair is issued.
func (uc *AuthUseCase) Refresh(ctx context.Context, refreshToken string) (Tokens, error) {
	userID, err := uc.tokenManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return Tokens{}, domain.ErrTokenRevoked
	}

	cachedID, err := uc.tokenStore.CheckRefresh(ctx, refreshToken)
	if err != nil || cachedID != userID.String() {
		return Tokens{}, domain.ErrTokenRevoked
	}
	if err := uc.tokenStore.DeleteRefresh(ctx, refreshToken); err != nil {
		return Tokens{}, err
	}

	// Role may have changed since the token was issued.
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return Tokens{}, domain.ErrTokenRevoked
		}
		return Tokens{}, err
	}

	return uc.issue(ctx, domain.Identity{UserID: user.ID, Role: user.Role})
}

func (uc *AuthUseCase) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	return uc.tokenStore.DeleteRefresh(ctx, refreshToken)
}

// Authenticate resolves an access token to the caller's identity.
func (uc *AuthUseCase) Authenticate(accessToken string) (domain.Identity, error) {
	return uc.tokenManager.ValidateAccessToken(accessToken)
}

func (uc *AuthUseCase) Me(ctx context.Context, caller domain.Identity) (*domain.User, error) {
	return uc.userRepo.GetByID(ctx, caller.UserID)
}

// ProfileUpdate changes the caller's own classification. Nil leaves a field
// untouched, an empty string clears it.
type ProfileUpdate struct {
	FullName   *string
	Image      *string
	Grade      *string
	Division   *string
	Curriculum *string
}

func (uc *AuthUseCase) UpdateProfile(ctx context.Context, caller domain.Identity, in ProfileUpdate) (*domain.User, error) {
	updates := map[string]interface{}{}
	if in.FullName != nil {
		updates["full_name"] = strings.TrimSpace(*in.FullName)
	}
	if in.Image != nil {
		updates["image"] = nullable(*in.Image)
	}
	if in.Grade != nil {
		updates["grade"] = nullable(*in.Grade)
	}
	if in.Division != nil {
		updates["division"] = nullable(*in.Division)
	}
	if in.Curriculum != nil {
		updates["curriculum"] = nullable(*in.Curriculum)
	}

	if err := uc.userRepo.UpdateProfile(ctx, caller.UserID, updates); err != nil {
		return nil, err
	}
	return uc.userRepo.GetByID(ctx, caller.UserID)
}

// SetRole lets an administrator change another account's role. The new role
// reaches the target's access tokens on their next refresh.
func (uc *AuthUseCase) SetRole(ctx context.Context, caller domain.Identity, userID uuid.UUID, role domain.Role) (*domain.User, error) {
	if !caller.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	if !role.Valid() {
		return nil, domain.ErrInvalidRole
	}
	if err := uc.userRepo.UpdateRole(ctx, userID, role); err != nil {
		return nil, err
	}

	uc.log.Info("User role changed", "user_id", userID.String(), "role", string(role), "by", caller.UserID.String())
	return uc.userRepo.GetByID(ctx, userID)
}

// EnsureAdmin creates the bootstrap administrator, or promotes the account
// if it already exists.
func (uc *AuthUseCase) EnsureAdmin(ctx context.Context, email, password string) error {
	existing, err := uc.userRepo.GetByEmail(ctx, email)
	switch {
	case err == nil:
		if existing.Role == domain.RoleAdmin {
			return nil
		}
		return uc.userRepo.UpdateRole(ctx, existing.ID, domain.RoleAdmin)
	case !errors.Is(err, domain.ErrUserNotFound):
		return err
	}

	user, err := uc.Register(ctx, Registration{Email: email, Password: password, FullName: "Administrator"})
	if err != nil {
		return err
	}
	uc.log.Info("Bootstrap administrator created", "user_id", user.ID.String())
	return uc.userRepo.UpdateRole(ctx, user.ID, domain.RoleAdmin)
}

func (uc *AuthUseCase) issue(ctx context.Context, id domain.Identity) (Tokens, error) {
	access, refresh, err := uc.tokenManager.Generate(id)
	if err != nil {
		return Tokens{}, fmt.Errorf("generate tokens: %w", err)
	}
	if err := uc.tokenStore.SaveRefresh(ctx, id.UserID.String(), refresh); err != nil {
		return Tokens{}, fmt.Errorf("save refresh token: %w", err)
	}
	return Tokens{AccessToken: access, RefreshToken: refresh}, nil
}

func optional(s *string) *string {
	if s == nil {
		return nil
	}
	return nullable(*s)
}
