package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/GTDGit/inventory_api/internal/cache"
	"github.com/GTDGit/inventory_api/internal/models"
	"github.com/GTDGit/inventory_api/internal/utils"
	"github.com/GTDGit/inventory_api/internal/workspace"
)

const minPasswordLength = 6

// ProfileStore is the record store for profiles.
type ProfileStore interface {
	Create(ctx context.Context, p *models.Profile) (*models.Profile, error)
	GetByEmail(ctx context.Context, email string) (*models.Profile, error)
	GetByID(ctx context.Context, id string) (*models.Profile, error)
	Update(ctx context.Context, id string, patch *models.ProfilePatch) (*models.Profile, error)
}

// SessionStore keeps server-side sessions.
type SessionStore interface {
	Create(ctx context.Context, ownerID, email string) (*cache.Session, error)
	Get(ctx context.Context, id string) (*cache.Session, error)
	Revoke(ctx context.Context, s *cache.Session) (int64, error)
}

// Workspaces opens and closes owner workspaces.
type Workspaces interface {
	Open(ctx context.Context, ownerID string) (*workspace.Workspace, error)
	Close(ownerID string)
}

// StreamCloser drops an owner's live dashboard streams.
type StreamCloser interface {
	DisconnectOwner(ownerID string)
}

// AuthResult is returned by SignIn.
type AuthResult struct {
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expiresAt"`
	Profile   *models.Profile `json:"profile"`
}

// AuthService handles owner sign-up, sign-in and sign-out.
type AuthService struct {
	profiles   ProfileStore
	sessions   SessionStore
	tokens     *utils.TokenIssuer
	workspaces Workspaces
	streams    StreamCloser
	ttl        time.Duration
	cost       int
}

// NewAuthService creates a new AuthService.
func NewAuthService(profiles ProfileStore, sessions SessionStore, tokens *utils.TokenIssuer,
	workspaces Workspaces, streams StreamCloser, ttl time.Duration) *AuthService {
	return &AuthService{
		profiles:   profiles,
		sessions:   sessions,
		tokens:     tokens,
		workspaces: workspaces,
		streams:    streams,
		ttl:        ttl,
		cost:       bcrypt.DefaultCost,
	}
}

// SignUp creates an account. The caller signs in separately.
func (s *AuthService) SignUp(ctx context.Context, email, password, name string) (*models.Profile, error) {
	email = normalizeEmail(email)
	name = strings.TrimSpace(name)
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, fmt.Errorf("%w: invalid email address", utils.ErrValidation)
	}
	if len(password) < minPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", utils.ErrValidation, minPasswordLength)
	}
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", utils.ErrValidation)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, err
	}

	profile, err := s.profiles.Create(ctx, &models.Profile{
		Email:        email,
		PasswordHash: string(hashed),
		Name:         name,
	})
	if errors.Is(err, utils.ErrEmailTaken) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("%w: create profile: %v", utils.ErrStore, err)
	}

	log.Info().Str("owner_id", profile.ID).Msg("Account created")
	return profile, nil
}

// SignIn verifies credentials, starts a session and loads the owner's
// workspace. A workspace that loaded only partially does not fail sign-in;
// its error is visible through the workspace.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (*AuthResult, error) {
	email = normalizeEmail(email)

	profile, err := s.profiles.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("%w: get profile: %v", utils.ErrStore, err)
	}
	if profile == nil {
		log.Warn().Str("email", email).Msg("Sign-in for unknown email")
		return nil, utils.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(profile.PasswordHash), []byte(password)); err != nil {
		log.Warn().Str("owner_id", profile.ID).Msg("Password verification failed")
		return nil, utils.ErrInvalidCredentials
	}

	session, err := s.sessions.Create(ctx, profile.ID, profile.Email)
	if err != nil {
		return nil, err
	}
	token, err := s.tokens.Generate(profile.ID, profile.Email, session.ID)
	if err != nil {
		return nil, err
	}

	if _, err := s.workspaces.Open(ctx, profile.ID); err != nil {
		log.Warn().Err(err).Str("owner_id", profile.ID).Msg("Workspace loaded with errors")
	}

	log.Info().Str("owner_id", profile.ID).Msg("Sign-in successful")
	return &AuthResult{
		Token:     token,
		ExpiresAt: session.CreatedAt.Add(s.ttl),
		Profile:   profile,
	}, nil
}

// Authenticate validates a token and checks its session is still live.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*utils.Claims, error) {
	claims, err := s.tokens.Validate(token)
	if err != nil {
		return nil, err
	}
	session, err := s.sessions.Get(ctx, claims.SessionID)
	if err != nil {
		return nil, err
	}
	if session.OwnerID != claims.UserID {
		return nil, fmt.Errorf("%w: session does not belong to token", utils.ErrInvalidToken)
	}
	return claims, nil
}

// SignOut ends the session and wipes the owner's in-memory state. Other
// sessions of the owner reload it on their next request.
func (s *AuthService) SignOut(ctx context.Context, claims *utils.Claims) error {
	session, err := s.sessions.Get(ctx, claims.SessionID)
	switch {
	case errors.Is(err, utils.ErrSessionExpired):
		// already gone; still clear local state
	case err != nil:
		return err
	default:
		remaining, err := s.sessions.Revoke(ctx, session)
		if err != nil {
			return err
		}
		log.Info().Str("owner_id", claims.UserID).Int64("remaining_sessions", remaining).Msg("Signed out")
	}

	s.workspaces.Close(claims.UserID)
	if s.streams != nil {
		s.streams.DisconnectOwner(claims.UserID)
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
