package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/GTDGit/inventory_api/internal/cache"
	"github.com/GTDGit/inventory_api/internal/models"
	"github.com/GTDGit/inventory_api/internal/utils"
	"github.com/GTDGit/inventory_api/internal/workspace"
)

type fakeProfiles struct {
	mu      sync.Mutex
	byEmail map[string]*models.Profile
	seq     int
}

func newFakeProfiles() *fakeProfiles {
	return &fakeProfiles{byEmail: map[string]*models.Profile{}}
}

func (f *fakeProfiles) Create(_ context.Context, p *models.Profile) (*models.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byEmail[p.Email]; ok {
		return nil, utils.ErrEmailTaken
	}
	f.seq++
	out := *p
	out.ID = fmt.Sprintf("owner-%d", f.seq)
	f.byEmail[p.Email] = &out
	return &out, nil
}

func (f *fakeProfiles) GetByEmail(_ context.Context, email string) (*models.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.byEmail[email], nil
}

func (f *fakeProfiles) GetByID(_ context.Context, id string) (*models.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.byEmail {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakeProfiles) Update(_ context.Context, id string, patch *models.ProfilePatch) (*models.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.byEmail {
		if p.ID != id {
			continue
		}
		if patch.Name != nil {
			p.Name = *patch.Name
		}
		if patch.Company != nil {
			p.Company = patch.Company
		}
		out := *p
		return &out, nil
	}
	return nil, utils.ErrProfileNotFound
}

type fakeSessions struct {
	mu       sync.Mutex
	sessions map[string]*cache.Session
	seq      int
}

func (f *fakeSessions) Create(_ context.Context, ownerID, email string) (*cache.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sessions == nil {
		f.sessions = map[string]*cache.Session{}
	}
	f.seq++
	s := &cache.Session{ID: fmt.Sprintf("sess-%d", f.seq), OwnerID: ownerID, Email: email, CreatedAt: time.Now()}
	f.sessions[s.ID] = s
	return s, nil
}

func (f *fakeSessions) Get(_ context.Context, id string) (*cache.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.sessions[id]
	if !ok {
		return nil, utils.ErrSessionExpired
	}
	return s, nil
}

func (f *fakeSessions) Revoke(_ context.Context, s *cache.Session) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.sessions, s.ID)
	var n int64
	for _, other := range f.sessions {
		if other.OwnerID == s.OwnerID {
			n++
		}
	}
	return n, nil
}

type fakeWorkspaces struct {
	opened []string
	closed []string
}

func (f *fakeWorkspaces) Open(_ context.Context, ownerID string) (*workspace.Workspace, error) {
	f.opened = append(f.opened, ownerID)
	return nil, nil
}

func (f *fakeWorkspaces) Close(ownerID string) {
	f.closed = append(f.closed, ownerID)
}

type fakeStreams struct{ disconnected []string }

func (f *fakeStreams) DisconnectOwner(ownerID string) {
	f.disconnected = append(f.disconnected, ownerID)
}

type authFixture struct {
	svc        *AuthService
	profiles   *fakeProfiles
	sessions   *fakeSessions
	workspaces *fakeWorkspaces
	streams    *fakeStreams
	tokens     *utils.TokenIssuer
}

func newAuthFixture() *authFixture {
	f := &authFixture{
		profiles:   newFakeProfiles(),
		sessions:   &fakeSessions{},
		workspaces: &fakeWorkspaces{},
		streams:    &fakeStreams{},
		tokens:     utils.NewTokenIssuer("test-secret", time.Hour),
	}
	f.svc = NewAuthService(f.profiles, f.sessions, f.tokens, f.workspaces, f.streams, time.Hour)
	f.svc.cost = bcrypt.MinCost
	return f
}

func TestSignUpValidation(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	tests := []struct {
		name, email, password, display string
	}{
		{"bad email", "not-an-email", "secret1", "Ana"},
		{"short password", "ana@example.com", "123", "Ana"},
		{"missing name", "ana@example.com", "secret1", "  "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.SignUp(ctx, tt.email, tt.password, tt.display)
			assert.ErrorIs(t, err, utils.ErrValidation)
		})
	}
}

func TestSignUpRejectsTakenEmail(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	p, err := f.svc.SignUp(ctx, " Ana@Example.com ", "secret1", "Ana")
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", p.Email)
	assert.NotEqual(t, "secret1", p.PasswordHash)

	_, err = f.svc.SignUp(ctx, "ana@example.com", "other-secret", "Ana")
	assert.ErrorIs(t, err, utils.ErrEmailTaken)
}

func TestSignInOpensWorkspaceAndIssuesToken(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()
	p, err := f.svc.SignUp(ctx, "ana@example.com", "secret1", "Ana")
	require.NoError(t, err)

	res, err := f.svc.SignIn(ctx, "ANA@example.com", "secret1")
	require.NoError(t, err)

	assert.Equal(t, []string{p.ID}, f.workspaces.opened)
	claims, err := f.svc.Authenticate(ctx, res.Token)
	require.NoError(t, err)
	assert.Equal(t, p.ID, claims.UserID)
	assert.Equal(t, "ana@example.com", claims.Email)
}

func TestSignInRejectsBadCredentials(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()
	_, err := f.svc.SignUp(ctx, "ana@example.com", "secret1", "Ana")
	require.NoError(t, err)

	_, err = f.svc.SignIn(ctx, "ana@example.com", "wrong-password")
	assert.ErrorIs(t, err, utils.ErrInvalidCredentials)

	_, err = f.svc.SignIn(ctx, "nobody@example.com", "secret1")
	assert.ErrorIs(t, err, utils.ErrInvalidCredentials)

	assert.Empty(t, f.workspaces.opened)
}

func TestSignOutRevokesSessionAndClearsWorkspace(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()
	_, err := f.svc.SignUp(ctx, "ana@example.com", "secret1", "Ana")
	require.NoError(t, err)
	res, err := f.svc.SignIn(ctx, "ana@example.com", "secret1")
	require.NoError(t, err)
	claims, err := f.svc.Authenticate(ctx, res.Token)
	require.NoError(t, err)

	require.NoError(t, f.svc.SignOut(ctx, claims))

	assert.Equal(t, []string{claims.UserID}, f.workspaces.closed)
	assert.Equal(t, []string{claims.UserID}, f.streams.disconnected)
	_, err = f.svc.Authenticate(ctx, res.Token)
	assert.ErrorIs(t, err, utils.ErrSessionExpired)

	// a second sign-out with the same token is not an error
	require.NoError(t, f.svc.SignOut(ctx, claims))
}

func TestAuthenticateRejectsForeignSession(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()
	s, err := f.sessions.Create(ctx, "owner-9", "x@example.com")
	require.NoError(t, err)
	token, err := f.tokens.Generate("owner-1", "ana@example.com", s.ID)
	require.NoError(t, err)

	_, err = f.svc.Authenticate(ctx, token)

	assert.ErrorIs(t, err, utils.ErrInvalidToken)
}

func TestProfileService(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()
	p, err := f.svc.SignUp(ctx, "ana@example.com", "secret1", "Ana")
	require.NoError(t, err)
	svc := NewProfileService(f.profiles)

	got, err := svc.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana", got.Name)

	_, err = svc.Get(ctx, "missing")
	assert.ErrorIs(t, err, utils.ErrProfileNotFound)

	company := "Ana's Hardware"
	name := " Ana María "
	updated, err := svc.Update(ctx, p.ID, &models.ProfilePatch{Name: &name, Company: &company})
	require.NoError(t, err)
	assert.Equal(t, "Ana María", updated.Name)
	assert.Equal(t, company, *updated.Company)

	empty := " "
	_, err = svc.Update(ctx, p.ID, &models.ProfilePatch{Name: &empty})
	assert.ErrorIs(t, err, utils.ErrValidation)

	_, err = svc.Update(ctx, "missing", &models.ProfilePatch{Name: &name})
	assert.ErrorIs(t, err, utils.ErrProfileNotFound)
}
