// Copyright (c) 2026 Pofol. All rights reserved.

package auth

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pofol/folio/internal/platform/apperr"
	"github.com/pofol/folio/internal/platform/ctxutil"
	"github.com/pofol/folio/internal/platform/sec"
)

// memoryUserRepository is an in-memory UserRepository for service tests.
// It mirrors the SQL semantics of PostgresUserRepository, including the
// compare-and-swap behavior of RotateRefreshToken.
type memoryUserRepository struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]*User
}

func newMemoryUserRepository() *memoryUserRepository {
	return &memoryUserRepository{nextID: 1, users: make(map[int64]*User)}
}

func (repo *memoryUserRepository) FindByID(_ context.Context, id int64) (*User, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	if user, ok := repo.users[id]; ok {
		clone := *user
		return &clone, nil
	}
	return nil, apperr.NotFound("User not found")
}

func (repo *memoryUserRepository) FindByLoginID(_ context.Context, loginID string) (*User, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	for _, user := range repo.users {
		if user.LoginID == loginID {
			clone := *user
			return &clone, nil
		}
	}
	return nil, apperr.NotFound("User not found with this login ID")
}

func (repo *memoryUserRepository) FindByEmail(_ context.Context, email string) (*User, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	for _, user := range repo.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, apperr.NotFound("User not found with this email")
}

func (repo *memoryUserRepository) FindByRefreshToken(_ context.Context, token string) (*User, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	for _, user := range repo.users {
		if user.RefreshToken != nil && *user.RefreshToken == token {
			clone := *user
			return &clone, nil
		}
	}
	return nil, apperr.NotFound("No session matches this refresh token")
}

func (repo *memoryUserRepository) ExistsByEmail(_ context.Context, email string) (bool, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	for _, user := range repo.users {
		if user.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (repo *memoryUserRepository) ExistsByLoginID(_ context.Context, loginID string) (bool, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	for _, user := range repo.users {
		if user.LoginID == loginID {
			return true, nil
		}
	}
	return false, nil
}

func (repo *memoryUserRepository) Create(_ context.Context, user *User) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	user.ID = repo.nextID
	repo.nextID++
	clone := *user
	repo.users[user.ID] = &clone
	return nil
}

func (repo *memoryUserRepository) UpdateProfile(_ context.Context, user *User) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	if stored, ok := repo.users[user.ID]; ok {
		stored.Nickname = user.Nickname
		stored.ImageURL = user.ImageURL
		stored.Bio = user.Bio
	}
	return nil
}

func (repo *memoryUserRepository) UpdateRefreshToken(_ context.Context, userID int64, token string) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	if user, ok := repo.users[userID]; ok {
		value := token
		user.RefreshToken = &value
	}
	return nil
}

func (repo *memoryUserRepository) RotateRefreshToken(_ context.Context, userID int64, current, next string) (bool, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	user, ok := repo.users[userID]
	if !ok || user.RefreshToken == nil || *user.RefreshToken != current {
		return false, nil
	}
	value := next
	user.RefreshToken = &value
	return true, nil
}

func (repo *memoryUserRepository) ClearRefreshToken(_ context.Context, userID int64) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	if user, ok := repo.users[userID]; ok {
		user.RefreshToken = nil
	}
	return nil
}

// countingBootstrapper records seeding calls.
type countingBootstrapper struct {
	calls int
	last  *User
}

func (b *countingBootstrapper) Bootstrap(_ context.Context, user *User) error {
	b.calls++
	b.last = user
	return nil
}

func newTestService(t *testing.T) (*Service, *memoryUserRepository, *countingBootstrapper) {
	t.Helper()
	repo := newMemoryUserRepository()
	issuer := NewTokenIssuer(sec.NewCodec("service-test-secret"), time.Hour, 7*24*time.Hour)
	bootstrapper := &countingBootstrapper{}
	return NewService(repo, issuer, bootstrapper), repo, bootstrapper
}

func registerTestUser(t *testing.T, service *Service) *User {
	t.Helper()
	user, err := service.Register(context.Background(), RegisterInput{
		LoginID:  "dev7",
		Email:    "a@b.com",
		Password: "correct-horse",
		Nickname: "dev",
	})
	require.NoError(t, err)
	return user
}

func TestService_Register_Defaults(t *testing.T) {
	service, repo, bootstrapper := newTestService(t)

	user := registerTestUser(t, service)

	assert.Equal(t, sec.RoleUser, user.Role)
	assert.NotEqual(t, "correct-horse", user.PasswordHash)
	assert.Equal(t, 1, bootstrapper.calls)
	assert.Equal(t, user.ID, bootstrapper.last.ID)

	stored, err := repo.FindByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.RefreshToken)
}

func TestService_Register_Conflicts(t *testing.T) {
	service, _, _ := newTestService(t)
	registerTestUser(t, service)

	_, err := service.Register(context.Background(), RegisterInput{
		LoginID: "other", Email: "a@b.com", Password: "long-enough", Nickname: "x",
	})
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperr.As(err).Code)

	_, err = service.Register(context.Background(), RegisterInput{
		LoginID: "dev7", Email: "c@d.com", Password: "long-enough", Nickname: "x",
	})
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperr.As(err).Code)
}

func TestService_Register_RejectsAtSignInLoginID(t *testing.T) {
	service, _, _ := newTestService(t)

	_, err := service.Register(context.Background(), RegisterInput{
		LoginID: "not@allowed", Email: "a@b.com", Password: "long-enough", Nickname: "x",
	})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}

func TestService_Login_IdentifierRouting(t *testing.T) {
	service, _, _ := newTestService(t)
	registerTestUser(t, service)

	// "@" routes to email lookup.
	byEmail, err := service.Login(context.Background(), LoginInput{
		Identifier: "a@b.com", Password: "correct-horse",
	})
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", byEmail.User.Email)

	// Anything else routes to login ID lookup.
	byLoginID, err := service.Login(context.Background(), LoginInput{
		Identifier: "dev7", Password: "correct-horse",
	})
	require.NoError(t, err)
	assert.Equal(t, "dev7", byLoginID.User.LoginID)
}

func TestService_Login_GenericFailures(t *testing.T) {
	service, _, _ := newTestService(t)
	registerTestUser(t, service)

	cases := []struct {
		name  string
		input LoginInput
	}{
		{"unknown_email", LoginInput{Identifier: "nobody@b.com", Password: "correct-horse"}},
		{"unknown_login_id", LoginInput{Identifier: "nobody", Password: "correct-horse"}},
		{"wrong_password", LoginInput{Identifier: "a@b.com", Password: "wrong"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := service.Login(context.Background(), tc.input)
			require.Error(t, err)

			ae := apperr.As(err)
			require.NotNil(t, ae)
			// Every failure mode yields the same message: no enumeration.
			assert.Equal(t, "UNAUTHORIZED", ae.Code)
			assert.Equal(t, msgInvalidCredentials, ae.Message)
		})
	}
}

func TestService_Login_BindsSingleRefreshSlot(t *testing.T) {
	service, repo, _ := newTestService(t)
	user := registerTestUser(t, service)

	first, err := service.Login(context.Background(), LoginInput{Identifier: "dev7", Password: "correct-horse"})
	require.NoError(t, err)

	second, err := service.Login(context.Background(), LoginInput{Identifier: "dev7", Password: "correct-horse"})
	require.NoError(t, err)

	// The second login displaced the first session entirely.
	stored, err := repo.FindByID(context.Background(), user.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.RefreshToken)
	assert.Equal(t, second.RefreshToken, *stored.RefreshToken)

	_, err = service.Refresh(context.Background(), first.RefreshToken)
	assert.Error(t, err)
}

func TestService_Refresh_RotatesAndSpendsOldToken(t *testing.T) {
	service, _, _ := newTestService(t)
	registerTestUser(t, service)

	// login => (AT1, RT1)
	pair1, err := service.Login(context.Background(), LoginInput{Identifier: "a@b.com", Password: "correct-horse"})
	require.NoError(t, err)

	// refresh(RT1) => (AT2, RT2), RT2 != RT1
	pair2, err := service.Refresh(context.Background(), pair1.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, pair1.RefreshToken, pair2.RefreshToken)
	assert.Equal(t, int64(1), pair2.User.ID)

	// refresh(RT1) again fails: the token is spent.
	_, err = service.Refresh(context.Background(), pair1.RefreshToken)
	require.Error(t, err)
	assert.Equal(t, msgInvalidToken, apperr.As(err).Message)

	// refresh(RT2) succeeds: the new token owns the slot.
	pair3, err := service.Refresh(context.Background(), pair2.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, pair2.RefreshToken, pair3.RefreshToken)
}

func TestService_Refresh_RejectsGarbageAndForgedTokens(t *testing.T) {
	service, _, _ := newTestService(t)
	user := registerTestUser(t, service)

	// Structurally invalid.
	_, err := service.Refresh(context.Background(), "not-a-token")
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)

	// Signed by a different secret.
	foreignIssuer := NewTokenIssuer(sec.NewCodec("some-other-secret"), time.Hour, time.Hour)
	forged, err := foreignIssuer.IssueRefresh(user)
	require.NoError(t, err)

	_, err = service.Refresh(context.Background(), forged)
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)
}

func TestService_Refresh_ValidSignatureButNoSlotMatch(t *testing.T) {
	service, repo, _ := newTestService(t)
	user := registerTestUser(t, service)

	pair, err := service.Login(context.Background(), LoginInput{Identifier: "dev7", Password: "correct-horse"})
	require.NoError(t, err)

	// Simulate a slot cleared server-side while the client still holds RT.
	require.NoError(t, repo.ClearRefreshToken(context.Background(), user.ID))

	_, err = service.Refresh(context.Background(), pair.RefreshToken)
	require.Error(t, err)
	assert.Equal(t, msgInvalidToken, apperr.As(err).Message)
}

func TestService_Logout_IsPermanentAndIdempotent(t *testing.T) {
	service, repo, _ := newTestService(t)
	user := registerTestUser(t, service)

	pair, err := service.Login(context.Background(), LoginInput{Identifier: "dev7", Password: "correct-horse"})
	require.NoError(t, err)

	require.NoError(t, service.Logout(context.Background(), pair.RefreshToken))

	stored, err := repo.FindByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.RefreshToken)

	// The spent token can never refresh again.
	_, err = service.Refresh(context.Background(), pair.RefreshToken)
	assert.Error(t, err)

	// Logging out twice, or with garbage, still succeeds.
	assert.NoError(t, service.Logout(context.Background(), pair.RefreshToken))
	assert.NoError(t, service.Logout(context.Background(), ""))
}

func TestService_LogoutAccount_KillsSessionWithoutTheToken(t *testing.T) {
	service, repo, _ := newTestService(t)
	user := registerTestUser(t, service)

	pair, err := service.Login(context.Background(), LoginInput{Identifier: "dev7", Password: "correct-horse"})
	require.NoError(t, err)

	// A bearer-header client never presents the refresh credential;
	// logout by account must still empty the slot.
	require.NoError(t, service.LogoutAccount(context.Background(), user.ID))

	stored, err := repo.FindByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.RefreshToken)

	// The old refresh token is dead after logout.
	_, err = service.Refresh(context.Background(), pair.RefreshToken)
	assert.Error(t, err)

	// Idempotent like token-keyed logout.
	assert.NoError(t, service.LogoutAccount(context.Background(), user.ID))
}

func TestService_ConcurrentRefresh_ExactlyOneWins(t *testing.T) {
	service, _, _ := newTestService(t)
	registerTestUser(t, service)

	pair, err := service.Login(context.Background(), LoginInput{Identifier: "dev7", Password: "correct-horse"})
	require.NoError(t, err)

	const racers = 8
	var wg sync.WaitGroup
	results := make([]error, racers)

	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func(slot int) {
			defer wg.Done()
			_, results[slot] = service.Refresh(context.Background(), pair.RefreshToken)
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, err := range results {
		if err == nil {
			winners++
		}
	}
	assert.Equal(t, 1, winners)
}

func TestService_ResolveAccessToken(t *testing.T) {
	service, _, _ := newTestService(t)
	registerTestUser(t, service)

	pair, err := service.Login(context.Background(), LoginInput{Identifier: "dev7", Password: "correct-horse"})
	require.NoError(t, err)

	claims := service.ResolveAccessToken(pair.AccessToken)
	require.NotNil(t, claims)
	assert.Equal(t, int64(1), claims.UserID)
	assert.Equal(t, "a@b.com", claims.Email)
	assert.Equal(t, string(sec.RoleUser), claims.Role)

	// Best-effort: failures are nil, never errors.
	assert.Nil(t, service.ResolveAccessToken("garbage"))
	assert.Nil(t, service.ResolveAccessToken(""))
}

func TestService_RefreshSession_AdapterShapesClaims(t *testing.T) {
	service, _, _ := newTestService(t)
	registerTestUser(t, service)

	pair, err := service.Login(context.Background(), LoginInput{Identifier: "dev7", Password: "correct-horse"})
	require.NoError(t, err)

	access, refresh, claims, err := service.RefreshSession(context.Background(), pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, refresh)
	assert.NotEqual(t, pair.RefreshToken, refresh)

	require.NotNil(t, claims)
	assert.Equal(t, int64(1), claims.UserID)
	assert.Equal(t, "dev", claims.Nickname)
	assert.Equal(t, string(sec.RoleUser), claims.Role)
}

func TestResolver_Current_RefetchesAccount(t *testing.T) {
	service, repo, _ := newTestService(t)
	user := registerTestUser(t, service)
	resolver := NewResolver(repo)

	pair, err := service.Login(context.Background(), LoginInput{Identifier: "dev7", Password: "correct-horse"})
	require.NoError(t, err)

	claims := service.ResolveAccessToken(pair.AccessToken)
	require.NotNil(t, claims)

	// Mutate the account after the credential was minted.
	user.Nickname = "renamed"
	require.NoError(t, repo.UpdateProfile(context.Background(), user))

	ctx := ctxutil.WithActor(context.Background(), claims)
	current, err := resolver.Current(ctx)
	require.NoError(t, err)

	// The resolver must reflect storage, not the claim snapshot.
	assert.Equal(t, "renamed", current.Nickname)
}

func TestResolver_Current_AnonymousAndDangling(t *testing.T) {
	_, repo, _ := newTestService(t)
	resolver := NewResolver(repo)

	// Anonymous context.
	_, err := resolver.Current(context.Background())
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)

	// Claims referencing a deleted account look like an invalid token.
	ctx := ctxutil.WithActor(context.Background(), &sec.AuthClaims{UserID: 999})
	_, err = resolver.Current(ctx)
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)
	assert.Equal(t, msgInvalidToken, apperr.As(err).Message)
}
