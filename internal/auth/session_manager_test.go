package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"stockroom/internal/model"
)

// MockSessionRepository is a mock implementation of repository.SessionRepository.
type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) Create(ctx context.Context, session *model.Session) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockSessionRepository) FindByToken(ctx context.Context, token string) (*model.Session, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Session), args.Error(1)
}

func (m *MockSessionRepository) UpdateExpiry(ctx context.Context, token string, expiresAt time.Time) error {
	args := m.Called(ctx, token, expiresAt)
	return args.Error(0)
}

func (m *MockSessionRepository) Delete(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockSessionRepository) PurgeExpired(ctx context.Context, now time.Time) error {
	args := m.Called(ctx, now)
	return args.Error(0)
}

func newTestManager(repo *MockSessionRepository) *SessionManager {
	return NewSessionManager(repo, nil, NewSigner("test-secret"))
}

func TestSessionManager_CreateResolveRoundtrip(t *testing.T) {
	mockRepo := new(MockSessionRepository)
	manager := newTestManager(mockRepo)

	var stored *model.Session
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Session")).Run(func(args mock.Arguments) {
		stored = args.Get(1).(*model.Session)
	}).Return(nil)

	token, err := manager.Create(context.Background(), 42)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.NotNil(t, stored)
	assert.Equal(t, uint(42), stored.UserID)
	assert.WithinDuration(t, time.Now().Add(SessionTTL), stored.ExpiresAt, time.Minute)

	mockRepo.On("FindByToken", mock.Anything, stored.Token).Return(stored, nil)

	userID, err := manager.Resolve(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), userID)
	mockRepo.AssertExpectations(t)
}

func TestSessionManager_ResolveFailsClosed(t *testing.T) {
	t.Run("garbage token", func(t *testing.T) {
		manager := newTestManager(new(MockSessionRepository))
		_, err := manager.Resolve(context.Background(), "not-a-token")
		assert.ErrorIs(t, err, ErrNoSession)
	})

	t.Run("token signed with a different secret", func(t *testing.T) {
		other := NewSigner("other-secret")
		forged, err := other.Sign("some-session-id")
		require.NoError(t, err)

		manager := newTestManager(new(MockSessionRepository))
		_, err = manager.Resolve(context.Background(), forged)
		assert.ErrorIs(t, err, ErrNoSession)
	})

	t.Run("unknown session id", func(t *testing.T) {
		mockRepo := new(MockSessionRepository)
		mockRepo.On("FindByToken", mock.Anything, "ghost").Return(nil, gorm.ErrRecordNotFound)

		manager := newTestManager(mockRepo)
		token, err := manager.signer.Sign("ghost")
		require.NoError(t, err)

		_, err = manager.Resolve(context.Background(), token)
		assert.ErrorIs(t, err, ErrNoSession)
	})

	t.Run("expired session treated as absent", func(t *testing.T) {
		mockRepo := new(MockSessionRepository)
		mockRepo.On("FindByToken", mock.Anything, "stale").Return(&model.Session{
			Token:     "stale",
			UserID:    42,
			ExpiresAt: time.Now().Add(-time.Minute),
		}, nil)
		mockRepo.On("Delete", mock.Anything, "stale").Return(nil)

		manager := newTestManager(mockRepo)
		token, err := manager.signer.Sign("stale")
		require.NoError(t, err)

		_, err = manager.Resolve(context.Background(), token)
		assert.ErrorIs(t, err, ErrNoSession)
		mockRepo.AssertExpectations(t)
	})
}

func TestSessionManager_SlidingRefresh(t *testing.T) {
	mockRepo := new(MockSessionRepository)
	// under half the window left: resolve should bump the expiry
	mockRepo.On("FindByToken", mock.Anything, "sid").Return(&model.Session{
		Token:     "sid",
		UserID:    7,
		ExpiresAt: time.Now().Add(time.Hour),
	}, nil)
	mockRepo.On("UpdateExpiry", mock.Anything, "sid", mock.AnythingOfType("time.Time")).Return(nil)

	manager := newTestManager(mockRepo)
	token, err := manager.signer.Sign("sid")
	require.NoError(t, err)

	userID, err := manager.Resolve(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), userID)
	mockRepo.AssertExpectations(t)
}

func TestSessionManager_DestroyIdempotent(t *testing.T) {
	t.Run("malformed token is a no-op", func(t *testing.T) {
		manager := newTestManager(new(MockSessionRepository))
		assert.NoError(t, manager.Destroy(context.Background(), "garbage"))
	})

	t.Run("valid token deletes the record", func(t *testing.T) {
		mockRepo := new(MockSessionRepository)
		mockRepo.On("Delete", mock.Anything, "sid").Return(nil)

		manager := newTestManager(mockRepo)
		token, err := manager.signer.Sign("sid")
		require.NoError(t, err)

		assert.NoError(t, manager.Destroy(context.Background(), token))
		// destroying again hits the same idempotent delete
		mockRepo.On("Delete", mock.Anything, "sid").Return(nil)
		assert.NoError(t, manager.Destroy(context.Background(), token))
	})
}
