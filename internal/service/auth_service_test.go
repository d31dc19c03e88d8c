package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "stockroom/internal/errors"
	"stockroom/internal/model"
)

// MockUserRepository is a mock implementation of repository.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByIDs(ctx context.Context, ids []uint) ([]model.User, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

// MockSessions is a mock implementation of auth.Sessions.
type MockSessions struct {
	mock.Mock
}

func (m *MockSessions) Create(ctx context.Context, userID uint) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}

func (m *MockSessions) Resolve(ctx context.Context, token string) (uint, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(uint), args.Error(1)
}

func (m *MockSessions) Destroy(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name          string
		firstName     string
		lastName      string
		username      string
		password      string
		setupMock     func(*MockUserRepository, *MockSessions)
		expectedError error
	}{
		{
			name:      "successful registration with auto-login",
			firstName: "Ann",
			lastName:  "Lee",
			username:  "ann",
			password:  "pw123",
			setupMock: func(mRepo *MockUserRepository, mSess *MockSessions) {
				mRepo.On("FindByUsername", mock.Anything, "ann").Return(nil, gorm.ErrRecordNotFound)
				mRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
				mSess.On("Create", mock.Anything, mock.AnythingOfType("uint")).Return("signed-token", nil)
			},
			expectedError: nil,
		},
		{
			name:          "missing field",
			firstName:     "Ann",
			lastName:      "",
			username:      "ann",
			password:      "pw123",
			setupMock:     func(*MockUserRepository, *MockSessions) {},
			expectedError: apperrors.ErrMissingField,
		},
		{
			name:      "duplicate username on fast path",
			firstName: "Ann",
			lastName:  "Lee",
			username:  "taken",
			password:  "pw123",
			setupMock: func(mRepo *MockUserRepository, mSess *MockSessions) {
				mRepo.On("FindByUsername", mock.Anything, "taken").Return(&model.User{ID: 2, Username: "taken"}, nil)
			},
			expectedError: apperrors.ErrDuplicateUsername,
		},
		{
			name:      "duplicate username caught by unique index",
			firstName: "Ann",
			lastName:  "Lee",
			username:  "raced",
			password:  "pw123",
			setupMock: func(mRepo *MockUserRepository, mSess *MockSessions) {
				mRepo.On("FindByUsername", mock.Anything, "raced").Return(nil, gorm.ErrRecordNotFound)
				mRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(gorm.ErrDuplicatedKey)
			},
			expectedError: apperrors.ErrDuplicateUsername,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			mockSessions := new(MockSessions)
			tt.setupMock(mockRepo, mockSessions)

			svc := NewAuthService(mockRepo, mockSessions)
			user, token, err := svc.Register(context.Background(), tt.firstName, tt.lastName, tt.username, tt.password)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, user)
				assert.Empty(t, token)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, user)
				assert.Equal(t, tt.username, user.Username)
				assert.NotEmpty(t, user.PasswordHash)
				assert.NotEqual(t, tt.password, user.PasswordHash)
				assert.Equal(t, "signed-token", token)
			}

			mockRepo.AssertExpectations(t)
			mockSessions.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	hashed, _ := bcrypt.GenerateFromPassword([]byte("pw123"), bcryptCost)

	tests := []struct {
		name          string
		username      string
		password      string
		setupMock     func(*MockUserRepository, *MockSessions)
		expectedError error
	}{
		{
			name:     "successful login",
			username: "ann",
			password: "pw123",
			setupMock: func(mRepo *MockUserRepository, mSess *MockSessions) {
				mRepo.On("FindByUsername", mock.Anything, "ann").Return(&model.User{
					ID:           1,
					Username:     "ann",
					PasswordHash: string(hashed),
				}, nil)
				mSess.On("Create", mock.Anything, uint(1)).Return("signed-token", nil)
			},
			expectedError: nil,
		},
		{
			name:     "unknown username",
			username: "ghost",
			password: "pw123",
			setupMock: func(mRepo *MockUserRepository, mSess *MockSessions) {
				mRepo.On("FindByUsername", mock.Anything, "ghost").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
		{
			name:     "wrong password yields the same error",
			username: "ann",
			password: "nope",
			setupMock: func(mRepo *MockUserRepository, mSess *MockSessions) {
				mRepo.On("FindByUsername", mock.Anything, "ann").Return(&model.User{
					ID:           1,
					Username:     "ann",
					PasswordHash: string(hashed),
				}, nil)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			mockSessions := new(MockSessions)
			tt.setupMock(mockRepo, mockSessions)

			svc := NewAuthService(mockRepo, mockSessions)
			user, token, err := svc.Login(context.Background(), tt.username, tt.password)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, user)
				assert.Empty(t, token)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, user)
				assert.NotEmpty(t, token)
			}

			mockRepo.AssertExpectations(t)
			mockSessions.AssertExpectations(t)
		})
	}
}

func TestAuthService_UpdateProfile(t *testing.T) {
	tests := []struct {
		name          string
		userID        uint
		username      string
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:     "keeping own username is not a collision",
			userID:   1,
			username: "ann",
			setupMock: func(mRepo *MockUserRepository) {
				mRepo.On("FindByUsername", mock.Anything, "ann").Return(&model.User{ID: 1, Username: "ann"}, nil)
				mRepo.On("FindByID", mock.Anything, uint(1)).Return(&model.User{ID: 1, Username: "ann"}, nil)
				mRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:     "colliding with another user fails",
			userID:   1,
			username: "bob",
			setupMock: func(mRepo *MockUserRepository) {
				mRepo.On("FindByUsername", mock.Anything, "bob").Return(&model.User{ID: 2, Username: "bob"}, nil)
			},
			expectedError: apperrors.ErrDuplicateUsername,
		},
		{
			name:     "fresh username succeeds",
			userID:   1,
			username: "newname",
			setupMock: func(mRepo *MockUserRepository) {
				mRepo.On("FindByUsername", mock.Anything, "newname").Return(nil, gorm.ErrRecordNotFound)
				mRepo.On("FindByID", mock.Anything, uint(1)).Return(&model.User{ID: 1, Username: "ann"}, nil)
				mRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
			expectedError: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			svc := NewAuthService(mockRepo, new(MockSessions))
			user, err := svc.UpdateProfile(context.Background(), tt.userID, "Ann", "Lee", tt.username)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.username, user.Username)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_ChangePassword(t *testing.T) {
	t.Run("empty password rejected", func(t *testing.T) {
		svc := NewAuthService(new(MockUserRepository), new(MockSessions))
		err := svc.ChangePassword(context.Background(), 1, "  ")
		assert.ErrorIs(t, err, apperrors.ErrMissingField)
	})

	t.Run("re-hashes and persists", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByID", mock.Anything, uint(1)).Return(&model.User{ID: 1, PasswordHash: "old"}, nil)
		mockRepo.On("Update", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
			return u.PasswordHash != "old" && bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("fresh")) == nil
		})).Return(nil)

		svc := NewAuthService(mockRepo, new(MockSessions))
		err := svc.ChangePassword(context.Background(), 1, "fresh")
		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})
}
