package userservice

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/krn-hov/Blog-List-App/internal/common"
)

// stubProducer records published events instead of talking to a broker.
type stubProducer struct {
	published [][]byte
}

func (p *stubProducer) Publish(ctx context.Context, msg []byte, key common.BindingKey, exchange common.Exchange) error {
	p.published = append(p.published, msg)
	return nil
}

func setupTestService(t *testing.T) (*UserService, *stubProducer, *sql.DB) {
	db := common.TestDB("file://../../migrations", t)
	cache := common.NewCache(5*time.Minute, 10*time.Minute)
	producer := &stubProducer{}

	return NewUserService(db, producer, cache, testSecret), producer, db
}

func TestRegisterUser(t *testing.T) {
	s, producer, db := setupTestService(t)

	testCases := []struct {
		name        string
		username    string
		fullName    string
		email       string
		password    string
		setup       func() error
		expectedErr error
	}{
		{
			name:     "valid registration",
			username: "krnhov",
			fullName: "Karen Hovhannisyan",
			email:    "krnhov@example.com",
			password: "correct horse battery",
		},
		{
			name:        "invalid email",
			username:    "krnhov",
			fullName:    "Karen Hovhannisyan",
			email:       "not-an-email",
			password:    "correct horse battery",
			expectedErr: common.ValidationError{Errors: map[string]string{"email": "must be a valid email address"}},
		},
		{
			name:        "short password",
			username:    "krnhov",
			fullName:    "Karen Hovhannisyan",
			email:       "krnhov@example.com",
			password:    "sekret",
			expectedErr: common.ValidationError{Errors: map[string]string{"password": "must be between 8 and 72 characters long"}},
		},
		{
			name:     "duplicate username",
			username: "krnhov",
			fullName: "Karen Hovhannisyan",
			email:    "different@example.com",
			password: "correct horse battery",
			setup: func() error {
				_, err := db.Exec("INSERT INTO users (username, name, email, password) VALUES ($1, $2, $3, $4)", "krnhov", "Someone Else", "krnhov@example.com", []byte("x"))
				return err
			},
			expectedErr: ErrDuplicateUsername,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.setup != nil {
				assert.NoError(t, tc.setup())
			}

			ctx := context.Background()

			user, err := s.RegisterUser(ctx, tc.username, tc.fullName, tc.email, tc.password)
			assert.Equal(t, tc.expectedErr, err)

			if err == nil {
				assert.NotZero(t, user.ID)
				assert.Equal(t, tc.username, user.Username)
				assert.Equal(t, tc.fullName, user.Name)
				assert.Len(t, producer.published, 1)
			}

			t.Cleanup(func() {
				_, err := db.Exec("DELETE FROM users")
				assert.NoError(t, err)
				producer.published = nil
			})
		})
	}
}

func TestLoginUser(t *testing.T) {
	s, _, db := setupTestService(t)

	ctx := context.Background()

	_, err := s.RegisterUser(ctx, "krnhov", "Karen Hovhannisyan", "krnhov@example.com", "correct horse battery")
	assert.NoError(t, err)

	testCases := []struct {
		name        string
		username    string
		password    string
		expectedErr error
	}{
		{name: "valid credentials", username: "krnhov", password: "correct horse battery"},
		{name: "wrong password", username: "krnhov", password: "wrong password!", expectedErr: ErrAuthenticationFailure},
		{name: "unknown username", username: "nobody", password: "correct horse battery", expectedErr: ErrAuthenticationFailure},
		{name: "empty credentials", username: "", password: "", expectedErr: ErrAuthenticationFailure},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := s.LoginUser(ctx, tc.username, tc.password)
			assert.Equal(t, tc.expectedErr, err)

			if err == nil {
				assert.NotEmpty(t, result.Token)
				assert.Equal(t, "krnhov", result.Username)
				assert.Equal(t, "Karen Hovhannisyan", result.Name)
			}
		})
	}

	t.Cleanup(func() {
		_, err := db.Exec("DELETE FROM users")
		assert.NoError(t, err)
	})
}

func TestGetUserForToken(t *testing.T) {
	s, _, db := setupTestService(t)

	ctx := context.Background()

	user, err := s.RegisterUser(ctx, "krnhov", "Karen Hovhannisyan", "krnhov@example.com", "correct horse battery")
	assert.NoError(t, err)

	result, err := s.LoginUser(ctx, "krnhov", "correct horse battery")
	assert.NoError(t, err)

	got, err := s.GetUserForToken(ctx, result.Token)
	assert.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	assert.Equal(t, "krnhov", got.Username)

	// second resolution is served from the cache
	got, err = s.GetUserForToken(ctx, result.Token)
	assert.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	_, err = s.GetUserForToken(ctx, "not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	// a token for a user that no longer exists counts as invalid
	orphan, err := newAccessToken(testSecret, &User{ID: 9999, Username: "ghost"}, AccessTokenTime)
	assert.NoError(t, err)

	_, err = s.GetUserForToken(ctx, orphan)
	assert.ErrorIs(t, err, ErrInvalidToken)

	t.Cleanup(func() {
		_, err := db.Exec("DELETE FROM users")
		assert.NoError(t, err)
	})
}
