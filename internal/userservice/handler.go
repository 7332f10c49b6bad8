package userservice

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/krn-hov/Blog-List-App/internal/common"
)

var (
	ErrAuthenticationFailure = errors.New("invalid authentication credentials")
)

func NewUserService(db *sql.DB, mb common.MessageProducer, c *common.Cache, secret []byte) *UserService {
	return &UserService{
		m:      newUserModel(db),
		mb:     mb,
		c:      c,
		secret: secret,
	}
}

// RegisterUser creates a new user account and publishes a user.created event.
func (s *UserService) RegisterUser(ctx context.Context, username, name, email, password string) (*User, error) {
	v := common.NewValidator()
	validateUsername(v, username)
	validateName(v, name)
	validateEmail(v, email)
	validatePassword(v, password)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	u := User{
		Username: username,
		Name:     name,
		Email:    email,
	}

	err := u.Password.set(password)
	if err != nil {
		return nil, err
	}

	err = s.m.insertUser(ctx, &u)
	if err != nil {
		return nil, err
	}

	data := struct {
		Email string
		Name  string
	}{
		Email: u.Email,
		Name:  u.Name,
	}

	eventData, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	err = s.mb.Publish(ctx, eventData, common.UserCreatedKey, common.UserExchange)
	if err != nil {
		return nil, err
	}

	return &u, nil
}

// LoginUser checks a username/password pair against the stored bcrypt hash and
// mints a signed access token on success. An unknown username and a wrong
// password are indistinguishable to the caller.
func (s *UserService) LoginUser(ctx context.Context, username, password string) (*LoginResult, error) {
	user, err := s.m.getUserByUsername(ctx, username)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return nil, ErrAuthenticationFailure
		default:
			return nil, err
		}
	}

	ok, err := user.Password.compare(password)
	if err != nil {
		return nil, err
	}

	if !ok {
		return nil, ErrAuthenticationFailure
	}

	token, err := newAccessToken(s.secret, user, AccessTokenTime)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		Token:    token,
		Username: user.Username,
		Name:     user.Name,
	}, nil
}

// GetUserForToken verifies an access token and resolves it to the user it was
// issued for. A token whose user no longer exists counts as invalid.
func (s *UserService) GetUserForToken(ctx context.Context, token string) (*User, error) {
	id, _, err := parseAccessToken(s.secret, token)
	if err != nil {
		return nil, err
	}

	if s.c != nil {
		if cached, ok := s.c.Get(common.CacheKeyUserByID(id)); ok {
			if user, ok := cached.(*User); ok {
				return user, nil
			}
		}
	}

	user, err := s.m.getUserByID(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return nil, ErrInvalidToken
		default:
			return nil, err
		}
	}

	if s.c != nil {
		s.c.Set(common.CacheKeyUserByID(id), user, userCacheTime)
	}

	return user, nil
}

func (u *User) IsAnonymous() bool {
	return u == &AnonymousUser
}
