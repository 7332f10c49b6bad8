package userservice

import (
	"database/sql"
	"time"

	"github.com/krn-hov/Blog-List-App/internal/common"
)

const (
	// AccessTokenTime bounds how long an issued access token stays valid.
	AccessTokenTime time.Duration = time.Hour

	userCacheTime time.Duration = time.Minute
)

var (
	AnonymousUser = User{}
)

type UserService struct {
	m      *DBModel
	mb     common.MessageProducer
	c      *common.Cache
	secret []byte
}

type DBModel struct {
	db *sql.DB
}

type User struct {
	ID        int       `json:"id"`
	Username  string    `json:"username"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Password  Password  `json:"-"`
	CreatedAt time.Time `json:"-"`
}

type Password struct {
	Plain string `json:"-"`
	hash  []byte `json:"-"`
}

// LoginResult is the payload handed back to a successfully authenticated user.
type LoginResult struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Name     string `json:"name"`
}
