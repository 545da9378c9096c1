package userservice

import (
	"database/sql"
	"time"

	"github.com/ishaangoyal/quickmark/internal/common"
)

type UserService struct {
	m        *UserModel
	mb       common.MessageProducer
	c        *common.Cache
	secret   []byte
	tokenTTL time.Duration
}

type UserModel struct {
	db *sql.DB
}

type User struct {
	ID        int       `json:"id"`
	Name      *string   `json:"name,omitempty"`
	Email     string    `json:"email"`
	Password  Password  `json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Password struct {
	Plain string `json:"-"`
	hash  []byte `json:"-"`
}
