package domain

import "errors"

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrCaptchaRejected = errors.New("captcha verification failed")
var ErrUsernameTaken = errors.New("username already taken")
var ErrUserNotFound = errors.New("user not found")
var ErrUnauthorized = errors.New("unauthorized")

// User models a registered customer or administrator.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Password string `json:"-"`
	Email    string `json:"email,omitempty"`
	IsAdmin  bool   `json:"isAdmin"`
}
