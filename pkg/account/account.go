// Package account covers registration, login and profile updates on top of
// the user store. Passwords are hashed here and never reach the store in plaintext.
package account

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/borgmon/alarmist/pkg/logger"
	"github.com/borgmon/alarmist/pkg/models"
	"github.com/borgmon/alarmist/pkg/store"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidEmail      = errors.New("invalid email address")
	ErrEmptyPassword     = errors.New("password is required")
	ErrEmptyName         = errors.New("first and last name are required")
	ErrIncorrectPassword = errors.New("incorrect password")
)

// Session identifies the logged-in user for the dashboard
type Session struct {
	Email       string
	DisplayName string
}

// Service wires the account forms to the user store
type Service struct {
	users *store.UserStore
	cost  int
}

// NewService creates a Service using bcrypt.DefaultCost
func NewService(users *store.UserStore) *Service {
	return &Service{users: users, cost: bcrypt.DefaultCost}
}

// HashPassword hashes plaintext using bcrypt
func (s *Service) HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), s.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// Register validates the form, hashes the password and creates the user record
func (s *Service) Register(email, firstName, lastName, password string) (*Session, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}
	if err := validateProfile(firstName, lastName, password); err != nil {
		return nil, err
	}

	hash, err := s.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := models.User{FirstName: strings.TrimSpace(firstName), LastName: strings.TrimSpace(lastName), Password: hash}
	if err := s.users.Create(email, user); err != nil {
		return nil, err
	}

	logger.Log.Infow("user registered", "email", email)
	return &Session{Email: email, DisplayName: user.DisplayName()}, nil
}

// Login checks the password against the stored hash
func (s *Service) Login(email, password string) (*Session, error) {
	email = strings.TrimSpace(email)
	user, err := s.users.Read(email)
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		logger.Log.Warnw("login rejected", "email", email)
		return nil, ErrIncorrectPassword
	}

	return &Session{Email: email, DisplayName: user.DisplayName()}, nil
}

// UpdateProfile replaces name and password and moves the record to newEmail.
// The caller is expected to end the session afterwards.
func (s *Service) UpdateProfile(oldEmail, newEmail, firstName, lastName, password string) error {
	newEmail, err := normalizeEmail(newEmail)
	if err != nil {
		return err
	}
	if err := validateProfile(firstName, lastName, password); err != nil {
		return err
	}

	hash, err := s.HashPassword(password)
	if err != nil {
		return err
	}

	update := models.ProfileUpdate{
		FirstName: strings.TrimSpace(firstName),
		LastName:  strings.TrimSpace(lastName),
		Password:  hash,
	}
	if err := s.users.Rekey(oldEmail, newEmail, update); err != nil {
		return err
	}

	logger.Log.Infow("profile updated", "old_email", oldEmail, "new_email", newEmail)
	return nil
}

func normalizeEmail(email string) (string, error) {
	email = strings.TrimSpace(email)
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", ErrInvalidEmail
	}
	return email, nil
}

func validateProfile(firstName, lastName, password string) error {
	if strings.TrimSpace(firstName) == "" || strings.TrimSpace(lastName) == "" {
		return ErrEmptyName
	}
	if password == "" {
		return ErrEmptyPassword
	}
	return nil
}
