package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/borgmon/alarmist/pkg/models"
	"github.com/borgmon/alarmist/pkg/storage"
)

var (
	ErrDuplicateUser  = errors.New("user already registered")
	ErrNotFound       = errors.New("user not found")
	ErrDuplicateAlarm = errors.New("alarm already added for the selected date and time")
	ErrEmailTaken     = errors.New("email already registered")
)

// UserStore persists one JSON user record per email.
// Every mutation reads, modifies and rewrites the whole record. The mutex only
// serializes callers within this process; other processes sharing the storage
// are last-writer-wins.
type UserStore struct {
	mu sync.Mutex
	kv storage.Storage
}

// NewUserStore creates a UserStore on top of kv
func NewUserStore(kv storage.Storage) *UserStore {
	return &UserStore{kv: kv}
}

// Create persists record under email with an empty alarm list
func (us *UserStore) Create(email string, record models.User) error {
	us.mu.Lock()
	defer us.mu.Unlock()

	if _, exists := us.kv.Get(email); exists {
		return ErrDuplicateUser
	}

	record.Alarms = []string{}
	return us.write(email, &record)
}

// Read returns the record stored under email
func (us *UserStore) Read(email string) (*models.User, error) {
	us.mu.Lock()
	defer us.mu.Unlock()

	return us.read(email)
}

// Alarms returns the user's alarm labels in insertion order
func (us *UserStore) Alarms(email string) ([]string, error) {
	user, err := us.Read(email)
	if err != nil {
		return nil, err
	}
	return user.Alarms, nil
}

// AddAlarm appends label unless the exact string is already present
func (us *UserStore) AddAlarm(email, label string) error {
	us.mu.Lock()
	defer us.mu.Unlock()

	user, err := us.read(email)
	if err != nil {
		return err
	}
	if user.HasAlarm(label) {
		return ErrDuplicateAlarm
	}

	user.Alarms = append(user.Alarms, label)
	return us.write(email, user)
}

// RemoveAlarm drops the first exact match of label. Missing labels are not an error.
func (us *UserStore) RemoveAlarm(email, label string) error {
	us.mu.Lock()
	defer us.mu.Unlock()

	user, err := us.read(email)
	if err != nil {
		return err
	}
	if !user.RemoveAlarm(label) {
		return nil
	}
	return us.write(email, user)
}

// Rekey moves the record from oldEmail to newEmail, applying update on the way.
// newEmail must not have a record yet, which rules out keeping the same email.
func (us *UserStore) Rekey(oldEmail, newEmail string, update models.ProfileUpdate) error {
	us.mu.Lock()
	defer us.mu.Unlock()

	user, err := us.read(oldEmail)
	if err != nil {
		return err
	}
	if _, exists := us.kv.Get(newEmail); exists {
		return ErrEmailTaken
	}

	user.FirstName = update.FirstName
	user.LastName = update.LastName
	user.Password = update.Password

	if err := us.write(newEmail, user); err != nil {
		return err
	}
	if newEmail != oldEmail {
		us.kv.Remove(oldEmail)
	}
	return nil
}

func (us *UserStore) read(email string) (*models.User, error) {
	raw, exists := us.kv.Get(email)
	if !exists {
		return nil, ErrNotFound
	}

	var user models.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return nil, fmt.Errorf("decode user record %q: %w", email, err)
	}
	if user.Alarms == nil {
		user.Alarms = []string{}
	}
	return &user, nil
}

func (us *UserStore) write(email string, user *models.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user record %q: %w", email, err)
	}
	us.kv.Set(email, string(data))
	return nil
}
