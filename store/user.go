package store

import (
	"context"

	"github.com/smartacademy/academy/internal/errors"
)

// Role is the access level of a user.
type Role string

const (
	// RoleAdmin is the administrator role, allowed to manage the catalog.
	RoleAdmin Role = "admin"
	// RoleUser is the regular user role.
	RoleUser Role = "user"
)

// User is an account known to the system. The recommendation core only
// needs its identifier; the rest serves the auth and notification surfaces.
type User struct {
	ID           int32
	UID          string
	FirstName    string
	LastName     string
	Phone        string
	Email        string
	PasswordHash string
	Role         Role
	CreatedTs    int64
	UpdatedTs    int64
}

// FindUser is the find condition for users.
type FindUser struct {
	ID    *int32
	UID   *string
	Email *string
}

// DeleteUser is the delete condition for users.
type DeleteUser struct {
	ID int32
}

func (s *Store) CreateUser(ctx context.Context, create *User) (*User, error) {
	if create.Email == "" {
		return nil, errors.InvalidArgument("user email is required")
	}
	user, err := s.driver.CreateUser(ctx, create)
	if err != nil {
		return nil, err
	}
	s.userCache.Set(userCacheKey(user.ID), user)
	return user, nil
}

func (s *Store) ListUsers(ctx context.Context, find *FindUser) ([]*User, error) {
	return s.driver.ListUsers(ctx, find)
}

// GetUser returns a single user matching the find condition, or a NotFound
// error when no user matches.
func (s *Store) GetUser(ctx context.Context, find *FindUser) (*User, error) {
	if find.ID != nil {
		if cached, ok := s.userCache.Get(userCacheKey(*find.ID)); ok {
			return cached.(*User), nil
		}
	}

	list, err := s.driver.ListUsers(ctx, find)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, errors.NotFound("user not found")
	}

	user := list[0]
	s.userCache.Set(userCacheKey(user.ID), user)
	return user, nil
}

func (s *Store) DeleteUser(ctx context.Context, delete *DeleteUser) error {
	if err := s.driver.DeleteUser(ctx, delete); err != nil {
		return err
	}
	s.userCache.Delete(userCacheKey(delete.ID))
	return nil
}

func userCacheKey(id int32) string {
	return "user:" + int32Key(id)
}
