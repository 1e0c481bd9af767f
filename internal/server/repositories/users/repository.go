// Package users declares the account repository of the backend.
package users

import (
	"context"

	"github.com/dmitrijs2005/jobkeeper/internal/server/models"
)

type Repository interface {
	// Create stores a new user and fills in ID and CreatedAt. A taken email
	// yields common.ErrAlreadyExists.
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
}
