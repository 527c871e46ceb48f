// internal/interfaces/user_repository.go
package interfaces

import (
	"context"

	"adpulse/internal/models"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}
