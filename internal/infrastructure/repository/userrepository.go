package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"ticketapp/internal/domain/user"
	"ticketapp/internal/infrastructure/persistence/mappers"
	"ticketapp/internal/infrastructure/persistence/models"
	"ticketapp/internal/shared/authorization"
	"ticketapp/internal/shared/db"
	sharedErrors "ticketapp/internal/shared/errors"
	"ticketapp/internal/shared/logger"
)

// UserRepository implements user.Repository on top of gorm
type UserRepository struct {
	db     *gorm.DB
	mapper mappers.UserMapper
	logger logger.Interface
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB, logger logger.Interface) user.Repository {
	return &UserRepository{
		db:     db,
		mapper: mappers.NewUserMapper(),
		logger: logger,
	}
}

// Create inserts a user; a username collision yields user.ErrUsernameTaken
func (r *UserRepository) Create(ctx context.Context, username string, passwordHash []byte, role authorization.UserRole) (*user.User, error) {
	model := &models.UserModel{
		Username:     username,
		PasswordHash: passwordHash,
		Role:         role.String(),
	}

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || sharedErrors.IsDuplicateError(err) {
			return nil, user.ErrUsernameTaken
		}
		r.logger.Errorw("failed to create user in database", "username", username, "error", err)
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	r.logger.Infow("user created", "id", model.ID, "username", model.Username, "role", model.Role)
	return r.mapper.ToEntity(model), nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id uint) (*user.User, error) {
	var model models.UserModel

	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return r.mapper.ToEntity(&model), nil
}

// GetCredentials retrieves a user and its password hash by exact username
func (r *UserRepository) GetCredentials(ctx context.Context, username string) (*user.Credentials, error) {
	var model models.UserModel

	if err := db.GetTxFromContext(ctx, r.db).
		Where("username = ?", username).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user credentials: %w", err)
	}

	return r.mapper.ToCredentials(&model), nil
}

// List returns every user ordered by username
func (r *UserRepository) List(ctx context.Context) ([]*user.User, error) {
	var list []*models.UserModel

	if err := db.GetTxFromContext(ctx, r.db).
		Order("username ASC").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	return r.mapper.ToEntities(list), nil
}

// ListRefs returns id and username of every user ordered by username
func (r *UserRepository) ListRefs(ctx context.Context) ([]user.Ref, error) {
	refs := make([]user.Ref, 0)

	if err := db.GetTxFromContext(ctx, r.db).
		Model(&models.UserModel{}).
		Select("id", "username").
		Order("username ASC").
		Scan(&refs).Error; err != nil {
		return nil, fmt.Errorf("failed to list user refs: %w", err)
	}

	return refs, nil
}

// UpdateRole sets the role of a user
func (r *UserRepository) UpdateRole(ctx context.Context, id uint, role authorization.UserRole) error {
	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.UserModel{}).
		Where("id = ?", id).
		Update("role", role.String())

	if result.Error != nil {
		return fmt.Errorf("failed to update user role: %w", result.Error)
	}

	r.logger.Infow("user role updated", "id", id, "role", role, "rows", result.RowsAffected)
	return nil
}

// Delete permanently removes a user. Tickets assigned to the user keep
// existing with their assignee cleared by the foreign key.
func (r *UserRepository) Delete(ctx context.Context, id uint) error {
	result := db.GetTxFromContext(ctx, r.db).Delete(&models.UserModel{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete user: %w", result.Error)
	}

	r.logger.Infow("user deleted", "id", id, "rows", result.RowsAffected)
	return nil
}

// Exists reports whether a user with the given id exists
func (r *UserRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64

	if err := db.GetTxFromContext(ctx, r.db).
		Model(&models.UserModel{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check user existence: %w", err)
	}

	return count > 0, nil
}
