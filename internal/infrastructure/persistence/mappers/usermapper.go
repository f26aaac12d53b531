package mappers

import (
	"ticketapp/internal/domain/user"
	"ticketapp/internal/infrastructure/persistence/models"
	"ticketapp/internal/shared/authorization"
)

// UserMapper handles the conversion between domain records and persistence models
type UserMapper interface {
	// ToEntity converts a persistence model to the public user record
	ToEntity(model *models.UserModel) *user.User

	// ToEntities converts multiple persistence models
	ToEntities(models []*models.UserModel) []*user.User

	// ToCredentials keeps the password hash alongside the public record
	ToCredentials(model *models.UserModel) *user.Credentials
}

// UserMapperImpl is the concrete implementation of UserMapper
type UserMapperImpl struct{}

// NewUserMapper creates a new user mapper
func NewUserMapper() UserMapper {
	return &UserMapperImpl{}
}

func (m *UserMapperImpl) ToEntity(model *models.UserModel) *user.User {
	if model == nil {
		return nil
	}

	return &user.User{
		ID:        model.ID,
		Username:  model.Username,
		Role:      authorization.UserRole(model.Role),
		CreatedAt: model.CreatedAt.UTC(),
	}
}

func (m *UserMapperImpl) ToEntities(list []*models.UserModel) []*user.User {
	entities := make([]*user.User, 0, len(list))
	for _, model := range list {
		entities = append(entities, m.ToEntity(model))
	}
	return entities
}

func (m *UserMapperImpl) ToCredentials(model *models.UserModel) *user.Credentials {
	if model == nil {
		return nil
	}

	hash := make([]byte, len(model.PasswordHash))
	copy(hash, model.PasswordHash)

	return &user.Credentials{
		User:         *m.ToEntity(model),
		PasswordHash: hash,
	}
}
