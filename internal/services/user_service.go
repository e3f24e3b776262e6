package services

import (
	"errors"
	"time"

	"github.com/acquisitions/users-api/internal/models"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// UserUpdate is a partial patch over a user record. Nil fields are left
// untouched.
type UserUpdate struct {
	Name     *string
	Email    *string
	Password *string
	Role     *string
}

// UserService provides CRUD operations over the user table.
type UserService interface {
	// GetAllUsers retrieves every user, password hashes excluded.
	GetAllUsers() ([]models.User, error)
	// GetUserByID retrieves a single user by ID.
	GetUserByID(id uint) (*models.User, error)
	// UpdateUser applies a partial patch, re-hashing the password and
	// re-checking email uniqueness when those fields are present.
	UpdateUser(id uint, patch UserUpdate) (*models.User, error)
	// DeleteUser permanently removes a user and returns a summary of the
	// deleted record.
	DeleteUser(id uint) (*models.UserSummary, error)
}

// userService is the implementation of the UserService interface
type userService struct {
	db *gorm.DB
}

// NewUserService creates a new instance of UserService
func NewUserService(db *gorm.DB) UserService {
	return &userService{db: db}
}

func (s *userService) GetAllUsers() ([]models.User, error) {
	var users []models.User
	if err := s.db.Omit("password").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (s *userService) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	user.Password = ""
	return &user, nil
}

func (s *userService) UpdateUser(id uint, patch UserUpdate) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	updates := map[string]interface{}{}
	if patch.Name != nil {
		updates["name"] = *patch.Name
	}
	if patch.Email != nil && *patch.Email != user.Email {
		// Same racy pre-check as Register; the unique index is the backstop.
		var existing models.User
		if err := s.db.Where("email = ? AND id <> ?", *patch.Email, id).First(&existing).Error; err == nil {
			return nil, ErrEmailTaken
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		updates["email"] = *patch.Email
	}
	if patch.Password != nil {
		hashed, err := HashPassword(*patch.Password)
		if err != nil {
			return nil, err
		}
		updates["password"] = hashed
	}
	if patch.Role != nil {
		updates["role"] = *patch.Role
	}
	updates["updated_at"] = time.Now()

	if err := s.db.Model(&user).Updates(updates).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	log.WithField("user_id", id).Info("User updated successfully")
	user.Password = ""
	return &user, nil
}

func (s *userService) DeleteUser(id uint) (*models.UserSummary, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if err := s.db.Delete(&user).Error; err != nil {
		return nil, err
	}

	log.WithField("user_id", id).Info("User deleted successfully")
	summary := user.Summary()
	return &summary, nil
}
