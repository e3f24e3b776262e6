package services

import (
	"errors"
	"fmt"

	"github.com/acquisitions/users-api/internal/models"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// bcryptCost is the fixed work factor for password hashing.
const bcryptCost = 10

// maxPasswordBytes is bcrypt's input limit. Go's bcrypt rejects longer
// input where other implementations silently truncate, so truncate here to
// keep the full 6-255 character range accepted.
const maxPasswordBytes = 72

func passwordBytes(password string) []byte {
	b := []byte(password)
	if len(b) > maxPasswordBytes {
		b = b[:maxPasswordBytes]
	}
	return b
}

// AuthService creates and authenticates user accounts against the database.
type AuthService interface {
	// Register creates a new user with a hashed password. The returned user
	// never carries the password hash.
	Register(name, email, password, role string) (*models.User, error)
	// Authenticate verifies email/password credentials and returns the
	// matching user without its password hash.
	Authenticate(email, password string) (*models.User, error)
}

type authService struct {
	db *gorm.DB
}

// NewAuthService creates a new instance of AuthService
func NewAuthService(db *gorm.DB) AuthService {
	return &authService{db: db}
}

// HashPassword produces a salted bcrypt hash of the given password.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword(passwordBytes(password), bcryptCost)
	if err != nil {
		log.WithError(err).Error("Error while hashing password")
		return "", fmt.Errorf("%w: %v", ErrHashingFailed, err)
	}
	return string(hashed), nil
}

// CheckPassword compares a plaintext password against a stored bcrypt hash.
// A mismatch returns (false, nil); only a primitive failure returns an error.
func CheckPassword(password, hashed string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hashed), passwordBytes(password))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	log.WithError(err).Error("Error while comparing password")
	return false, fmt.Errorf("%w: %v", ErrHashingFailed, err)
}

func (s *authService) Register(name, email, password, role string) (*models.User, error) {
	// Existence pre-check gives a deterministic error on the common path.
	// The unique index on email backs it up: concurrent identical signups
	// race past this check and one of them hits gorm.ErrDuplicatedKey below.
	var existing models.User
	if err := s.db.Where("email = ?", email).First(&existing).Error; err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Name:     name,
		Email:    email,
		Password: hashed,
		Role:     role,
	}
	if err := s.db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	log.WithField("email", email).Info("User created successfully")
	user.Password = ""
	return &user, nil
}

func (s *authService) Authenticate(email, password string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	valid, err := CheckPassword(password, user.Password)
	if err != nil {
		return nil, err
	}
	if !valid {
		return nil, ErrInvalidCredentials
	}

	log.WithField("email", email).Info("User authenticated successfully")
	user.Password = ""
	return &user, nil
}
