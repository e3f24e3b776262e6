package controllers

import (
	"errors"
	"net/http"

	"github.com/acquisitions/users-api/internal/middleware"
	"github.com/acquisitions/users-api/internal/models"
	"github.com/acquisitions/users-api/internal/services"
	"github.com/acquisitions/users-api/internal/validation"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// UsersController handles HTTP requests on the user directory
type UsersController interface {
	// GetAllUsers retrieves all users
	GetAllUsers(c *gin.Context)
	// GetUserByID retrieves a user by its ID
	GetUserByID(c *gin.Context)
	// UpdateUser applies a partial update to a user
	UpdateUser(c *gin.Context)
	// DeleteUser permanently removes a user
	DeleteUser(c *gin.Context)
}

type usersController struct {
	users services.UserService
}

// NewUsersController creates a new instance of UsersController
func NewUsersController(users services.UserService) UsersController {
	return &usersController{users: users}
}

// GetAllUsers godoc
// @Summary List all users
// @Description Get every user record. Admin only.
// @Tags users
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} models.APIError
// @Failure 403 {object} models.APIError
// @Router /users [get]
func (uc *usersController) GetAllUsers(ctx *gin.Context) {
	log.Info("Fetching all users")
	users, err := uc.users.GetAllUsers()
	if err != nil {
		respondInternalError(ctx, "Error fetching all users", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "All users fetched successfully",
		"data":    users,
		"count":   len(users),
	})
}

// GetUserByID godoc
// @Summary Get a user
// @Description Get a single user by ID. Owner or admin only.
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} models.APIError
// @Failure 401 {object} models.APIError
// @Failure 403 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Router /users/{id} [get]
func (uc *usersController) GetUserByID(ctx *gin.Context) {
	id, err := validation.ParseUserID(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrBadRequest, "ID must be a positive integer"))
		return
	}

	user, err := uc.users.GetUserByID(id)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			ctx.JSON(http.StatusNotFound, models.NewAPIError(models.ErrUserNotFound, "User not found"))
			return
		}
		respondInternalError(ctx, "Error fetching user", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "User fetched successfully",
		"user":    user,
	})
}

// UpdateUser godoc
// @Summary Update a user
// @Description Apply a partial update to a user. Owner or admin only; only admins may change roles.
// @Tags users
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param payload body validation.UpdateUserRequest true "Fields to update"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} models.APIError
// @Failure 401 {object} models.APIError
// @Failure 403 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Router /users/{id} [put]
func (uc *usersController) UpdateUser(ctx *gin.Context) {
	id, err := validation.ParseUserID(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrBadRequest, "ID must be a positive integer"))
		return
	}

	var req validation.UpdateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrBadRequest, "Invalid request body"))
		return
	}
	if err := req.Validate(); err != nil {
		respondValidationError(ctx, err)
		return
	}

	// Role changes are admin-only, independent of ownership.
	if req.Role != nil {
		_, role, ok := middleware.CurrentUser(ctx)
		if !ok || role != models.RoleAdmin {
			ctx.JSON(http.StatusForbidden, models.NewAPIError(models.ErrForbidden, "Access denied. Only admins can change roles."))
			return
		}
	}

	user, err := uc.users.UpdateUser(id, services.UserUpdate{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			ctx.JSON(http.StatusNotFound, models.NewAPIError(models.ErrUserNotFound, "User not found"))
		case errors.Is(err, services.ErrEmailTaken):
			ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrEmailTaken, "User with this email already exists"))
		default:
			respondInternalError(ctx, "Error updating user", err)
		}
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "User updated successfully",
		"user":    user,
	})
}

// DeleteUser godoc
// @Summary Delete a user
// @Description Permanently remove a user. Owner or admin only.
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} models.APIError
// @Failure 401 {object} models.APIError
// @Failure 403 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Router /users/{id} [delete]
func (uc *usersController) DeleteUser(ctx *gin.Context) {
	id, err := validation.ParseUserID(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrBadRequest, "ID must be a positive integer"))
		return
	}

	summary, err := uc.users.DeleteUser(id)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			ctx.JSON(http.StatusNotFound, models.NewAPIError(models.ErrUserNotFound, "User not found"))
			return
		}
		respondInternalError(ctx, "Error deleting user", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "User deleted successfully",
		"user":    summary,
	})
}
