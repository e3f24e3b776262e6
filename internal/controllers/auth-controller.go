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

// AuthController handles signup, signin and signout requests
type AuthController interface {
	// SignUp registers a new user and sets the token cookie
	SignUp(c *gin.Context)
	// SignIn authenticates an existing user and sets the token cookie
	SignIn(c *gin.Context)
	// SignOut clears the token cookie
	SignOut(c *gin.Context)
}

type authController struct {
	auth         services.AuthService
	tokens       services.TokenService
	cookieSecure bool
}

// NewAuthController creates a new instance of AuthController
func NewAuthController(auth services.AuthService, tokens services.TokenService, cookieSecure bool) AuthController {
	return &authController{auth: auth, tokens: tokens, cookieSecure: cookieSecure}
}

// SignUp godoc
// @Summary Register a new user
// @Description Create a user account and set the session token cookie
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body validation.SignupRequest true "Signup payload"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} models.APIError
// @Failure 500 {object} models.APIError
// @Router /sign-up [post]
func (ac *authController) SignUp(ctx *gin.Context) {
	var req validation.SignupRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrBadRequest, "Invalid request body"))
		return
	}
	if err := req.Validate(); err != nil {
		respondValidationError(ctx, err)
		return
	}

	user, err := ac.auth.Register(req.Name, req.Email, req.Password, req.Role)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrEmailTaken, "User with this email already exists"))
			return
		}
		respondInternalError(ctx, "Error in signup", err)
		return
	}

	if !ac.setTokenCookie(ctx, user) {
		return
	}

	log.WithField("email", user.Email).Info("User registered successfully")
	ctx.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully",
		"user":    user.Summary(),
	})
}

// SignIn godoc
// @Summary Authenticate a user
// @Description Verify credentials and set the session token cookie
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body validation.SigninRequest true "Signin payload"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} models.APIError
// @Failure 401 {object} models.APIError
// @Failure 500 {object} models.APIError
// @Router /sign-in [post]
func (ac *authController) SignIn(ctx *gin.Context) {
	var req validation.SigninRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrBadRequest, "Invalid request body"))
		return
	}
	if err := req.Validate(); err != nil {
		respondValidationError(ctx, err)
		return
	}

	user, err := ac.auth.Authenticate(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			ctx.JSON(http.StatusUnauthorized, models.NewAPIError(models.ErrInvalidCredentials, "Invalid email or password"))
			return
		}
		respondInternalError(ctx, "Error in signin", err)
		return
	}

	if !ac.setTokenCookie(ctx, user) {
		return
	}

	log.WithField("email", user.Email).Info("User signed in successfully")
	ctx.JSON(http.StatusOK, gin.H{
		"message": "User signed in successfully",
		"user":    user.Summary(),
	})
}

// SignOut godoc
// @Summary Sign out
// @Description Clear the session token cookie
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]string
// @Router /sign-out [post]
func (ac *authController) SignOut(ctx *gin.Context) {
	ctx.SetCookie(middleware.TokenCookie, "", -1, "/", "", ac.cookieSecure, true)
	ctx.JSON(http.StatusOK, gin.H{"message": "User signed out successfully"})
}

// setTokenCookie issues a token for the user and attaches it as the session
// cookie. Responds with 500 and returns false when issuance fails.
func (ac *authController) setTokenCookie(ctx *gin.Context, user *models.User) bool {
	token, err := ac.tokens.Issue(user)
	if err != nil {
		respondInternalError(ctx, "Failed to generate token", err)
		return false
	}
	maxAge := int(ac.tokens.Expiry().Seconds())
	ctx.SetCookie(middleware.TokenCookie, token, maxAge, "/", "", ac.cookieSecure, true)
	return true
}
