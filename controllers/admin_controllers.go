package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/yeremiapane/table-order/middlewares"
	"github.com/yeremiapane/table-order/models"
	"github.com/yeremiapane/table-order/services"
	"github.com/yeremiapane/table-order/utils"
)

type AdminController struct {
	Admin  models.AdminUser
	Tokens *utils.TokenManager
	Orders *services.OrderService
}

func NewAdminController(admin models.AdminUser, tokens *utils.TokenManager, orders *services.OrderService) *AdminController {
	return &AdminController{Admin: admin, Tokens: tokens, Orders: orders}
}

// Login checks the staff credentials and returns a session token.
func (ac *AdminController) Login(c *gin.Context) {
	var input struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, models.NewValidationError("", "username and password are required"))
		return
	}

	if input.Username != ac.Admin.Username ||
		bcrypt.CompareHashAndPassword(ac.Admin.PasswordHash, []byte(input.Password)) != nil {
		utils.InfoLogger.WithField("username", input.Username).Warn("Failed admin login")
		utils.RespondError(c, http.StatusUnauthorized, ErrInvalidCredentials)
		return
	}

	token, expiresAt, err := ac.Tokens.GenerateToken(ac.Admin.Username, ac.Admin.Role)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.InfoLogger.WithField("username", ac.Admin.Username).Info("Admin logged in")
	utils.RespondJSON(c, http.StatusOK, gin.H{
		"token":     token,
		"expiresAt": expiresAt,
		"username":  ac.Admin.Username,
		"role":      ac.Admin.Role,
	})
}

// Logout revokes the token that AuthMiddleware accepted.
func (ac *AdminController) Logout(c *gin.Context) {
	token := c.GetString(middlewares.ContextToken)
	if token == "" {
		utils.RespondError(c, http.StatusUnauthorized, ErrMissingToken)
		return
	}
	if err := ac.Tokens.Revoke(token); err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Session reports who the bearer token belongs to.
func (ac *AdminController) Session(c *gin.Context) {
	token, ok := middlewares.BearerToken(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, ErrMissingToken)
		return
	}
	claims, err := ac.Tokens.ParseToken(token)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, gin.H{
		"authenticated": true,
		"username":      claims.Username,
		"role":          claims.Role,
		"expiresAt":     claims.ExpiresAt.Time,
	})
}

// GetDashboardStats -> order summary over all orders
func (ac *AdminController) GetDashboardStats(c *gin.Context) {
	summary, err := ac.Orders.Summary(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, summary)
}
