package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"totalhub-web/services"
	"totalhub-web/utils"
)

// AuthController forwards credentials to the external auth collaborator and
// manages the session cookie. No credential policy lives here.
type AuthController struct {
	Backend      *services.BackendClient
	CookieSecure bool
}

func NewAuthController(backend *services.BackendClient, cookieSecure bool) *AuthController {
	return &AuthController{Backend: backend, CookieSecure: cookieSecure}
}

type loginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (ac *AuthController) Login(c *gin.Context) {
	var payload loginPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload")
		return
	}
	payload.Email = strings.TrimSpace(payload.Email)
	if payload.Email == "" || payload.Password == "" {
		utils.JSONError(c, http.StatusBadRequest, "email and password required")
		return
	}

	token, err := ac.Backend.Login(c.Request.Context(), payload.Email, payload.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	// 24h session cookie; the dashboard attaches it as the bearer token.
	c.SetCookie("token", token, 24*60*60, "/", "", ac.CookieSecure, true)
	c.JSON(http.StatusOK, gin.H{"token": token})
}

func (ac *AuthController) Logout(c *gin.Context) {
	c.SetCookie("token", "", -1, "/", "", ac.CookieSecure, true)
	c.JSON(http.StatusOK, gin.H{"status": "logged out"})
}
