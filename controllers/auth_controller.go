package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"toolmarket-backend/apperr"
)

type AuthController struct {
	tokens TokenIssuer
}

func NewAuthController(tokens TokenIssuer) *AuthController {
	return &AuthController{tokens: tokens}
}

// LoginToken handles POST /logintoken. The JSON object in the body is
// signed as the token claims; a "uid" field becomes the token subject.
func (ac *AuthController) LoginToken(c *gin.Context) {
	var claims map[string]interface{}
	if !bindJSON(c, &claims) {
		return
	}

	token, err := ac.tokens.Issue(claims)
	if err != nil {
		apperr.Abort(c, apperr.Internal(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"accessToken": token})
}
