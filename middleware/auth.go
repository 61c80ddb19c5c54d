package middleware

import (
	"strings"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"

	"toolmarket-backend/apperr"
	"toolmarket-backend/models"
	"toolmarket-backend/services"
)

const subjectKey = "subject"

// TokenVerifier is satisfied by *services.TokenService.
type TokenVerifier interface {
	Verify(token string) (jwt.MapClaims, error)
}

// VerifyJWT rejects requests without an Authorization header with 401 and
// requests whose bearer token fails verification with 403.
func VerifyJWT(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			apperr.Abort(c, apperr.Unauthorized())
			return
		}

		// "Bearer <token>"; anything after the first space is the token.
		_, token, _ := strings.Cut(header, " ")
		claims, err := verifier.Verify(strings.TrimSpace(token))
		if err != nil {
			apperr.Abort(c, apperr.Forbidden(err))
			return
		}

		if uid, err := services.Subject(claims); err == nil {
			c.Set(subjectKey, uid)
		}
		c.Next()
	}
}

// MatchSubject must run after VerifyJWT. It rejects the request when the
// token subject differs from the path parameter param.
func MatchSubject(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, ok := Subject(c)
		if !ok || uid.String() != c.Param(param) {
			apperr.Abort(c, apperr.IdentityMismatch())
			return
		}
		c.Next()
	}
}

// Subject returns the verified token subject of the request.
func Subject(c *gin.Context) (models.SubjectID, bool) {
	v, ok := c.Get(subjectKey)
	if !ok {
		return "", false
	}
	uid, ok := v.(models.SubjectID)
	return uid, ok
}
