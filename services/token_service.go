package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"

	"toolmarket-backend/models"
)

// SubjectClaim is the claim carrying the subject id of the token owner.
const SubjectClaim = "uid"

var (
	ErrInvalidToken = errors.New("invalid or expired token")
	ErrNoSubject    = errors.New("token has no subject")
)

// TokenService signs and verifies HS256 access tokens.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue signs claims as given, adding exp, iat and a unique jti.
// The caller's map is not modified.
func (s *TokenService) Issue(claims map[string]interface{}) (string, error) {
	now := s.now()
	mc := jwt.MapClaims{}
	for k, v := range claims {
		mc[k] = v
	}
	mc["iat"] = now.Unix()
	mc["exp"] = now.Add(s.ttl).Unix()
	mc["jti"] = uuid.NewString()

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, mc).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (s *TokenService) IssueForSubject(uid models.SubjectID) (string, error) {
	return s.Issue(map[string]interface{}{SubjectClaim: uid.String()})
}

// Verify checks algorithm, signature and expiry and returns the claims.
func (s *TokenService) Verify(tokenStr string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || token == nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Subject returns the uid claim of verified claims.
func Subject(claims jwt.MapClaims) (models.SubjectID, error) {
	uid, ok := claims[SubjectClaim].(string)
	if !ok || uid == "" {
		return "", ErrNoSubject
	}
	return models.SubjectID(uid), nil
}
