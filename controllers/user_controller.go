package controllers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"toolmarket-backend/apperr"
	"toolmarket-backend/models"
	"toolmarket-backend/repository"
)

type UserController struct {
	users  repository.UserRepository
	tokens TokenIssuer
}

func NewUserController(users repository.UserRepository, tokens TokenIssuer) *UserController {
	return &UserController{users: users, tokens: tokens}
}

// ListUsers handles GET /users/:uid
func (uc *UserController) ListUsers(c *gin.Context) {
	users, err := uc.users.All(c.Request.Context())
	if err != nil {
		apperr.Abort(c, apperr.StoreFailure(err))
		return
	}
	c.JSON(http.StatusOK, users)
}

// GetUser handles GET /user/:uid
func (uc *UserController) GetUser(c *gin.Context) {
	uid, ok := pathSubject(c, "uid")
	if !ok {
		return
	}

	user, err := uc.users.FindBySubject(c.Request.Context(), uid)
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusOK, nil)
		return
	}
	if err != nil {
		apperr.Abort(c, apperr.StoreFailure(err))
		return
	}
	c.JSON(http.StatusOK, user)
}

// IsAdmin handles GET /admin/:uid. A user without a document is not an admin.
func (uc *UserController) IsAdmin(c *gin.Context) {
	uid, ok := pathSubject(c, "uid")
	if !ok {
		return
	}

	user, err := uc.users.FindBySubject(c.Request.Context(), uid)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		apperr.Abort(c, apperr.StoreFailure(err))
		return
	}
	c.JSON(http.StatusOK, user.IsAdmin())
}

type upsertUserResponse struct {
	*repository.UpdateResult
	Token string `json:"token"`
}

// UpsertUser handles PUT /user/:uid. It $sets the body on the user
// document, except _id, userId and role, and always returns a newly
// issued token for uid.
func (uc *UserController) UpsertUser(c *gin.Context) {
	uid, ok := pathSubject(c, "uid")
	if !ok {
		return
	}

	var profile models.UserProfile
	if err := c.ShouldBindJSON(&profile); err != nil && !errors.Is(err, io.EOF) {
		apperr.Abort(c, apperr.InvalidBody(err))
		return
	}

	fields, err := profile.Fields()
	if err != nil {
		apperr.Abort(c, apperr.InvalidBody(err))
		return
	}

	res, err := uc.users.UpsertProfile(c.Request.Context(), uid, fields)
	if err != nil {
		apperr.Abort(c, apperr.StoreFailure(err))
		return
	}

	token, err := uc.tokens.IssueForSubject(uid)
	if err != nil {
		apperr.Abort(c, apperr.Internal(err))
		return
	}
	c.JSON(http.StatusOK, upsertUserResponse{UpdateResult: res, Token: token})
}

// MakeAdmin handles PUT /user/admin/:uid
func (uc *UserController) MakeAdmin(c *gin.Context) {
	uid, ok := pathSubject(c, "uid")
	if !ok {
		return
	}

	res, err := uc.users.PromoteToAdmin(c.Request.Context(), uid)
	if err != nil {
		apperr.Abort(c, apperr.StoreFailure(err))
		return
	}
	c.JSON(http.StatusOK, res)
}
