package controllers

import (
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"toolmarket-backend/apperr"
	"toolmarket-backend/models"
)

// TokenIssuer is satisfied by *services.TokenService.
type TokenIssuer interface {
	Issue(claims map[string]interface{}) (string, error)
	IssueForSubject(uid models.SubjectID) (string, error)
}

func pathObjectID(c *gin.Context, name string) (primitive.ObjectID, bool) {
	id, err := models.ParseObjectID(c.Param(name))
	if err != nil {
		apperr.Abort(c, apperr.InvalidID(err))
		return primitive.NilObjectID, false
	}
	return id, true
}

func pathSubject(c *gin.Context, name string) (models.SubjectID, bool) {
	uid, err := models.ParseSubjectID(c.Param(name))
	if err != nil {
		apperr.Abort(c, apperr.InvalidSubject(err))
		return "", false
	}
	return uid, true
}

func bindJSON(c *gin.Context, v interface{}) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		apperr.Abort(c, apperr.InvalidBody(err))
		return false
	}
	return true
}
