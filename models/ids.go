package models

import (
	"errors"
	"regexp"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrInvalidID      = errors.New("invalid object id")
	ErrInvalidSubject = errors.New("invalid subject id")
)

var subjectPattern = regexp.MustCompile(`^[A-Za-z0-9._:@|-]+$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// validator has no regex tag
	_ = v.RegisterValidation("subject", func(fl validator.FieldLevel) bool {
		return subjectPattern.MatchString(fl.Field().String())
	})
	return v
}

// SubjectID is the external auth user id. It is the join key between
// User.UserID, Order.BuyerID and the "uid" claim of issued tokens.
type SubjectID string

func ParseSubjectID(s string) (SubjectID, error) {
	if err := validate.Var(s, "required,max=128,subject"); err != nil {
		return "", ErrInvalidSubject
	}
	return SubjectID(s), nil
}

func (s SubjectID) String() string { return string(s) }

// ParseObjectID parses a store generated id given as a hex string.
func ParseObjectID(s string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(s)
	if err != nil {
		return primitive.NilObjectID, ErrInvalidID
	}
	return id, nil
}
