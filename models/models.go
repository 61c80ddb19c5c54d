// models.go

package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleAdmin = "admin"

	PaymentPending = "pending"
	PaymentPaid    = "paid"
)

type Tool struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name          string             `bson:"name" json:"name"`
	Price         Money              `bson:"price" json:"price"`
	AvailableQuan Quantity           `bson:"availableQuan" json:"availableQuan"`
	MinOrderQty   Quantity           `bson:"minOrderQty" json:"minOrderQty"`
	Description   string             `bson:"description" json:"description"`
	Image         string             `bson:"image" json:"image"`
	Category      string             `bson:"category,omitempty" json:"category,omitempty"`
}

// Review is stored as sent. The store assigns _id.
type Review = bson.M

// User is keyed by UserID, the subject id of the external auth provider.
// Profile holds every other stored field.
type User struct {
	ID      primitive.ObjectID
	UserID  SubjectID
	Role    string
	Profile bson.M
}

// UserFromDocument splits a stored user document into its identity fields
// and the free-form profile.
func UserFromDocument(doc bson.M) User {
	u := User{Profile: bson.M{}}
	for k, v := range doc {
		switch k {
		case "_id":
			u.ID, _ = v.(primitive.ObjectID)
		case "userId":
			s, _ := v.(string)
			u.UserID = SubjectID(s)
		case "role":
			u.Role, _ = v.(string)
		default:
			u.Profile[k] = v
		}
	}
	return u
}

func (u User) MarshalJSON() ([]byte, error) {
	doc := make(map[string]interface{}, len(u.Profile)+3)
	for k, v := range u.Profile {
		doc[k] = v
	}
	doc["_id"] = u.ID
	doc["userId"] = u.UserID
	if u.Role != "" {
		doc["role"] = u.Role
	}
	return json.Marshal(doc)
}

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

var ErrInvalidField = errors.New("invalid field name")

// identityFields are owned by the server and never taken from a profile.
var identityFields = []string{"_id", "userId", "role"}

// UserProfile is a client-supplied user document.
type UserProfile map[string]interface{}

// Fields returns the profile as a $set document without the identity
// fields. Operator and dotted keys are rejected.
func (p UserProfile) Fields() (bson.M, error) {
	fields := bson.M{}
	for k, v := range p {
		if k == "" || strings.HasPrefix(k, "$") || strings.Contains(k, ".") {
			return nil, fmt.Errorf("%w: %q", ErrInvalidField, k)
		}
		fields[k] = v
	}
	for _, k := range identityFields {
		delete(fields, k)
	}
	return fields, nil
}

type Order struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	BuyerID        SubjectID          `bson:"buyerId" json:"buyerId"`
	BuyerName      string             `bson:"buyerName,omitempty" json:"buyerName,omitempty"`
	BuyerEmail     string             `bson:"buyerEmail,omitempty" json:"buyerEmail,omitempty"`
	ProductID      string             `bson:"productId" json:"productId"`
	ProductName    string             `bson:"productName,omitempty" json:"productName,omitempty"`
	ProductAmount  Quantity           `bson:"productAmount" json:"productAmount"`
	Price          Money              `bson:"price,omitempty" json:"price,omitempty"`
	PaymentStatus  string             `bson:"paymentStatus" json:"paymentStatus"`
	TransactionID  string             `bson:"transactionId,omitempty" json:"transactionId,omitempty"`
	ShipmentStatus string             `bson:"shipmentStatus,omitempty" json:"shipmentStatus,omitempty"`
}

// Blog documents are static content and are passed through unfiltered.
type Blog = bson.M
