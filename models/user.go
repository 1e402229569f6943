package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RolePatient      = "patient"
	RoleNutritionist = "nutritionist"
	RoleAdmin        = "admin"

	StatusActive    = "active"
	StatusSuspended = "suspended"
)

type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email        string             `bson:"email" json:"email"`
	Phone        string             `bson:"phone" json:"phone"`
	Role         string             `bson:"role" json:"role"`
	PasswordHash string             `bson:"password_hash" json:"-"`
	Status       string             `bson:"status" json:"status"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updated_at"`
}

type SignupRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone" binding:"required,min=10,max=15"`
	Role     string `json:"role" binding:"required,oneof=patient nutritionist admin"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type UserUpdate struct {
	Email  *string `json:"email" binding:"omitempty,email"`
	Phone  *string `json:"phone" binding:"omitempty,min=10,max=15"`
	Status *string `json:"status" binding:"omitempty,oneof=active suspended"`
}

// UpdateDoc returns a $set document holding only the supplied fields.
func (u UserUpdate) UpdateDoc() bson.M {
	doc := bson.M{}
	if u.Email != nil {
		doc["email"] = *u.Email
	}
	if u.Phone != nil {
		doc["phone"] = *u.Phone
	}
	if u.Status != nil {
		doc["status"] = *u.Status
	}
	doc["updated_at"] = time.Now().UTC()
	return doc
}
