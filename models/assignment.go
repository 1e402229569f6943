package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Assignment is the authorization edge between a patient and a
// nutritionist. All nutritionist access to patient-scoped documents is
// conditioned on an active assignment for that exact pair.
type Assignment struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PatientID      primitive.ObjectID `bson:"patient_id" json:"patient_id"`
	NutritionistID primitive.ObjectID `bson:"nutritionist_id" json:"nutritionist_id"`
	StartDate      string             `bson:"start_date" json:"start_date"`
	EndDate        string             `bson:"end_date,omitempty" json:"end_date,omitempty"`
	Active         bool               `bson:"active" json:"active"`
	Notes          string             `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt      time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time          `bson:"updated_at" json:"updated_at"`
}

type AssignmentCreate struct {
	PatientID      string `json:"patient_id" binding:"required"`
	NutritionistID string `json:"nutritionist_id" binding:"required"`
	StartDate      string `json:"start_date" binding:"required"`
	EndDate        string `json:"end_date"`
	Notes          string `json:"notes"`
}

type AssignmentUpdate struct {
	EndDate *string `json:"end_date"`
	Active  *bool   `json:"active"`
	Notes   *string `json:"notes"`
}

func (a AssignmentUpdate) UpdateDoc() bson.M {
	doc := bson.M{}
	if a.EndDate != nil {
		doc["end_date"] = *a.EndDate
	}
	if a.Active != nil {
		doc["active"] = *a.Active
	}
	if a.Notes != nil {
		doc["notes"] = *a.Notes
	}
	doc["updated_at"] = time.Now().UTC()
	return doc
}
