package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PatientProfile struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID        primitive.ObjectID `bson:"user_id" json:"user_id"`
	FirstName     string             `bson:"first_name" json:"first_name"`
	LastName      string             `bson:"last_name" json:"last_name"`
	DOB           string             `bson:"dob" json:"dob"`
	HeightCm      float64            `bson:"height_cm" json:"height_cm"`
	StartWeightKg float64            `bson:"start_weight_kg" json:"start_weight_kg"`
	Gender        string             `bson:"gender" json:"gender"`
	Allergies     []string           `bson:"allergies" json:"allergies"`
	DietaryPrefs  []string           `bson:"dietary_prefs" json:"dietary_prefs"`
	MedicalNotes  string             `bson:"medical_notes,omitempty" json:"medical_notes,omitempty"`
	CreatedAt     time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at" json:"updated_at"`
}

type PatientProfileCreate struct {
	FirstName     string   `json:"first_name" binding:"required,min=1,max=50"`
	LastName      string   `json:"last_name" binding:"required,min=1,max=50"`
	DOB           string   `json:"dob" binding:"required"`
	HeightCm      float64  `json:"height_cm" binding:"required,gt=0,lte=300"`
	StartWeightKg float64  `json:"start_weight_kg" binding:"required,gt=0,lte=500"`
	Gender        string   `json:"gender" binding:"required,oneof=male female other"`
	Allergies     []string `json:"allergies"`
	DietaryPrefs  []string `json:"dietary_prefs" binding:"omitempty,dive,oneof=veg non_veg vegan keto paleo"`
	MedicalNotes  string   `json:"medical_notes"`
}

type PatientProfileUpdate struct {
	FirstName     *string   `json:"first_name" binding:"omitempty,min=1,max=50"`
	LastName      *string   `json:"last_name" binding:"omitempty,min=1,max=50"`
	DOB           *string   `json:"dob"`
	HeightCm      *float64  `json:"height_cm" binding:"omitempty,gt=0,lte=300"`
	StartWeightKg *float64  `json:"start_weight_kg" binding:"omitempty,gt=0,lte=500"`
	Gender        *string   `json:"gender" binding:"omitempty,oneof=male female other"`
	Allergies     *[]string `json:"allergies"`
	DietaryPrefs  *[]string `json:"dietary_prefs" binding:"omitempty,dive,oneof=veg non_veg vegan keto paleo"`
	MedicalNotes  *string   `json:"medical_notes"`
}

func (p PatientProfileUpdate) UpdateDoc() bson.M {
	doc := bson.M{}
	if p.FirstName != nil {
		doc["first_name"] = *p.FirstName
	}
	if p.LastName != nil {
		doc["last_name"] = *p.LastName
	}
	if p.DOB != nil {
		doc["dob"] = *p.DOB
	}
	if p.HeightCm != nil {
		doc["height_cm"] = *p.HeightCm
	}
	if p.StartWeightKg != nil {
		doc["start_weight_kg"] = *p.StartWeightKg
	}
	if p.Gender != nil {
		doc["gender"] = *p.Gender
	}
	if p.Allergies != nil {
		doc["allergies"] = *p.Allergies
	}
	if p.DietaryPrefs != nil {
		doc["dietary_prefs"] = *p.DietaryPrefs
	}
	if p.MedicalNotes != nil {
		doc["medical_notes"] = *p.MedicalNotes
	}
	doc["updated_at"] = time.Now().UTC()
	return doc
}

type NutritionistProfile struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID          primitive.ObjectID `bson:"user_id" json:"user_id"`
	RegistrationNo  string             `bson:"registration_no" json:"registration_no"`
	Qualifications  string             `bson:"qualifications" json:"qualifications"`
	YearsExperience int                `bson:"years_experience" json:"years_experience"`
	Bio             string             `bson:"bio" json:"bio"`
	RateWeekINR     float64            `bson:"rate_week_inr" json:"rate_week_inr"`
	Verified        bool               `bson:"verified" json:"verified"`
	CreatedAt       time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time          `bson:"updated_at" json:"updated_at"`
}

// NutritionistProfileCreate carries everything except `verified`, which
// only an admin verify action may set.
type NutritionistProfileCreate struct {
	RegistrationNo  string  `json:"registration_no" binding:"required,min=1,max=50"`
	Qualifications  string  `json:"qualifications" binding:"required,min=1"`
	YearsExperience int     `json:"years_experience" binding:"min=0,max=50"`
	Bio             string  `json:"bio" binding:"required,min=10,max=1000"`
	RateWeekINR     float64 `json:"rate_week_inr" binding:"required,gt=0"`
}

type NutritionistProfileUpdate struct {
	RegistrationNo  *string  `json:"registration_no" binding:"omitempty,min=1,max=50"`
	Qualifications  *string  `json:"qualifications" binding:"omitempty,min=1"`
	YearsExperience *int     `json:"years_experience" binding:"omitempty,min=0,max=50"`
	Bio             *string  `json:"bio" binding:"omitempty,min=10,max=1000"`
	RateWeekINR     *float64 `json:"rate_week_inr" binding:"omitempty,gt=0"`
}

func (n NutritionistProfileUpdate) UpdateDoc() bson.M {
	doc := bson.M{}
	if n.RegistrationNo != nil {
		doc["registration_no"] = *n.RegistrationNo
	}
	if n.Qualifications != nil {
		doc["qualifications"] = *n.Qualifications
	}
	if n.YearsExperience != nil {
		doc["years_experience"] = *n.YearsExperience
	}
	if n.Bio != nil {
		doc["bio"] = *n.Bio
	}
	if n.RateWeekINR != nil {
		doc["rate_week_inr"] = *n.RateWeekINR
	}
	doc["updated_at"] = time.Now().UTC()
	return doc
}
