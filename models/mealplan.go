package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	PlanDraft     = "draft"
	PlanPublished = "published"
	PlanArchived  = "archived"
)

type Meal struct {
	MealType string  `bson:"meal_type" json:"meal_type" binding:"required,oneof=breakfast lunch dinner snack"`
	Title    string  `bson:"title" json:"title" binding:"required,min=1,max=100"`
	Calories int     `bson:"calories" json:"calories" binding:"min=0"`
	ProteinG float64 `bson:"protein_g" json:"protein_g" binding:"min=0"`
	CarbsG   float64 `bson:"carbs_g" json:"carbs_g" binding:"min=0"`
	FatG     float64 `bson:"fat_g" json:"fat_g" binding:"min=0"`
	Notes    string  `bson:"notes,omitempty" json:"notes,omitempty"`
}

// DayPlan is owned by its meal plan; days have no identity of their own.
type DayPlan struct {
	DayOfWeek int    `bson:"day_of_week" json:"day_of_week" binding:"min=0,max=6"`
	Meals     []Meal `bson:"meals" json:"meals" binding:"required,dive"`
}

type MealPlan struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PatientID      primitive.ObjectID `bson:"patient_id" json:"patient_id"`
	NutritionistID primitive.ObjectID `bson:"nutritionist_id" json:"nutritionist_id"`
	WeekStart      string             `bson:"week_start" json:"week_start"`
	Notes          string             `bson:"notes,omitempty" json:"notes,omitempty"`
	Status         string             `bson:"status" json:"status"`
	Days           []DayPlan          `bson:"days" json:"days"`
	CreatedAt      time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time          `bson:"updated_at" json:"updated_at"`
}

type MealPlanCreate struct {
	PatientID string    `json:"patient_id" binding:"required"`
	WeekStart string    `json:"week_start" binding:"required"`
	Notes     string    `json:"notes"`
	Status    string    `json:"status" binding:"omitempty,oneof=draft published archived"`
	Days      []DayPlan `json:"days" binding:"required,dive"`
}

type MealPlanUpdate struct {
	Notes  *string    `json:"notes"`
	Status *string    `json:"status" binding:"omitempty,oneof=draft published archived"`
	Days   *[]DayPlan `json:"days" binding:"omitempty,dive"`
}

func (m MealPlanUpdate) UpdateDoc() bson.M {
	doc := bson.M{}
	if m.Notes != nil {
		doc["notes"] = *m.Notes
	}
	if m.Status != nil {
		doc["status"] = *m.Status
	}
	if m.Days != nil {
		doc["days"] = *m.Days
	}
	doc["updated_at"] = time.Now().UTC()
	return doc
}

type MealPlanSummary struct {
	ID             string  `json:"id"`
	PatientID      string  `json:"patient_id"`
	NutritionistID string  `json:"nutritionist_id"`
	WeekStart      string  `json:"week_start"`
	Status         string  `json:"status"`
	TotalCalories  int     `json:"total_calories"`
	TotalProtein   float64 `json:"total_protein"`
	TotalCarbs     float64 `json:"total_carbs"`
	TotalFat       float64 `json:"total_fat"`
}

// Summarize computes the week's macro totals from the embedded days.
func (p MealPlan) Summarize() MealPlanSummary {
	s := MealPlanSummary{
		ID:             p.ID.Hex(),
		PatientID:      p.PatientID.Hex(),
		NutritionistID: p.NutritionistID.Hex(),
		WeekStart:      p.WeekStart,
		Status:         p.Status,
	}
	for _, day := range p.Days {
		for _, meal := range day.Meals {
			s.TotalCalories += meal.Calories
			s.TotalProtein += meal.ProteinG
			s.TotalCarbs += meal.CarbsG
			s.TotalFat += meal.FatG
		}
	}
	return s
}
