package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ProgressReport struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PatientID    primitive.ObjectID `bson:"patient_id" json:"patient_id"`
	WeekStart    string             `bson:"week_start" json:"week_start"`
	WeightKg     float64            `bson:"weight_kg" json:"weight_kg"`
	WaistCm      float64            `bson:"waist_cm,omitempty" json:"waist_cm,omitempty"`
	Photos       []string           `bson:"photos" json:"photos"`
	AdherencePct int                `bson:"adherence_pct" json:"adherence_pct"`
	EnergyLevels int                `bson:"energy_levels" json:"energy_levels"`
	Notes        string             `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updated_at"`
}

type ProgressReportCreate struct {
	WeekStart    string   `json:"week_start" binding:"required"`
	WeightKg     float64  `json:"weight_kg" binding:"required,gt=0,lte=500"`
	WaistCm      float64  `json:"waist_cm" binding:"omitempty,gt=0,lte=200"`
	Photos       []string `json:"photos"`
	AdherencePct int      `json:"adherence_pct" binding:"min=0,max=100"`
	EnergyLevels int      `json:"energy_levels" binding:"required,min=1,max=10"`
	Notes        string   `json:"notes"`
}

type ProgressReportUpdate struct {
	WeightKg     *float64  `json:"weight_kg" binding:"omitempty,gt=0,lte=500"`
	WaistCm      *float64  `json:"waist_cm" binding:"omitempty,gt=0,lte=200"`
	Photos       *[]string `json:"photos"`
	AdherencePct *int      `json:"adherence_pct" binding:"omitempty,min=0,max=100"`
	EnergyLevels *int      `json:"energy_levels" binding:"omitempty,min=1,max=10"`
	Notes        *string   `json:"notes"`
}

func (p ProgressReportUpdate) UpdateDoc() bson.M {
	doc := bson.M{}
	if p.WeightKg != nil {
		doc["weight_kg"] = *p.WeightKg
	}
	if p.WaistCm != nil {
		doc["waist_cm"] = *p.WaistCm
	}
	if p.Photos != nil {
		doc["photos"] = *p.Photos
	}
	if p.AdherencePct != nil {
		doc["adherence_pct"] = *p.AdherencePct
	}
	if p.EnergyLevels != nil {
		doc["energy_levels"] = *p.EnergyLevels
	}
	if p.Notes != nil {
		doc["notes"] = *p.Notes
	}
	doc["updated_at"] = time.Now().UTC()
	return doc
}

type ProgressSummary struct {
	PatientID         string  `json:"patient_id"`
	StartWeight       float64 `json:"start_weight"`
	CurrentWeight     float64 `json:"current_weight"`
	TotalWeightLost   float64 `json:"total_weight_lost"`
	TotalWeeks        int     `json:"total_weeks"`
	AverageWeeklyLoss float64 `json:"average_weekly_loss"`
	LastReportDate    string  `json:"last_report_date,omitempty"`
}

// SummarizeProgress folds a patient's report history (newest first) into
// a summary against the profile's starting weight. An empty history
// reports the start weight as current with zero weeks.
func SummarizeProgress(patientID string, startWeight float64, reports []ProgressReport) ProgressSummary {
	s := ProgressSummary{
		PatientID:     patientID,
		StartWeight:   startWeight,
		CurrentWeight: startWeight,
	}
	if len(reports) == 0 {
		return s
	}
	s.CurrentWeight = reports[0].WeightKg
	s.TotalWeightLost = startWeight - s.CurrentWeight
	s.TotalWeeks = len(reports)
	s.AverageWeeklyLoss = s.TotalWeightLost / float64(s.TotalWeeks)
	s.LastReportDate = reports[0].WeekStart
	return s
}
