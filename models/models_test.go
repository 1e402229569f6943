package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidDate(t *testing.T) {
	require.True(t, ValidDate("1990-05-14"))
	require.True(t, ValidDate("2025-01-06"))

	require.False(t, ValidDate(""))
	require.False(t, ValidDate("14-05-1990"))
	require.False(t, ValidDate("1990-13-01"))
	require.False(t, ValidDate("2025-01-06T00:00:00Z"))
}

func TestUserUpdateDocPartial(t *testing.T) {
	status := "suspended"
	doc := UserUpdate{Status: &status}.UpdateDoc()

	require.Equal(t, "suspended", doc["status"])
	require.Contains(t, doc, "updated_at")
	require.NotContains(t, doc, "email")
	require.NotContains(t, doc, "phone")
}

func TestUserUpdateDocIdempotent(t *testing.T) {
	status := "suspended"
	first := UserUpdate{Status: &status}.UpdateDoc()
	second := UserUpdate{Status: &status}.UpdateDoc()

	require.Equal(t, first["status"], second["status"])
	require.Len(t, second, 2) // status + updated_at, nothing else
}

func TestPatientProfileUpdateDocEmptySlicesStick(t *testing.T) {
	empty := []string{}
	doc := PatientProfileUpdate{Allergies: &empty}.UpdateDoc()
	require.Equal(t, []string{}, doc["allergies"])
	require.NotContains(t, doc, "dietary_prefs")
}

func TestAssignmentUpdateDocDeactivate(t *testing.T) {
	active := false
	end := "2025-03-01"
	doc := AssignmentUpdate{Active: &active, EndDate: &end}.UpdateDoc()

	require.Equal(t, false, doc["active"])
	require.Equal(t, "2025-03-01", doc["end_date"])
	require.NotContains(t, doc, "notes")
}

func TestMealPlanSummarize(t *testing.T) {
	plan := MealPlan{
		WeekStart: "2025-01-06",
		Status:    PlanPublished,
		Days: []DayPlan{
			{DayOfWeek: 0, Meals: []Meal{
				{MealType: "breakfast", Title: "Oats", Calories: 300, ProteinG: 12, CarbsG: 50, FatG: 6},
				{MealType: "lunch", Title: "Dal rice", Calories: 550, ProteinG: 20, CarbsG: 80, FatG: 12},
			}},
			{DayOfWeek: 1, Meals: []Meal{
				{MealType: "dinner", Title: "Paneer salad", Calories: 400, ProteinG: 25, CarbsG: 15, FatG: 22},
			}},
		},
	}

	s := plan.Summarize()
	require.Equal(t, 1250, s.TotalCalories)
	require.InDelta(t, 57, s.TotalProtein, 1e-9)
	require.InDelta(t, 145, s.TotalCarbs, 1e-9)
	require.InDelta(t, 40, s.TotalFat, 1e-9)
	require.Equal(t, "2025-01-06", s.WeekStart)
	require.Equal(t, PlanPublished, s.Status)
}

func TestMealPlanSummarizeEmpty(t *testing.T) {
	s := MealPlan{}.Summarize()
	require.Zero(t, s.TotalCalories)
	require.Zero(t, s.TotalProtein)
}

func TestSummarizeProgress(t *testing.T) {
	reports := []ProgressReport{
		{WeekStart: "2025-02-03", WeightKg: 86.0},
		{WeekStart: "2025-01-27", WeightKg: 87.5},
		{WeekStart: "2025-01-20", WeightKg: 89.0},
	}

	s := SummarizeProgress("abc", 90.0, reports)
	require.InDelta(t, 90.0, s.StartWeight, 1e-9)
	require.InDelta(t, 86.0, s.CurrentWeight, 1e-9)
	require.InDelta(t, 4.0, s.TotalWeightLost, 1e-9)
	require.Equal(t, 3, s.TotalWeeks)
	require.InDelta(t, 4.0/3.0, s.AverageWeeklyLoss, 1e-9)
	require.Equal(t, "2025-02-03", s.LastReportDate)
}

func TestSummarizeProgressEmptyHistory(t *testing.T) {
	s := SummarizeProgress("abc", 90.0, nil)
	require.InDelta(t, 90.0, s.CurrentWeight, 1e-9)
	require.Zero(t, s.TotalWeightLost)
	require.Zero(t, s.TotalWeeks)
	require.Zero(t, s.AverageWeeklyLoss)
	require.Empty(t, s.LastReportDate)
}
