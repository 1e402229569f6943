package services

import (
	"context"
	"log"
	"net/http"
	"time"

	"nutricoach/auth"
	"nutricoach/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func CreatePatientProfile(client *mongo.Client, dbName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, _ := auth.CurrentUser(c)

		var req models.PatientProfileCreate
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
			return
		}
		if !models.ValidDate(req.DOB) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "dob must be YYYY-MM-DD"})
			return
		}

		now := time.Now().UTC()
		profile := models.PatientProfile{
			ID:            primitive.NewObjectID(),
			UserID:        user.ID,
			FirstName:     req.FirstName,
			LastName:      req.LastName,
			DOB:           req.DOB,
			HeightCm:      req.HeightCm,
			StartWeightKg: req.StartWeightKg,
			Gender:        req.Gender,
			Allergies:     req.Allergies,
			DietaryPrefs:  req.DietaryPrefs,
			MedicalNotes:  req.MedicalNotes,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if profile.Allergies == nil {
			profile.Allergies = []string{}
		}
		if profile.DietaryPrefs == nil {
			profile.DietaryPrefs = []string{}
		}

		if _, err := coll(client, dbName, "patient_profiles").InsertOne(context.Background(), profile); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				c.JSON(http.StatusConflict, gin.H{"error": "Profile already exists. Use PUT /profile to update"})
				return
			}
			log.Println("INSERT PATIENT PROFILE ERROR:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create profile"})
			return
		}

		c.JSON(http.StatusOK, profile)
	}
}

func UpdatePatientProfile(client *mongo.Client, dbName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, _ := auth.CurrentUser(c)

		var req models.PatientProfileUpdate
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
			return
		}
		if req.DOB != nil && !models.ValidDate(*req.DOB) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "dob must be YYYY-MM-DD"})
			return
		}

		profiles := coll(client, dbName, "patient_profiles")
		result, err := profiles.UpdateOne(context.Background(),
			bson.M{"user_id": user.ID},
			bson.M{"$set": req.UpdateDoc()},
		)
		if err != nil {
			log.Println("UPDATE PATIENT PROFILE ERROR:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
			return
		}
		if result.MatchedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found. Create a profile first using POST /profile"})
			return
		}

		var updated models.PatientProfile
		if err := profiles.FindOne(context.Background(), bson.M{"user_id": user.ID}).Decode(&updated); err != nil {
			log.Println("FETCH PATIENT PROFILE ERROR:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch profile"})
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}

func GetPatientProfile(client *mongo.Client, dbName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, _ := auth.CurrentUser(c)

		var profile models.PatientProfile
		err := coll(client, dbName, "patient_profiles").
			FindOne(context.Background(), bson.M{"user_id": user.ID}).Decode(&profile)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
			return
		}
		c.JSON(http.StatusOK, profile)
	}
}

// CurrentPlan returns the most recent published meal plan for the
// calling patient.
func CurrentPlan(client *mongo.Client, dbName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, _ := auth.CurrentUser(c)

		var plan models.MealPlan
		err := coll(client, dbName, "meal_plans").FindOne(context.Background(),
			bson.M{"patient_id": user.ID, "status": models.PlanPublished},
			options.FindOne().SetSort(bson.D{{Key: "week_start", Value: -1}}),
		).Decode(&plan)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "No current meal plan found"})
			return
		}
		c.JSON(http.StatusOK, plan)
	}
}

func CreateProgressReport(client *mongo.Client, dbName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, _ := auth.CurrentUser(c)

		var req models.ProgressReportCreate
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
			return
		}
		if !models.ValidDate(req.WeekStart) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "week_start must be YYYY-MM-DD"})
			return
		}

		now := time.Now().UTC()
		report := models.ProgressReport{
			ID:           primitive.NewObjectID(),
			PatientID:    user.ID,
			WeekStart:    req.WeekStart,
			WeightKg:     req.WeightKg,
			WaistCm:      req.WaistCm,
			Photos:       req.Photos,
			AdherencePct: req.AdherencePct,
			EnergyLevels: req.EnergyLevels,
			Notes:        req.Notes,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if report.Photos == nil {
			report.Photos = []string{}
		}

		if _, err := coll(client, dbName, "progress_reports").InsertOne(context.Background(), report); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				c.JSON(http.StatusConflict, gin.H{"error": "Progress report already exists for this week"})
				return
			}
			log.Println("INSERT PROGRESS REPORT ERROR:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create progress report"})
			return
		}

		c.JSON(http.StatusOK, report)
	}
}

func ListOwnProgress(client *mongo.Client, dbName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, _ := auth.CurrentUser(c)
		skip, limit := pagination(c, 10)

		reports, err := findProgressReports(client, dbName, user.ID, skip, limit)
		if err != nil {
			log.Println("FIND PROGRESS REPORTS ERROR:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch progress reports"})
			return
		}
		c.JSON(http.StatusOK, reports)
	}
}

func findProgressReports(client *mongo.Client, dbName string, patientID primitive.ObjectID, skip, limit int64) ([]models.ProgressReport, error) {
	cursor, err := coll(client, dbName, "progress_reports").Find(context.Background(),
		bson.M{"patient_id": patientID},
		options.Find().
			SetSort(bson.D{{Key: "week_start", Value: -1}}).
			SetSkip(skip).
			SetLimit(limit),
	)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(context.Background())

	reports := []models.ProgressReport{}
	if err := cursor.All(context.Background(), &reports); err != nil {
		return nil, err
	}
	return reports, nil
}
