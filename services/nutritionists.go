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

// CreateNutritionistProfile starts every profile unverified; only the
// admin verify action flips the flag.
func CreateNutritionistProfile(client *mongo.Client, dbName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, _ := auth.CurrentUser(c)

		var req models.NutritionistProfileCreate
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
			return
		}

		now := time.Now().UTC()
		profile := models.NutritionistProfile{
			ID:              primitive.NewObjectID(),
			UserID:          user.ID,
			RegistrationNo:  req.RegistrationNo,
			Qualifications:  req.Qualifications,
			YearsExperience: req.YearsExperience,
			Bio:             req.Bio,
			RateWeekINR:     req.RateWeekINR,
			Verified:        false,
			CreatedAt:       now,
			UpdatedAt:       now,
		}

		if _, err := coll(client, dbName, "nutritionist_profiles").InsertOne(context.Background(), profile); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				c.JSON(http.StatusConflict, gin.H{"error": "Profile already exists. Use PUT /profile to update"})
				return
			}
			log.Println("INSERT NUTRITIONIST PROFILE ERROR:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create profile"})
			return
		}

		c.JSON(http.StatusOK, profile)
	}
}

func UpdateNutritionistProfile(client *mongo.Client, dbName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, _ := auth.CurrentUser(c)

		var req models.NutritionistProfileUpdate
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
			return
		}

		profiles := coll(client, dbName, "nutritionist_profiles")
		result, err := profiles.UpdateOne(context.Background(),
			bson.M{"user_id": user.ID},
			bson.M{"$set": req.UpdateDoc()},
		)
		if err != nil {
			log.Println("UPDATE NUTRITIONIST PROFILE ERROR:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
			return
		}
		if result.MatchedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found. Create a profile first using POST /profile"})
			return
		}

		var updated models.NutritionistProfile
		if err := profiles.FindOne(context.Background(), bson.M{"user_id": user.ID}).Decode(&updated); err != nil {
			log.Println("FETCH NUTRITIONIST PROFILE ERROR:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch profile"})
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}

func GetNutritionistProfile(client *mongo.Client, dbName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, _ := auth.CurrentUser(c)

		var profile models.NutritionistProfile
		err := coll(client, dbName, "nutritionist_profiles").
			FindOne(context.Background(), bson.M{"user_id": user.ID}).Decode(&profile)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
			return
		}
		c.JSON(http.StatusOK, profile)
	}
}

// ListAssignedPatients joins the caller's active assignments with each
// patient's profile and account record.
func ListAssignedPatients(client *mongo.Client, dbName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, _ := auth.CurrentUser(c)
		skip, limit := pagination(c, 20)

		cursor, err := coll(client, dbName, "assignments").Find(context.Background(),
			bson.M{"nutritionist_id": user.ID, "active": true},
			options.Find().
				SetSort(bson.D{{Key: "created_at", Value: -1}}).
				SetSkip(skip).
				SetLimit(limit),
		)
		if err != nil {
			log.Println("FIND ASSIGNMENTS ERROR:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch patients"})
			return
		}
		defer cursor.Close(context.Background())

		var assignments []models.Assignment
		if err := cursor.All(context.Background(), &assignments); err != nil {
			log.Println("DECODE ASSIGNMENTS ERROR:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode assignments"})
			return
		}

		profiles := coll(client, dbName, "patient_profiles")
		users := coll(client, dbName, "users")
		reportsColl := coll(client, dbName, "progress_reports")

		patients := []gin.H{}
		for _, assignment := range assignments {
			var profile models.PatientProfile
			if err := profiles.FindOne(context.Background(), bson.M{"user_id": assignment.PatientID}).Decode(&profile); err != nil {
				continue
			}
			var patientUser models.User
			if err := users.FindOne(context.Background(), bson.M{"_id": assignment.PatientID}).Decode(&patientUser); err != nil {
				continue
			}

			currentWeight := profile.StartWeightKg
			var latest models.ProgressReport
			if err := reportsColl.FindOne(context.Background(),
				bson.M{"patient_id": assignment.PatientID},
				options.FindOne().SetSort(bson.D{{Key: "week_start", Value: -1}}),
			).Decode(&latest); err == nil {
				currentWeight = latest.WeightKg
			}

			patients = append(patients, gin.H{
				"assignment_id":  assignment.ID.Hex(),
				"patient_id":     assignment.PatientID.Hex(),
				"patient_name":   profile.FirstName + " " + profile.LastName,
				"patient_email":  patientUser.Email,
				"start_date":     assignment.StartDate,
				"current_weight": currentWeight,
				"status":         patientUser.Status,
			})
		}

		c.JSON(http.StatusOK, patients)
	}
}

// GetPatientProgress serves a patient's report history to an assigned
// nutritionist. An unassigned pair answers 404, never another
// patient's data.
func GetPatientProgress(client *mongo.Client, dbName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, _ := auth.CurrentUser(c)

		patientID, err := primitive.ObjectIDFromHex(c.Param("patient_id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid patient ID"})
			return
		}

		assigned, err := ActivePair(context.Background(), client, dbName, user.ID, patientID)
		if err != nil {
			log.Println("ASSIGNMENT CHECK ERROR:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify assignment"})
			return
		}
		if !assigned {
			c.JSON(http.StatusNotFound, gin.H{"error": "Patient not assigned to this nutritionist"})
			return
		}

		skip, limit := pagination(c, 10)
		reports, err := findProgressReports(client, dbName, patientID, skip, limit)
		if err != nil {
			log.Println("FIND PROGRESS REPORTS ERROR:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch progress reports"})
			return
		}
		c.JSON(http.StatusOK, reports)
	}
}
