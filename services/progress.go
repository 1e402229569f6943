package services

import (
	"context"
	"log"
	"net/http"

	"nutricoach/auth"
	"nutricoach/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ListProgress switches on the caller's role: patients see their own
// reports; nutritionists see an assigned patient's reports via the
// patient_id filter; everyone else is denied.
func ListProgress(client *mongo.Client, dbName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, _ := auth.CurrentUser(c)
		skip, limit := pagination(c, 10)

		var patientID primitive.ObjectID
		switch {
		case user.Role == models.RolePatient:
			patientID = user.ID
		case user.Role == models.RoleNutritionist && c.Query("patient_id") != "":
			id, err := primitive.ObjectIDFromHex(c.Query("patient_id"))
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid patient ID"})
				return
			}
			assigned, err := ActivePair(context.Background(), client, dbName, user.ID, id)
			if err != nil {
				log.Println("ASSIGNMENT CHECK ERROR:", err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify assignment"})
				return
			}
			if !assigned {
				c.JSON(http.StatusNotFound, gin.H{"error": "Patient not assigned to this nutritionist"})
				return
			}
			patientID = id
		default:
			c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
			return
		}

		reports, err := findProgressReports(client, dbName, patientID, skip, limit)
		if err != nil {
			log.Println("FIND PROGRESS REPORTS ERROR:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch progress reports"})
			return
		}
		c.JSON(http.StatusOK, reports)
	}
}

// ProgressSummary aggregates a patient's full report history against
// the profile's starting weight. Patients may read only their own;
// nutritionists only an assigned patient's.
func ProgressSummary(client *mongo.Client, dbName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, _ := auth.CurrentUser(c)

		patientIDHex := c.Param("patient_id")
		patientID, err := primitive.ObjectIDFromHex(patientIDHex)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid patient ID"})
			return
		}

		switch user.Role {
		case models.RolePatient:
			if user.ID != patientID {
				c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
				return
			}
		case models.RoleNutritionist:
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
		default:
			c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
			return
		}

		var profile models.PatientProfile
		err = coll(client, dbName, "patient_profiles").
			FindOne(context.Background(), bson.M{"user_id": patientID}).Decode(&profile)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Patient profile not found"})
			return
		}

		cursor, err := coll(client, dbName, "progress_reports").Find(context.Background(),
			bson.M{"patient_id": patientID},
			options.Find().SetSort(bson.D{{Key: "week_start", Value: -1}}),
		)
		if err != nil {
			log.Println("FIND PROGRESS REPORTS ERROR:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch progress reports"})
			return
		}
		defer cursor.Close(context.Background())

		var reports []models.ProgressReport
		if err := cursor.All(context.Background(), &reports); err != nil {
			log.Println("DECODE PROGRESS REPORTS ERROR:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode progress reports"})
			return
		}

		c.JSON(http.StatusOK, models.SummarizeProgress(patientIDHex, profile.StartWeightKg, reports))
	}
}
