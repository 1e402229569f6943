package services

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"time"

	"nutricoach/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ActivePair reports whether an active assignment exists for exactly
// this (nutritionist, patient) pair. It is the sole predicate behind
// every nutritionist read or write of patient-scoped data; a pair that
// was deactivated stops passing immediately.
func ActivePair(ctx context.Context, client *mongo.Client, dbName string, nutritionistID, patientID primitive.ObjectID) (bool, error) {
	count, err := coll(client, dbName, "assignments").CountDocuments(ctx, bson.M{
		"nutritionist_id": nutritionistID,
		"patient_id":      patientID,
		"active":          true,
	})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func CreateAssignment(client *mongo.Client, dbName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.AssignmentCreate
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
			return
		}
		if !models.ValidDate(req.StartDate) || (req.EndDate != "" && !models.ValidDate(req.EndDate)) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Dates must be YYYY-MM-DD"})
			return
		}

		patientID, err := primitive.ObjectIDFromHex(req.PatientID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid patient ID"})
			return
		}
		nutritionistID, err := primitive.ObjectIDFromHex(req.NutritionistID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid nutritionist ID"})
			return
		}

		users := coll(client, dbName, "users")
		if err := users.FindOne(context.Background(),
			bson.M{"_id": patientID, "role": models.RolePatient}).Err(); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Patient not found"})
			return
		}
		if err := users.FindOne(context.Background(),
			bson.M{"_id": nutritionistID, "role": models.RoleNutritionist}).Err(); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Nutritionist not found"})
			return
		}

		now := time.Now().UTC()
		assignment := models.Assignment{
			ID:             primitive.NewObjectID(),
			PatientID:      patientID,
			NutritionistID: nutritionistID,
			StartDate:      req.StartDate,
			EndDate:        req.EndDate,
			Active:         true,
			Notes:          req.Notes,
			CreatedAt:      now,
			UpdatedAt:      now,
		}

		if _, err := coll(client, dbName, "assignments").InsertOne(context.Background(), assignment); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				c.JSON(http.StatusConflict, gin.H{"error": "Active assignment already exists for this pair"})
				return
			}
			log.Println("INSERT ASSIGNMENT ERROR:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create assignment"})
			return
		}

		c.JSON(http.StatusOK, assignment)
	}
}

func ListAssignments(client *mongo.Client, dbName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		skip, limit := pagination(c, 20)

		query := bson.M{}
		if v := c.Query("patient_id"); v != "" {
			id, err := primitive.ObjectIDFromHex(v)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid patient ID"})
				return
			}
			query["patient_id"] = id
		}
		if v := c.Query("nutritionist_id"); v != "" {
			id, err := primitive.ObjectIDFromHex(v)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid nutritionist ID"})
				return
			}
			query["nutritionist_id"] = id
		}
		if v := c.Query("active"); v != "" {
			active, err := strconv.ParseBool(v)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid active filter"})
				return
			}
			query["active"] = active
		}

		cursor, err := coll(client, dbName, "assignments").Find(context.Background(), query,
			options.Find().
				SetSort(bson.D{{Key: "created_at", Value: -1}}).
				SetSkip(skip).
				SetLimit(limit),
		)
		if err != nil {
			log.Println("FIND ASSIGNMENTS ERROR:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch assignments"})
			return
		}
		defer cursor.Close(context.Background())

		assignments := []models.Assignment{}
		if err := cursor.All(context.Background(), &assignments); err != nil {
			log.Println("DECODE ASSIGNMENTS ERROR:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode assignments"})
			return
		}
		c.JSON(http.StatusOK, assignments)
	}
}

// UpdateAssignment handles deactivation and window edits. Deactivating
// does not cascade: meal plans and progress reports created under the
// assignment stay reachable through their own ownership lookups.
func UpdateAssignment(client *mongo.Client, dbName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		assignmentID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid assignment ID"})
			return
		}

		var req models.AssignmentUpdate
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
			return
		}
		if req.EndDate != nil && *req.EndDate != "" && !models.ValidDate(*req.EndDate) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "end_date must be YYYY-MM-DD"})
			return
		}

		assignments := coll(client, dbName, "assignments")
		result, err := assignments.UpdateOne(context.Background(),
			bson.M{"_id": assignmentID},
			bson.M{"$set": req.UpdateDoc()},
		)
		if err != nil {
			if mongo.IsDuplicateKeyError(err) {
				c.JSON(http.StatusConflict, gin.H{"error": "Active assignment already exists for this pair"})
				return
			}
			log.Println("UPDATE ASSIGNMENT ERROR:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update assignment"})
			return
		}
		if result.MatchedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Assignment not found"})
			return
		}

		var updated models.Assignment
		if err := assignments.FindOne(context.Background(), bson.M{"_id": assignmentID}).Decode(&updated); err != nil {
			log.Println("FETCH ASSIGNMENT ERROR:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch assignment"})
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}

func DeleteAssignment(client *mongo.Client, dbName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		assignmentID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid assignment ID"})
			return
		}

		result, err := coll(client, dbName, "assignments").DeleteOne(context.Background(), bson.M{"_id": assignmentID})
		if err != nil {
			log.Println("DELETE ASSIGNMENT ERROR:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete assignment"})
			return
		}
		if result.DeletedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Assignment not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Assignment deleted"})
	}
}
