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

func CreateMealPlan(client *mongo.Client, dbName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, _ := auth.CurrentUser(c)

		var req models.MealPlanCreate
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
			return
		}
		if !models.ValidDate(req.WeekStart) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "week_start must be YYYY-MM-DD"})
			return
		}

		patientID, err := primitive.ObjectIDFromHex(req.PatientID)
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

		status := req.Status
		if status == "" {
			status = models.PlanDraft
		}

		now := time.Now().UTC()
		plan := models.MealPlan{
			ID:             primitive.NewObjectID(),
			PatientID:      patientID,
			NutritionistID: user.ID,
			WeekStart:      req.WeekStart,
			Notes:          req.Notes,
			Status:         status,
			Days:           req.Days,
			CreatedAt:      now,
			UpdatedAt:      now,
		}

		if _, err := coll(client, dbName, "meal_plans").InsertOne(context.Background(), plan); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				c.JSON(http.StatusConflict, gin.H{"error": "Meal plan already exists for this week"})
				return
			}
			log.Println("INSERT MEAL PLAN ERROR:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create meal plan"})
			return
		}

		c.JSON(http.StatusOK, plan)
	}
}

func UpdateMealPlan(client *mongo.Client, dbName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, _ := auth.CurrentUser(c)

		planID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid meal plan ID"})
			return
		}

		var req models.MealPlanUpdate
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
			return
		}

		plans := coll(client, dbName, "meal_plans")
		result, err := plans.UpdateOne(context.Background(),
			bson.M{"_id": planID, "nutritionist_id": user.ID},
			bson.M{"$set": req.UpdateDoc()},
		)
		if err != nil {
			log.Println("UPDATE MEAL PLAN ERROR:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update meal plan"})
			return
		}
		if result.MatchedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Meal plan not found"})
			return
		}

		var updated models.MealPlan
		if err := plans.FindOne(context.Background(), bson.M{"_id": planID}).Decode(&updated); err != nil {
			log.Println("FETCH MEAL PLAN ERROR:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch meal plan"})
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}

// ListMealPlans returns week summaries for the caller's plans, newest
// week first. Totals are computed from the embedded days.
func ListMealPlans(client *mongo.Client, dbName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, _ := auth.CurrentUser(c)
		skip, limit := pagination(c, 20)

		query := bson.M{"nutritionist_id": user.ID}
		if v := c.Query("patient_id"); v != "" {
			id, err := primitive.ObjectIDFromHex(v)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid patient ID"})
				return
			}
			query["patient_id"] = id
		}

		cursor, err := coll(client, dbName, "meal_plans").Find(context.Background(), query,
			options.Find().
				SetSort(bson.D{{Key: "week_start", Value: -1}}).
				SetSkip(skip).
				SetLimit(limit),
		)
		if err != nil {
			log.Println("FIND MEAL PLANS ERROR:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch meal plans"})
			return
		}
		defer cursor.Close(context.Background())

		var plans []models.MealPlan
		if err := cursor.All(context.Background(), &plans); err != nil {
			log.Println("DECODE MEAL PLANS ERROR:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode meal plans"})
			return
		}

		summaries := make([]models.MealPlanSummary, 0, len(plans))
		for _, plan := range plans {
			summaries = append(summaries, plan.Summarize())
		}
		c.JSON(http.StatusOK, summaries)
	}
}

func GetMealPlan(client *mongo.Client, dbName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, _ := auth.CurrentUser(c)

		planID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid meal plan ID"})
			return
		}

		var plan models.MealPlan
		err = coll(client, dbName, "meal_plans").FindOne(context.Background(),
			bson.M{"_id": planID, "nutritionist_id": user.ID}).Decode(&plan)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Meal plan not found"})
			return
		}
		c.JSON(http.StatusOK, plan)
	}
}
