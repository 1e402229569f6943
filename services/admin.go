package services

import (
	"context"
	"log"
	"net/http"
	"time"

	"nutricoach/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func ListUsers(client *mongo.Client, dbName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		skip, limit := pagination(c, 50)

		query := bson.M{}
		if v := c.Query("role"); v != "" {
			query["role"] = v
		}
		if v := c.Query("status"); v != "" {
			query["status"] = v
		}

		cursor, err := coll(client, dbName, "users").Find(context.Background(), query,
			options.Find().
				SetSort(bson.D{{Key: "created_at", Value: -1}}).
				SetSkip(skip).
				SetLimit(limit),
		)
		if err != nil {
			log.Println("FIND USERS ERROR:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
			return
		}
		defer cursor.Close(context.Background())

		users := []models.User{}
		if err := cursor.All(context.Background(), &users); err != nil {
			log.Println("DECODE USERS ERROR:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode users"})
			return
		}
		c.JSON(http.StatusOK, users)
	}
}

func UpdateUser(client *mongo.Client, dbName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
			return
		}

		var req models.UserUpdate
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
			return
		}

		users := coll(client, dbName, "users")
		result, err := users.UpdateOne(context.Background(),
			bson.M{"_id": userID},
			bson.M{"$set": req.UpdateDoc()},
		)
		if err != nil {
			if mongo.IsDuplicateKeyError(err) {
				c.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
				return
			}
			log.Println("UPDATE USER ERROR:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
			return
		}
		if result.MatchedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}

		var updated models.User
		if err := users.FindOne(context.Background(), bson.M{"_id": userID}).Decode(&updated); err != nil {
			log.Println("FETCH USER ERROR:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch user"})
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}

// VerifyNutritionist is the only writer of the profile verified flag.
func VerifyNutritionist(client *mongo.Client, dbName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		nutritionistID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid nutritionist ID"})
			return
		}

		result, err := coll(client, dbName, "nutritionist_profiles").UpdateOne(context.Background(),
			bson.M{"user_id": nutritionistID},
			bson.M{"$set": bson.M{"verified": true, "updated_at": time.Now().UTC()}},
		)
		if err != nil {
			log.Println("VERIFY NUTRITIONIST ERROR:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify nutritionist"})
			return
		}
		if result.MatchedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Nutritionist profile not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Nutritionist verified"})
	}
}

func ListPendingNutritionists(client *mongo.Client, dbName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		skip, limit := pagination(c, 20)

		cursor, err := coll(client, dbName, "nutritionist_profiles").Find(context.Background(),
			bson.M{"verified": false},
			options.Find().
				SetSort(bson.D{{Key: "created_at", Value: -1}}).
				SetSkip(skip).
				SetLimit(limit),
		)
		if err != nil {
			log.Println("FIND PENDING NUTRITIONISTS ERROR:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch pending nutritionists"})
			return
		}
		defer cursor.Close(context.Background())

		var profiles []models.NutritionistProfile
		if err := cursor.All(context.Background(), &profiles); err != nil {
			log.Println("DECODE PENDING NUTRITIONISTS ERROR:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode pending nutritionists"})
			return
		}

		users := coll(client, dbName, "users")
		pending := []gin.H{}
		for _, profile := range profiles {
			var user models.User
			if err := users.FindOne(context.Background(), bson.M{"_id": profile.UserID}).Decode(&user); err != nil {
				continue
			}
			pending = append(pending, gin.H{
				"user_id":          profile.UserID.Hex(),
				"email":            user.Email,
				"registration_no":  profile.RegistrationNo,
				"qualifications":   profile.Qualifications,
				"years_experience": profile.YearsExperience,
				"rate_week_inr":    profile.RateWeekINR,
				"created_at":       profile.CreatedAt,
			})
		}
		c.JSON(http.StatusOK, pending)
	}
}

// PlatformMetrics reports live counts. Revenue stays zero until the
// payment gateway is wired for real.
func PlatformMetrics(client *mongo.Client, dbName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background()
		users := coll(client, dbName, "users")

		var countErr error
		count := func(col *mongo.Collection, filter bson.M) int64 {
			n, err := col.CountDocuments(ctx, filter)
			if err != nil && countErr == nil {
				countErr = err
			}
			return n
		}

		patientCount := count(users, bson.M{"role": models.RolePatient})
		nutritionistCount := count(users, bson.M{"role": models.RoleNutritionist})
		adminCount := count(users, bson.M{"role": models.RoleAdmin})
		recentSignups := count(users, bson.M{
			"created_at": bson.M{"$gte": time.Now().UTC().AddDate(0, 0, -30)},
		})

		activeSubs := count(coll(client, dbName, "subscriptions"), bson.M{"status": models.SubActive})
		totalPlans := count(coll(client, dbName, "meal_plans"), bson.M{})
		publishedPlans := count(coll(client, dbName, "meal_plans"), bson.M{"status": models.PlanPublished})
		totalReports := count(coll(client, dbName, "progress_reports"), bson.M{})

		if countErr != nil {
			log.Println("COUNT METRICS ERROR:", countErr)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute metrics"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"users": gin.H{
				"total_patients":      patientCount,
				"total_nutritionists": nutritionistCount,
				"total_admins":        adminCount,
				"recent_signups_30d":  recentSignups,
			},
			"subscriptions": gin.H{
				"active_subscriptions": activeSubs,
				"total_revenue":        0,
			},
			"meal_plans": gin.H{
				"total_meal_plans":     totalPlans,
				"published_meal_plans": publishedPlans,
			},
			"progress": gin.H{
				"total_progress_reports": totalReports,
			},
		})
	}
}
