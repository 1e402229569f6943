package services

import (
	"context"
	"log"
	"net/http"

	"nutricoach/auth"
	"nutricoach/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func GetMe() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := auth.CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.JSON(http.StatusOK, user)
	}
}

// UpdateMe merges only the supplied fields into the caller's user
// document; unset fields are untouched.
func UpdateMe(client *mongo.Client, dbName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := auth.CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var req models.UserUpdate
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
			return
		}

		users := coll(client, dbName, "users")
		if _, err := users.UpdateOne(context.Background(),
			bson.M{"_id": user.ID},
			bson.M{"$set": req.UpdateDoc()},
		); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				c.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
				return
			}
			log.Println("UPDATE USER ERROR:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
			return
		}

		var updated models.User
		if err := users.FindOne(context.Background(), bson.M{"_id": user.ID}).Decode(&updated); err != nil {
			log.Println("FETCH UPDATED USER ERROR:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch user"})
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}
