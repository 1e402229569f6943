package auth

import (
	"context"
	"log"
	"net/http"
	"strings"

	"nutricoach/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const currentUserKey = "current_user"

// AuthMiddleware resolves the caller from the bearer token: 401 when the
// token is missing, malformed, or expired; 404 when the claimed subject
// no longer exists; 403 when the account is not active. On success the
// loaded user is stored on the request context.
func AuthMiddleware(client *mongo.Client, dbName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			c.Abort()
			return
		}

		claims, err := ParseToken(parts[1])
		if err != nil {
			log.Println("JWT PARSE ERROR:", err)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		// Refresh tokens only trade for new tokens; they are not bearer
		// credentials for the API.
		if claims.TokenType == TokenTypeRefresh {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		userID, err := primitive.ObjectIDFromHex(claims.Subject)
		if err != nil {
			log.Println("INVALID SUBJECT IN TOKEN:", claims.Subject)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		var user models.User
		collection := client.Database(dbName).Collection("users")
		if err := collection.FindOne(context.Background(), bson.M{"_id": userID}).Decode(&user); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			c.Abort()
			return
		}

		if user.Status != models.StatusActive {
			c.JSON(http.StatusForbidden, gin.H{"error": "Account is suspended"})
			c.Abort()
			return
		}

		c.Set(currentUserKey, user)
		c.Next()
	}
}

// CurrentUser returns the user loaded by AuthMiddleware.
func CurrentUser(c *gin.Context) (models.User, bool) {
	v, exists := c.Get(currentUserKey)
	if !exists {
		return models.User{}, false
	}
	user, ok := v.(models.User)
	return user, ok
}

// SetCurrentUser places a user on the context directly. Tests use it to
// exercise role gates without a database.
func SetCurrentUser(c *gin.Context, user models.User) {
	c.Set(currentUserKey, user)
}
