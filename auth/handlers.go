package auth

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
)

func tokenPair(userID, email, role string) (gin.H, error) {
	accessToken, err := GenerateAccessToken(userID, email, role)
	if err != nil {
		return nil, err
	}
	refreshToken, err := GenerateRefreshToken(userID, email, role)
	if err != nil {
		return nil, err
	}
	return gin.H{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
		"token_type":    "bearer",
	}, nil
}

func Signup(client *mongo.Client, dbName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.SignupRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
			return
		}

		hash, err := HashPassword(req.Password)
		if err != nil {
			log.Println("HASH PASSWORD ERROR:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
			return
		}

		now := time.Now().UTC()
		user := models.User{
			ID:           primitive.NewObjectID(),
			Email:        req.Email,
			Phone:        req.Phone,
			Role:         req.Role,
			PasswordHash: hash,
			Status:       models.StatusActive,
			CreatedAt:    now,
			UpdatedAt:    now,
		}

		collection := client.Database(dbName).Collection("users")
		if _, err := collection.InsertOne(context.Background(), user); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				c.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
				return
			}
			log.Println("INSERT USER ERROR:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register"})
			return
		}

		tokens, err := tokenPair(user.ID.Hex(), user.Email, user.Role)
		if err != nil {
			log.Println("JWT SIGNING ERROR:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
			return
		}
		c.JSON(http.StatusOK, tokens)
	}
}

func Login(client *mongo.Client, dbName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
			return
		}

		collection := client.Database(dbName).Collection("users")
		var user models.User
		if err := collection.FindOne(context.Background(), bson.M{"email": req.Email}).Decode(&user); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Incorrect email or password"})
			return
		}

		if !CheckPassword(req.Password, user.PasswordHash) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Incorrect email or password"})
			return
		}

		if user.Status != models.StatusActive {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Account is suspended"})
			return
		}

		tokens, err := tokenPair(user.ID.Hex(), user.Email, user.Role)
		if err != nil {
			log.Println("JWT SIGNING ERROR:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
			return
		}
		c.JSON(http.StatusOK, tokens)
	}
}

// Refresh issues a fresh access token from a valid refresh token. The
// refresh token itself is echoed back unchanged.
func Refresh() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.RefreshRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
			return
		}

		claims, err := ParseToken(req.RefreshToken)
		if err != nil || claims.TokenType != TokenTypeRefresh {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid refresh token"})
			return
		}

		accessToken, err := GenerateAccessToken(claims.Subject, claims.Email, claims.Role)
		if err != nil {
			log.Println("JWT SIGNING ERROR:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"access_token":  accessToken,
			"refresh_token": req.RefreshToken,
			"token_type":    "bearer",
		})
	}
}

func Me() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.JSON(http.StatusOK, user)
	}
}
