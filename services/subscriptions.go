package services

import (
	"context"
	"log"
	"net/http"
	"time"

	"nutricoach/auth"
	"nutricoach/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreatePaymentOrder is a gateway stub: it mints an order id and a
// synthetic payment URL without talking to any processor.
func CreatePaymentOrder() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.PaymentOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
			return
		}

		currency := req.Currency
		if currency == "" {
			currency = "INR"
		}

		orderID := uuid.NewString()
		c.JSON(http.StatusOK, models.PaymentOrderResponse{
			OrderID:    orderID,
			Amount:     req.Amount,
			Currency:   currency,
			PaymentURL: "https://example.com/pay/" + orderID,
		})
	}
}

func CreateSubscription(client *mongo.Client, dbName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, _ := auth.CurrentUser(c)

		var req models.SubscriptionCreate
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
			return
		}

		subs := coll(client, dbName, "subscriptions")

		// An active subscription blocks any new one, whatever status the
		// new document would carry. The partial unique index only covers
		// active-vs-active, so this check is the contract for the rest;
		// the index still holds the invariant under concurrent writers.
		activeCount, err := subs.CountDocuments(context.Background(),
			bson.M{"user_id": user.ID, "status": models.SubActive})
		if err != nil {
			log.Println("COUNT SUBSCRIPTIONS ERROR:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create subscription"})
			return
		}
		if activeCount > 0 {
			c.JSON(http.StatusConflict, gin.H{"error": "User already has an active subscription"})
			return
		}

		status := req.Status
		if status == "" {
			status = models.SubPending
		}

		now := time.Now().UTC()
		sub := models.Subscription{
			ID:                 primitive.NewObjectID(),
			UserID:             user.ID,
			Plan:               req.Plan,
			PriceINR:           req.PriceINR,
			Status:             status,
			CurrentPeriodStart: req.CurrentPeriodStart,
			CurrentPeriodEnd:   req.CurrentPeriodEnd,
			GatewayCustomerID:  req.GatewayCustomerID,
			CreatedAt:          now,
			UpdatedAt:          now,
		}

		if _, err := subs.InsertOne(context.Background(), sub); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				c.JSON(http.StatusConflict, gin.H{"error": "User already has an active subscription"})
				return
			}
			log.Println("INSERT SUBSCRIPTION ERROR:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create subscription"})
			return
		}

		c.JSON(http.StatusOK, sub)
	}
}

func ListSubscriptions(client *mongo.Client, dbName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, _ := auth.CurrentUser(c)
		skip, limit := pagination(c, 10)

		cursor, err := coll(client, dbName, "subscriptions").Find(context.Background(),
			bson.M{"user_id": user.ID},
			options.Find().
				SetSort(bson.D{{Key: "created_at", Value: -1}}).
				SetSkip(skip).
				SetLimit(limit),
		)
		if err != nil {
			log.Println("FIND SUBSCRIPTIONS ERROR:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch subscriptions"})
			return
		}
		defer cursor.Close(context.Background())

		subs := []models.Subscription{}
		if err := cursor.All(context.Background(), &subs); err != nil {
			log.Println("DECODE SUBSCRIPTIONS ERROR:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode subscriptions"})
			return
		}
		c.JSON(http.StatusOK, subs)
	}
}

func CurrentSubscription(client *mongo.Client, dbName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, _ := auth.CurrentUser(c)

		var sub models.Subscription
		err := coll(client, dbName, "subscriptions").FindOne(context.Background(),
			bson.M{"user_id": user.ID, "status": models.SubActive}).Decode(&sub)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "No active subscription found"})
			return
		}
		c.JSON(http.StatusOK, sub)
	}
}

// PaymentWebhook acknowledges gateway callbacks. Signature verification
// and status transitions belong to the real gateway integration, which
// is out of scope.
func PaymentWebhook() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "success"})
	}
}
