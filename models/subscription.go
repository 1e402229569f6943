package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	SubActive   = "active"
	SubCanceled = "canceled"
	SubExpired  = "expired"
	SubPending  = "pending"
)

type Subscription struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID             primitive.ObjectID `bson:"user_id" json:"user_id"`
	Plan               string             `bson:"plan" json:"plan"`
	PriceINR           float64            `bson:"price_inr" json:"price_inr"`
	Status             string             `bson:"status" json:"status"`
	CurrentPeriodStart time.Time          `bson:"current_period_start" json:"current_period_start"`
	CurrentPeriodEnd   time.Time          `bson:"current_period_end" json:"current_period_end"`
	GatewayCustomerID  string             `bson:"gateway_customer_id,omitempty" json:"gateway_customer_id,omitempty"`
	CreatedAt          time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt          time.Time          `bson:"updated_at" json:"updated_at"`
}

type SubscriptionCreate struct {
	Plan               string    `json:"plan" binding:"required,oneof=weekly monthly consult"`
	PriceINR           float64   `json:"price_inr" binding:"required,gt=0"`
	Status             string    `json:"status" binding:"omitempty,oneof=active canceled expired pending"`
	CurrentPeriodStart time.Time `json:"current_period_start" binding:"required"`
	CurrentPeriodEnd   time.Time `json:"current_period_end" binding:"required"`
	GatewayCustomerID  string    `json:"gateway_customer_id"`
}

type SubscriptionUpdate struct {
	Status            *string    `json:"status" binding:"omitempty,oneof=active canceled expired pending"`
	CurrentPeriodEnd  *time.Time `json:"current_period_end"`
	GatewayCustomerID *string    `json:"gateway_customer_id"`
}

func (s SubscriptionUpdate) UpdateDoc() bson.M {
	doc := bson.M{}
	if s.Status != nil {
		doc["status"] = *s.Status
	}
	if s.CurrentPeriodEnd != nil {
		doc["current_period_end"] = *s.CurrentPeriodEnd
	}
	if s.GatewayCustomerID != nil {
		doc["gateway_customer_id"] = *s.GatewayCustomerID
	}
	doc["updated_at"] = time.Now().UTC()
	return doc
}

type PaymentOrderRequest struct {
	Amount   float64 `json:"amount" binding:"required,gt=0"`
	Currency string  `json:"currency"`
	Receipt  string  `json:"receipt" binding:"required"`
	Notes    string  `json:"notes"`
}

type PaymentOrderResponse struct {
	OrderID    string  `json:"order_id"`
	Amount     float64 `json:"amount"`
	Currency   string  `json:"currency"`
	PaymentURL string  `json:"payment_url"`
}
