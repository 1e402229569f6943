package main

import (
	"context"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"nutricoach/auth"
	"nutricoach/db"
	"nutricoach/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables:", err)
	}

	mongoURI := os.Getenv("MONGODB_URI")
	jwtSecret := os.Getenv("JWT_SECRET")
	if mongoURI == "" || jwtSecret == "" {
		log.Fatal("Missing environment variables: MONGODB_URI and JWT_SECRET are required")
	}

	dbName := os.Getenv("MONGODB_DATABASE")
	if dbName == "" {
		dbName = "nutricoach"
	}

	auth.JwtSecret = []byte(jwtSecret)
	if v, err := strconv.Atoi(os.Getenv("ACCESS_TOKEN_EXPIRE_MINUTES")); err == nil && v > 0 {
		auth.AccessTokenTTL = time.Duration(v) * time.Minute
	}
	if v, err := strconv.Atoi(os.Getenv("REFRESH_TOKEN_EXPIRE_DAYS")); err == nil && v > 0 {
		auth.RefreshTokenTTL = time.Duration(v) * 24 * time.Hour
	}

	client, err := db.Connect(mongoURI)
	if err != nil {
		log.Fatal("MongoDB connection failed:", err)
	}
	log.Println("Connected to MongoDB")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := db.EnsureIndexes(ctx, client, dbName); err != nil {
		cancel()
		log.Fatal("Index creation failed:", err)
	}
	cancel()

	r := setupRouter(client, dbName)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Println("Starting server on :" + port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal("Server failed to start:", err)
	}
}

func setupRouter(client *mongo.Client, dbName string) *gin.Engine {
	r := gin.Default()

	origins := []string{"http://localhost:3000", "http://localhost:5173"}
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		origins = strings.Split(v, ",")
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	authn := auth.AuthMiddleware(client, dbName)

	v1 := r.Group("/api/v1")

	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/signup", auth.Signup(client, dbName))
		authGroup.POST("/login", auth.Login(client, dbName))
		authGroup.POST("/refresh", auth.Refresh())
		authGroup.GET("/me", authn, auth.Me())
	}

	users := v1.Group("/users", authn)
	{
		users.GET("/me", services.GetMe())
		users.PUT("/me", services.UpdateMe(client, dbName))
	}

	patients := v1.Group("/patients", authn, auth.RequireRole("patient"))
	{
		patients.POST("/profile", services.CreatePatientProfile(client, dbName))
		patients.PUT("/profile", services.UpdatePatientProfile(client, dbName))
		patients.GET("/profile", services.GetPatientProfile(client, dbName))
		patients.GET("/current-plan", services.CurrentPlan(client, dbName))
		patients.POST("/progress", services.CreateProgressReport(client, dbName))
		patients.GET("/progress", services.ListOwnProgress(client, dbName))
	}

	nutritionists := v1.Group("/nutritionists", authn, auth.RequireRole("nutritionist"))
	{
		nutritionists.POST("/profile", services.CreateNutritionistProfile(client, dbName))
		nutritionists.PUT("/profile", services.UpdateNutritionistProfile(client, dbName))
		nutritionists.GET("/profile", services.GetNutritionistProfile(client, dbName))
		nutritionists.GET("/patients", services.ListAssignedPatients(client, dbName))
		nutritionists.GET("/patients/:patient_id/progress", services.GetPatientProgress(client, dbName))
	}

	mealPlans := v1.Group("/meal-plans", authn, auth.RequireRole("nutritionist"))
	{
		mealPlans.POST("", services.CreateMealPlan(client, dbName))
		mealPlans.GET("", services.ListMealPlans(client, dbName))
		mealPlans.GET("/:id", services.GetMealPlan(client, dbName))
		mealPlans.PUT("/:id", services.UpdateMealPlan(client, dbName))
	}

	progress := v1.Group("/progress", authn)
	{
		progress.GET("", services.ListProgress(client, dbName))
		progress.GET("/summary/:patient_id", services.ProgressSummary(client, dbName))
	}

	subscriptions := v1.Group("/subscriptions")
	{
		subscriptions.POST("/create-order", authn, services.CreatePaymentOrder())
		subscriptions.POST("", authn, services.CreateSubscription(client, dbName))
		subscriptions.GET("", authn, services.ListSubscriptions(client, dbName))
		subscriptions.GET("/current", authn, services.CurrentSubscription(client, dbName))
		subscriptions.POST("/webhooks/payment", services.PaymentWebhook())
	}

	assignments := v1.Group("/assignments", authn, auth.RequireRole("admin"))
	{
		assignments.POST("", services.CreateAssignment(client, dbName))
		assignments.GET("", services.ListAssignments(client, dbName))
		assignments.PUT("/:id", services.UpdateAssignment(client, dbName))
		assignments.DELETE("/:id", services.DeleteAssignment(client, dbName))
	}

	admin := v1.Group("/admin", authn, auth.RequireRole("admin"))
	{
		admin.GET("/users", services.ListUsers(client, dbName))
		admin.PUT("/users/:id", services.UpdateUser(client, dbName))
		admin.POST("/nutritionists/:id/verify", services.VerifyNutritionist(client, dbName))
		admin.GET("/nutritionists/pending", services.ListPendingNutritionists(client, dbName))
		admin.GET("/metrics", services.PlatformMetrics(client, dbName))
	}

	return r
}
