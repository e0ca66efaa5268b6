package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"iskra_server/routes"
	"iskra_server/services"
	"iskra_server/socket"

	"github.com/go-co-op/gocron/v2"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	// Initialize DynamoDB client and service
	log.Println("Initializing DynamoDB client...")
	dynamoClient := services.InitializeDynamoDBClient()
	dynamoService := &services.DynamoService{Client: dynamoClient}
	log.Println("DynamoDB client initialized.")

	// Initialize S3
	s3Service, err := services.NewS3Service()
	if err != nil {
		log.Fatalf("❌ Failed to initialize S3 service: %v", err)
	}

	// Realtime hub
	hub := socket.NewHub()
	go func() {
		if err := hub.Server.Serve(); err != nil {
			log.Printf("❌ Socket server error: %v", err)
		}
	}()
	defer hub.Server.Close()

	// Initialize Services
	profileService := &services.ProfileService{Dynamo: dynamoService}
	chatService := services.NewChatService(&services.DynamoChatStore{Dynamo: dynamoService}, hub)
	actionService := services.NewActionService(&services.DynamoActionStore{Dynamo: dynamoService})
	meetingService := services.NewMeetingService(&services.DynamoMeetingStore{Dynamo: dynamoService})
	reviewStore := &services.DynamoReviewStore{Dynamo: dynamoService}
	reviewService := services.NewReviewService(reviewStore)

	// LLM-backed bot responder: only wired when an API key is configured
	var imageGen services.ImageGenerator
	var responder *services.BotResponderService
	if apiKey := os.Getenv("OPENAI_API_KEY"); apiKey != "" {
		aiService := services.NewAIService(apiKey, os.Getenv("OPENAI_BASE_URL"), os.Getenv("OPENAI_MODEL"))
		imageGen = aiService
		responder = services.NewBotResponderService(&services.DynamoResponderStore{Dynamo: dynamoService}, aiService, hub)
	} else {
		log.Println("⚠️ OPENAI_API_KEY not set, bot responder disabled")
	}

	botAdminService := services.NewBotAdminService(dynamoService, imageGen, s3Service)

	// Set up the server port
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Using server port: %s\n", port)

	// Initialize the router
	r := mux.NewRouter()

	// Register a welcome route
	r.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "Welcome to Iskra")
	}).Methods("GET")

	// Register a health check endpoint
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		response := map[string]string{"status": "healthy"}
		json.NewEncoder(w).Encode(response)
	}).Methods("GET")

	// Socket.IO endpoint
	r.Handle("/socket.io/", hub.Server)

	// Register routes
	routes.RegisterProfileRoutes(r, profileService)
	routes.RegisterActionRoutes(r, actionService)
	routes.RegisterChatRoutes(r, chatService)
	routes.RegisterMeetingRoutes(r, meetingService)
	routes.RegisterReviewRoutes(r, reviewService, reviewStore)
	routes.RegisterS3Routes(r, s3Service)
	routes.RegisterAdminBotRoutes(r, botAdminService, responder)

	// Background responder passes
	if responder != nil {
		scheduler, err := gocron.NewScheduler(gocron.WithLocation(time.UTC))
		if err != nil {
			log.Fatalf("❌ Failed to create scheduler: %v", err)
		}
		_, err = scheduler.NewJob(
			gocron.DurationJob(30*time.Second),
			gocron.NewTask(func() {
				summary, err := responder.RunPass(context.Background())
				if err != nil {
					log.Printf("❌ Responder pass failed: %v", err)
					return
				}
				if summary.ResponsesSent > 0 || summary.ResponsesScheduled > 0 {
					log.Printf("🤖 Responder pass: sent=%d scheduled=%d skipped=%d",
						summary.ResponsesSent, summary.ResponsesScheduled, summary.Skipped)
				}
			}),
		)
		if err != nil {
			log.Fatalf("❌ Failed to schedule responder job: %v", err)
		}
		scheduler.Start()
		defer scheduler.Shutdown()
		log.Println("⏰ Bot responder scheduled every 30s")
	}

	// Add CORS middleware
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"}, // Adjust for specific domains if needed
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler(r)

	// Start the HTTP server
	log.Printf("Starting server on port %s...\n", port)
	log.Fatal(http.ListenAndServe(":"+port, corsHandler))
}
