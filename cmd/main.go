package main

import (
	"net/http"
	"os"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/serproauto/workshop-manager/internal/auth"
	"github.com/serproauto/workshop-manager/internal/db"
	"github.com/serproauto/workshop-manager/internal/handlers"
	"github.com/serproauto/workshop-manager/internal/middleware"
	"github.com/serproauto/workshop-manager/internal/models"
	"github.com/serproauto/workshop-manager/internal/notify"
	"github.com/serproauto/workshop-manager/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Debug("no .env file found, using environment")
	}
	log.SetFormatter(&log.JSONFormatter{})

	authService, err := auth.NewService()
	if err != nil {
		log.Fatalf("Failed to create auth service: %v", err)
	}

	store, err := buildStore()
	if err != nil {
		log.Fatalf("Failed to initialize vehicle store: %v", err)
	}

	var notifier service.Notifier
	if broker := os.Getenv("MQTT_BROKER"); broker != "" {
		mqttNotifier, err := notify.NewMQTTNotifier(broker, "workshop-manager")
		if err != nil {
			log.WithError(err).Warn("MQTT broker unavailable, status events disabled")
		} else {
			defer mqttNotifier.Close()
			notifier = mqttNotifier
		}
	}

	vehicleService := service.NewVehicleService(store, notifier)

	authHandler := handlers.NewAuthHandler(authService)
	vehicleHandler := handlers.NewVehicleHandler(vehicleService)
	authMiddleware := middleware.NewAuthMiddleware(authService)
	rateLimiter := middleware.NewRateLimitMiddleware()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)
	mux.HandleFunc("GET /api/auth/profile", authHandler.Profile)
	mux.HandleFunc("POST /api/vehicles", vehicleHandler.Register)
	mux.HandleFunc("GET /api/vehicles", vehicleHandler.List)
	mux.HandleFunc("GET /api/vehicles/{id}", vehicleHandler.Get)
	mux.HandleFunc("PUT /api/vehicles/{id}", vehicleHandler.Update)
	mux.HandleFunc("POST /api/vehicles/{id}/inspection", vehicleHandler.SubmitInspection)
	mux.Handle("GET /api/dashboard/summary",
		authMiddleware.RequireRole(models.RoleForeman)(http.HandlerFunc(vehicleHandler.Summary)))
	mux.HandleFunc("GET /api/workorders", vehicleHandler.WorkOrders)
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	handler := rateLimiter.RateLimit(120, 60)(authMiddleware.Authenticate(mux))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.WithField("port", port).Info("workshop manager listening")
	log.Fatal(http.ListenAndServe(":"+port, handler))
}

func buildStore() (db.VehicleStore, error) {
	if os.Getenv("STORE") != "mongo" {
		return db.NewMemoryStore(), nil
	}
	client, err := db.ConnectMongo()
	if err != nil {
		return nil, err
	}
	dbName := os.Getenv("MONGO_DB")
	if dbName == "" {
		dbName = "workshop"
	}
	return db.NewMongoStore(client.Database(dbName).Collection("vehicles")), nil
}
