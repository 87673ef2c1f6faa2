package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/httprate"

	config "github.com/aurapass/kiosk-services/configs"
	"github.com/aurapass/kiosk-services/internal/comm"
	mongodb "github.com/aurapass/kiosk-services/internal/db"
	nats "github.com/aurapass/kiosk-services/internal/nats"
	"github.com/aurapass/kiosk-services/internal/scansvc/broker"
	"github.com/aurapass/kiosk-services/internal/scansvc/db"
	handlers "github.com/aurapass/kiosk-services/internal/scansvc/handlers"
	"github.com/aurapass/kiosk-services/internal/scansvc/service"
	"github.com/aurapass/kiosk-services/internal/scansvc/store"
	"github.com/aurapass/kiosk-services/internal/scansvc/store/mongostore"
	"github.com/aurapass/kiosk-services/internal/scansvc/sweeper"
	log "github.com/sirupsen/logrus"
)

const SERVICE_NAME = "scan"

var instanceId string

func init() {
	instanceId = config.CreateUniqueInstance(SERVICE_NAME)
	config.Logging(SERVICE_NAME + "_service_" + instanceId)
	config.LoadEnv(SERVICE_NAME)
}

func main() {

	// pg connection
	dbpool, err := db.Connect()
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer db.ClosePool()
	log.Printf("pg connection established successfully")

	memberStore := store.NewMemberStore(dbpool)
	memberService := service.NewMemberService(memberStore)

	sessionStore := store.NewSessionStore(dbpool)
	sessionService := service.NewSessionService(sessionStore)

	settingsStore := store.NewSettingsStore(dbpool)
	settingsService := service.NewSettingsService(settingsStore)

	adminStore := store.NewAdminStore(dbpool)

	// mongo holds the persisted admin notification feed
	mongoDb, cancelMongo, err := mongodb.ConnectToDB()
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer cancelMongo()
	mongodb.CreateTTLIndexForCollection(mongoDb, mongostore.NotificationCollection)
	log.Printf("mongo connection established successfully")

	notificationStore := mongostore.NewNotificationStore(mongoDb)
	notificationService := service.NewNotificationService(adminStore, notificationStore)

	// Connect to NATS
	n, err := nats.Connect()
	if err != nil {
		log.Errorf("Error: unable to connect to NATS server %v", err)
		os.Exit(0)
	}

	defer n.Conn.Close()
	log.Printf("NATS connection established successfully %s", n.Url)

	// init scan worker broker
	b := broker.NewBroker(n.Conn, dbpool,
		memberService, sessionService, settingsService, notificationService)

	// join the scan worker queue group
	sub, err := b.SubscribeScanQueue(comm.TopicScanQueue, "scan-workers")
	if err != nil {
		log.Errorf("Error: unable to subscribe to queue %v", err)
		os.Exit(0)
	}

	// background stale-session sweep
	sweepMinutes := 60
	if v := os.Getenv("SWEEP_INTERVAL_MINUTES"); v != "" {
		sweepMinutes, err = strconv.Atoi(v)
		if err != nil {
			log.Fatalf("Invalid SWEEP_INTERVAL_MINUTES value: %v", err)
		}
	}
	sw := sweeper.NewSweeper(sessionService, settingsService, time.Duration(sweepMinutes)*time.Minute)
	sw.Start(context.Background())

	// Setup router
	r := chi.NewRouter()
	c := config.CORS()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(config.CustomLoggerMiddleware())
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(c.Handler)

	// to protect the service api from any over requests
	rateLimitStr := os.Getenv("RATE_LIMIT")
	rateLimit, err := strconv.Atoi(rateLimitStr)
	if err != nil {
		log.Fatalf("Invalid RATE_LIMIT value: %v", err)
	}
	r.Use(httprate.LimitByIP(rateLimit, 1*time.Minute))

	// Init handlers and routes
	h := handlers.NewHandler(b.Publish, memberService, notificationService)
	h.InitAuth()
	h.SetRoutes(r)

	// Create server with timeout settings
	server := &http.Server{
		Addr:         ":" + os.Getenv("SCAN_SERVICE_PORT"),
		Handler:      r,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe(): %v", err)
		}
	}()
	log.Infof("%s service running at port %s", SERVICE_NAME, server.Addr)

	// Wait for interrupt signal to gracefully shutdown the server
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	<-stop

	sub.Unsubscribe()
	sw.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("%s service shutdown Failed:%+v", SERVICE_NAME, err)
	}
	log.Infof("%s service gracefully stopped", SERVICE_NAME)
}
