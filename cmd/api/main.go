package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"hotelindigo/internal/apiclient"
	"hotelindigo/internal/config"
	"hotelindigo/internal/events"
	"hotelindigo/internal/middleware"
	"hotelindigo/internal/modules/auth"
	"hotelindigo/internal/modules/availability"
	"hotelindigo/internal/modules/booking"
	"hotelindigo/internal/modules/cart"
	"hotelindigo/internal/modules/catalog"
	"hotelindigo/internal/modules/foodreservation"
	"hotelindigo/internal/modules/notification"
	"hotelindigo/internal/modules/reservation"
	"hotelindigo/internal/repository"
	"hotelindigo/internal/storage"
	"hotelindigo/internal/telemetry"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file, using the process environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Setup(cfg.OTelStdout)
	if err != nil {
		log.Fatalf("telemetry: %v", err)
	}

	store, err := storage.Open(ctx, cfg.StorageURL, cfg.StorageNamespace)
	if err != nil {
		log.Fatalf("storage: %v", err)
	}

	hub := notification.NewHub()

	var publisher events.Publisher = events.Nop{}
	if cfg.KafkaBroker != "" {
		kp := events.NewKafkaPublisher(events.NewKafkaWriter(cfg.KafkaBroker, cfg.KafkaTopic))
		detached := events.NewDetached(kp, events.DefaultPublishTimeout)
		// runs after shutdown: drain pending publishes, then close the writer
		defer func() {
			detached.Wait()
			_ = kp.Close()
		}()
		publisher = detached
		log.Printf("Publishing events to kafka: broker=%s topic=%s", cfg.KafkaBroker, cfg.KafkaTopic)
	}

	client := apiclient.New(cfg.APIBaseURL, store, cfg.APITimeout,
		apiclient.WithSessionExpiredHook(func(context.Context) {
			hub.Publish(notification.EventSessionExpired, map[string]string{"redirect": "/login"})
		}),
	)

	catalogRepo := repository.NewCatalogRepository(client)
	reservationRepo := repository.NewReservationRepository(client)
	orderRepo := repository.NewOrderRepository(client)
	tokenRepo := repository.NewTokenRepository(client)

	authService := auth.NewService(tokenRepo, store)
	authHandler := auth.NewHandler(authService)

	catalogHandler := catalog.NewHandler(catalog.NewService(catalogRepo))

	shoppingCart := cart.New(ctx, store, cart.WithOnChange(func(s cart.State) {
		hub.Publish(notification.EventCartUpdated, s)
	}))
	cartHandler := cart.NewHandler(cart.NewService(shoppingCart, catalogRepo, orderRepo, publisher))

	foodReservations := foodreservation.New(ctx, store,
		foodreservation.WithClock(func() time.Time { return time.Now().In(cfg.Location) }),
		foodreservation.WithOnChange(func(s foodreservation.State) {
			hub.Publish(notification.EventFoodReservationsUpdated, s)
		}),
	)
	foodHandler := foodreservation.NewHandler(foodReservations, catalogRepo)

	availabilityService := availability.NewService(reservationRepo, catalogRepo,
		availability.Durations{Table: cfg.TableBlock, Salon: cfg.SalonBlock}, cfg.Location)
	availabilityHandler := availability.NewHandler(availabilityService)

	workflow := booking.NewWorkflow(reservationRepo, availabilityService, authService,
		booking.WithCodeMinLength(cfg.CodeMinLength),
		booking.WithOnChange(func(s booking.Snapshot) {
			hub.Publish(notification.EventBookingUpdated, s)
		}),
		booking.WithOnConfirmed(func(ctx context.Context, c booking.Confirmation) {
			hub.Publish(notification.EventBookingConfirmed, c)
			_ = publisher.Publish(ctx, events.Event{
				Type:       events.TypeBookingConfirmed,
				Key:        c.Reference,
				Payload:    c,
				OccurredAt: c.ConfirmedAt,
			})
		}),
	)
	bookingHandler := booking.NewHandler(workflow, booking.NewQuoter(catalogRepo, cfg.RoomTaxRate))

	reservationHandler := reservation.NewHandler(reservation.NewService(reservationRepo, publisher, cfg.Location))
	wsHandler := notification.NewHandler(hub, cfg.CORSOrigins)

	if cfg.AppEnv == "prod" || cfg.AppEnv == "production" || cfg.AppEnv == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Logger(), middleware.RequestID(), middleware.ErrorLogger(), middleware.CORS(cfg.CORSOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "ws_clients": strconv.Itoa(hub.Count())})
	})
	wsHandler.RegisterRoutes(r)

	v1 := r.Group("/api/v1")
	{
		// public
		authHandler.RegisterPublicRoutes(v1)
		catalogHandler.RegisterRoutes(v1)
		availabilityHandler.RegisterRoutes(v1)
		foodHandler.RegisterRoutes(v1)

		protected := v1.Group("")
		protected.Use(middleware.RequireSession(authService))

		cartHandler.RegisterRoutes(v1, protected)
		bookingHandler.RegisterRoutes(v1, protected)
		reservationHandler.RegisterRoutes(protected)
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("hotelindigo listening on %s, backend %s", cfg.HTTPAddr, cfg.APIBaseURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	hub.Close()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("http shutdown: %v", err)
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Printf("telemetry shutdown: %v", err)
	}
	log.Println("Shutdown completed")
}
