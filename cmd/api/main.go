package main

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"nyumbastay/internal/config"
	"nyumbastay/internal/database"
	"nyumbastay/internal/middleware"
	"nyumbastay/internal/modules/auth"
	"nyumbastay/internal/modules/notification"
	"nyumbastay/internal/modules/payment"
	"nyumbastay/internal/modules/reservation"
	"nyumbastay/internal/modules/review"
	"nyumbastay/internal/modules/staff"
	"nyumbastay/internal/modules/verification"
	jwtsvc "nyumbastay/internal/pkg/jwt"
	"nyumbastay/internal/repository"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("config: ", err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("database: ", err)
	}

	userRepo := repository.NewUserRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	reservationRepo := repository.NewReservationRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	staffRepo := repository.NewStaffRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	for _, m := range []interface{ Migrate() error }{
		userRepo, roomRepo, reservationRepo, transactionRepo, reviewRepo, staffRepo, notificationRepo,
	} {
		if err := m.Migrate(); err != nil {
			log.Fatal("migrate: ", err)
		}
	}

	j := jwtsvc.New(cfg.JWTSecret, time.Duration(cfg.JWTExpireMin)*time.Minute)

	hub := notification.NewHub()
	defer hub.Close()

	notifService := notification.NewService(notificationRepo, hub, nil)
	if cfg.RabbitURL != "" {
		pub, err := notification.NewPublisher(cfg.RabbitURL)
		if err != nil {
			log.Printf("rabbitmq unavailable, events stay local: %v", err)
		} else {
			defer pub.Close()
			notifService = notification.NewService(notificationRepo, hub, pub)
		}
	}
	notifHandler := notification.NewHandler(notifService, hub)

	authService := auth.NewService(userRepo, staffRepo, j)
	authHandler := auth.NewHandler(authService)

	reservationService := reservation.NewService(reservationRepo, roomRepo, notifService)
	reservationHandler := reservation.NewHandler(reservationService)

	reviewService := review.NewService(reviewRepo, reservationRepo)
	reviewHandler := review.NewHandler(reviewService)

	paymentService := payment.NewService(
		transactionRepo,
		reservationRepo,
		notifService,
		log.Printf,
		time.Duration(cfg.SettleDelaySec)*time.Second,
	)
	paymentHandler := payment.NewHandler(paymentService)

	staffService := staff.NewService(staffRepo, cfg.SlotFee)
	staffHandler := staff.NewHandler(staffService)

	verificationService := verification.NewService(db, reservationRepo, userRepo, transactionRepo, log.Printf)
	verificationHandler := verification.NewHandler(verificationService)

	r := gin.Default()
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorLogger())

	v1 := r.Group("/api/v1")
	{
		// public
		authHandler.RegisterRoutes(v1)
		paymentHandler.RegisterCallbackRoutes(v1)

		// any authenticated account
		protected := v1.Group("/")
		protected.Use(middleware.JWTAuth(j))
		{
			reservationHandler.RegisterRoutes(protected)
			reviewHandler.RegisterRoutes(protected)
			paymentHandler.RegisterRoutes(protected)
			notifHandler.RegisterRoutes(protected)
		}

		// property-side staff
		partner := v1.Group("/")
		partner.Use(middleware.JWTAuth(j), middleware.RequireAnyRole("partner", "admin", "manager", "operator"))
		{
			reservationHandler.RegisterPartnerRoutes(partner)
		}

		// platform operator console
		operator := v1.Group("/")
		operator.Use(middleware.JWTAuth(j), middleware.OperatorOnly())
		{
			staffHandler.RegisterRoutes(operator)
			verificationHandler.RegisterRoutes(operator)
			paymentHandler.RegisterOperatorRoutes(operator)
		}
	}

	log.Println("listening on", cfg.HTTPAddr)
	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.Fatal(err)
	}
}
