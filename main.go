package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"totalhub-web/config"
	"totalhub-web/controllers"
	"totalhub-web/routes"
	"totalhub-web/services"
)

func main() {
	// Load .env (optional)
	if err := godotenv.Load(); err != nil {
		log.Println(".env not found or couldn't load it; continuing with environment variables")
	}

	settings, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	log.Printf("upstream backend: %s", settings.BackendAPIURL)

	// Upstream client and services
	backend := services.NewBackendClient(settings.BackendAPIURL)
	pricingService := services.NewPricingService(backend)
	dayPriceService := services.NewDayPriceService(backend)

	// Controllers
	authController := controllers.NewAuthController(backend, settings.CookieSecure)
	bookingController := controllers.NewBookingController(backend, pricingService, settings.QuoteDebounce)
	dayPriceController := controllers.NewDayPriceController(dayPriceService, settings.GridDebounce)
	reservationController := controllers.NewReservationController(backend)
	paymentController := controllers.NewPaymentController(backend)
	channelSyncController := controllers.NewChannelSyncController(backend)
	operatorController := controllers.NewOperatorController(backend)
	guestController := controllers.NewGuestController(backend)
	adminUserController := controllers.NewAdminUserController(backend)
	roomController := controllers.NewRoomController(backend)
	roomTypeController := controllers.NewRoomTypeController(backend)
	hostelController := controllers.NewHostelController(backend)

	router := routes.SetupRouter(
		settings,
		authController,
		bookingController,
		dayPriceController,
		reservationController,
		paymentController,
		channelSyncController,
		operatorController,
		guestController,
		adminUserController,
		roomController,
		roomTypeController,
		hostelController,
	)

	addr := ":" + settings.Port
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
		// useful timeouts
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe(): %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with timeout
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("shutdown signal received, shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("server stopped gracefully")
}
