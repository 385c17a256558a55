package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"automart/internal/auth"
	intconfig "automart/internal/config"
	"automart/internal/domain/models"
	router "automart/internal/http"
	"automart/internal/http/handlers"
	"automart/internal/notify"
	"automart/internal/payments"
	"automart/internal/repositories"
	"automart/internal/services"
)

func main() {
	env := intconfig.LoadEnv()

	auth.SetSecret(env.JWTSecret)

	intconfig.ConnectDB(env.DBDSN)
	defer intconfig.CloseDB()

	gateway := payments.NewStripeGateway(env.StripeSecretKey)

	sender := notify.SMTPSender{
		Host: env.SMTPHost,
		Port: env.SMTPPort,
		User: env.SMTPUser,
		Pass: env.SMTPPass,
		From: env.MailFrom,
	}
	dispatcher := notify.NewDispatcher(sender, 64)
	defer dispatcher.Close()

	// Every booking that reaches COMPLETED feeds the service logbook.
	historyHook := services.CompletionHook(func(b models.Booking) {
		services.HistoryService{
			HistoryRepo: repositories.HistoryRepo{},
			ServiceRepo: repositories.ServiceRepo{},
		}.OnBookingCompleted(b)
	})
	handlers.Configure(env, gateway, dispatcher, historyHook)

	r := router.NewRouter(env)

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("AutoMart API listening on http://localhost%s", env.AppAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server shutdown failed: %v", err)
	}

	log.Println("server stopped cleanly.")
}
