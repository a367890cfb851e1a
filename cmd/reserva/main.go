package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/aws/aws-xray-sdk-go/xray"
	"github.com/uma-arai/sbcntr-reserva/internal/common/config"
	"github.com/uma-arai/sbcntr-reserva/internal/common/database"
	"github.com/uma-arai/sbcntr-reserva/internal/common/terminal"
	"github.com/uma-arai/sbcntr-reserva/internal/console"
	"github.com/uma-arai/sbcntr-reserva/internal/repository"
	"github.com/uma-arai/sbcntr-reserva/internal/service/reserva"
)

const (
	projectName = "sbcntr-reserva"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if cfg.EnableTracing {
		if err := xray.Configure(xray.Config{
			DaemonAddr:     "127.0.0.1:2000",
			ServiceVersion: "1.0.0",
		}); err != nil {
			log.Printf("Failed to configure X-Ray: %v", err)
		}
		os.Setenv("AWS_XRAY_CONTEXT_MISSING", "LOG_ERROR")
	}

	db, err := database.NewDB(cfg.DB)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.EnableTracing {
		var seg *xray.Segment
		ctx, seg = xray.BeginSegment(ctx, projectName)
		defer seg.Close(nil)
	}

	repo := repository.NewReservationRepository(&repository.DB{DB: db.DB})
	if cfg.AutoMigrate {
		if err := repo.EnsureSchema(ctx); err != nil {
			log.Fatalf("Failed to create schema: %v", err)
		}
	}

	term := terminal.New(os.Stdin, os.Stdout)
	svc := reserva.NewService(term, repo,
		reserva.WithBusinessHours(reserva.BusinessHours{
			Open:  cfg.Booking.OpenTime,
			Close: cfg.Booking.CloseTime,
		}),
		reserva.WithLocation(cfg.Booking.Location),
		reserva.WithQueryTimeout(cfg.QueryTimeout),
	)
	menu := console.NewMenu(term, svc)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		errChan <- menu.Run(ctx)
	}()

	select {
	case sig := <-sigChan:
		log.Printf("Received signal: %v", sig)
		cancel()
	case err := <-errChan:
		if err != nil {
			log.Printf("Console stopped with error: %v", err)
		}
	}
}
