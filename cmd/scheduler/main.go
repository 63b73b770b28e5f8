package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"

	"github.com/prasetya/loan-tracker/internal/config"
	"github.com/prasetya/loan-tracker/internal/repository"
	"github.com/prasetya/loan-tracker/internal/service"
)

func main() {
	log.Println("Starting loan schedule reporter...")

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := sqlx.Connect("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	loanRepo := repository.NewLoanRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	loanService := service.NewLoanService(loanRepo, paymentRepo, noopCache{})

	location, err := time.LoadLocation(cfg.Scheduler.Timezone)
	if err != nil {
		log.Fatalf("Invalid scheduler timezone %q: %v", cfg.Scheduler.Timezone, err)
	}

	c := cron.New(cron.WithSeconds(), cron.WithLocation(location))

	_, err = c.AddFunc(cfg.Scheduler.Spec, func() {
		reportBehindSchedule(loanService)
	})
	if err != nil {
		log.Fatalf("Failed to schedule report job: %v", err)
	}

	c.Start()
	log.Println("Scheduler started successfully")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down scheduler...")
	c.Stop()
	log.Println("Scheduler stopped")
}

// reportBehindSchedule logs every loan that has fewer payment records than
// calendar months elapsed since origination. Read-only.
func reportBehindSchedule(loanService *service.LoanService) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	reports, err := loanService.BehindSchedule(ctx, time.Now())
	if err != nil {
		log.Printf("Behind-schedule report failed: %v", err)
		return
	}

	if len(reports) == 0 {
		log.Println("All loans up to date")
		return
	}

	for _, report := range reports {
		log.Printf("Loan %s behind schedule: %d of %d expected payments recorded",
			report.LoanID, report.Recorded, report.Expected)
	}
}

// noopCache satisfies the cache interface for the scheduler, which reads
// straight from the database.
type noopCache struct{}

func (noopCache) Get(ctx context.Context, key string) (string, bool) { return "", false }
func (noopCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return nil
}
func (noopCache) Del(ctx context.Context, key string) error { return nil }
