package services

import (
	"context"
	"log"
	"time"

	"assochub/internal/adapters/persistence/repositories"

	"github.com/robfig/cron/v3"
)

// CronService runs scheduled background jobs
type CronService struct {
	taskRepo         repositories.TaskRepository
	refreshTokenRepo repositories.RefreshTokenRepository
	cron             *cron.Cron
}

// NewCronService creates a new cron service
func NewCronService(
	taskRepo repositories.TaskRepository,
	refreshTokenRepo repositories.RefreshTokenRepository,
) *CronService {
	return &CronService{
		taskRepo:         taskRepo,
		refreshTokenRepo: refreshTokenRepo,
		cron:             cron.New(),
	}
}

// Start registers and starts all scheduled jobs
func (s *CronService) Start() error {
	// Flag overdue tasks every hour
	if _, err := s.cron.AddFunc("0 * * * *", s.sweepOverdueTasks); err != nil {
		return err
	}

	// Purge expired refresh tokens daily at 03:00
	if _, err := s.cron.AddFunc("0 3 * * *", s.purgeExpiredTokens); err != nil {
		return err
	}

	s.cron.Start()
	log.Println("🚀 Cron service started")

	// Catch up immediately so a restart does not leave stale statuses
	go s.sweepOverdueTasks()

	return nil
}

// Stop stops the scheduler and waits for running jobs
func (s *CronService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("🛑 Cron service stopped")
}

// sweepOverdueTasks flags active tasks whose due date has passed
func (s *CronService) sweepOverdueTasks() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	now := time.Now()
	tasks, err := s.taskRepo.GetOverdue(ctx, now)
	if err != nil {
		log.Printf("❌ Overdue sweep failed to load tasks: %v", err)
		return
	}

	flagged := 0
	for _, task := range tasks {
		if !task.MarkOverdue() {
			continue
		}
		if err := s.taskRepo.Update(ctx, task); err != nil {
			log.Printf("⚠️ Overdue sweep failed to update task %d: %v", task.ID, err)
			continue
		}
		flagged++
	}

	if flagged > 0 {
		log.Printf("✅ Overdue sweep flagged %d task(s)", flagged)
	}
}

// purgeExpiredTokens deletes refresh tokens past their expiry
func (s *CronService) purgeExpiredTokens() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.refreshTokenRepo.DeleteExpired(ctx); err != nil {
		log.Printf("❌ Token purge failed: %v", err)
		return
	}
	log.Println("✅ Expired refresh tokens purged")
}
