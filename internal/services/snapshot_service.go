package services

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/codyseavey/mymanabox/internal/models"
)

// SnapshotService records daily collection value snapshots for historical
// tracking
type SnapshotService struct {
	mu            sync.Mutex
	db            *gorm.DB
	stats         func() models.CollectionStats
	snapshotHour  int // Hour of day to take the automatic snapshot (0-23)
	checkInterval time.Duration
}

// NewSnapshotService creates a snapshot service. stats supplies the current
// collection totals under the valuation policy.
func NewSnapshotService(db *gorm.DB, stats func() models.CollectionStats) *SnapshotService {
	return &SnapshotService{
		db:            db,
		stats:         stats,
		snapshotHour:  23,
		checkInterval: 15 * time.Minute,
	}
}

// Start begins the background snapshot worker
func (s *SnapshotService) Start(ctx context.Context) {
	log.Println("Snapshot service started: will record daily collection value")

	s.checkAndSnapshot()

	ticker := time.NewTicker(s.checkInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Snapshot service stopping...")
			return
		case <-ticker.C:
			s.checkAndSnapshot()
		}
	}
}

func (s *SnapshotService) checkAndSnapshot() {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	if s.hasSnapshotForDate(today) {
		return
	}
	if now.Hour() >= s.snapshotHour {
		if err := s.TakeSnapshot(); err != nil {
			log.Printf("Snapshot service: failed to take snapshot: %v", err)
		}
	}
}

func (s *SnapshotService) hasSnapshotForDate(date time.Time) bool {
	startOfDay := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	endOfDay := startOfDay.Add(24 * time.Hour)

	var count int64
	s.db.Model(&models.CollectionValueSnapshot{}).
		Where("snapshot_date >= ? AND snapshot_date < ?", startOfDay, endOfDay).
		Count(&count)
	return count > 0
}

// TakeSnapshot records the current collection value, upserting today's row
func (s *SnapshotService) TakeSnapshot() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	snapshotDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	stats := s.stats()
	snapshot := models.CollectionValueSnapshot{
		SnapshotDate: snapshotDate,
		TotalCards:   stats.TotalCards,
		UniqueCards:  stats.UniqueCards,
		TotalValue:   stats.TotalValue,
		CreatedAt:    now,
	}

	result := s.db.Where("DATE(snapshot_date) = DATE(?)", snapshotDate).
		Assign(models.CollectionValueSnapshot{
			TotalCards:  snapshot.TotalCards,
			UniqueCards: snapshot.UniqueCards,
			TotalValue:  snapshot.TotalValue,
		}).
		FirstOrCreate(&snapshot)
	if result.Error != nil {
		return fmt.Errorf("failed to save snapshot: %w", result.Error)
	}

	log.Printf("Snapshot recorded: %d cards, $%.2f", stats.TotalCards, stats.TotalValue)
	return nil
}

// History returns snapshots for a period: "week", "month", "year" or "all"
func (s *SnapshotService) History(period string) ([]models.CollectionValueSnapshot, error) {
	query := s.db.Model(&models.CollectionValueSnapshot{}).Order("snapshot_date ASC")

	now := time.Now()
	switch period {
	case "week":
		query = query.Where("snapshot_date >= ?", now.AddDate(0, 0, -7))
	case "month":
		query = query.Where("snapshot_date >= ?", now.AddDate(0, -1, 0))
	case "year":
		query = query.Where("snapshot_date >= ?", now.AddDate(-1, 0, 0))
	case "all", "":
	default:
		return nil, fmt.Errorf("unknown period %q", period)
	}

	var snapshots []models.CollectionValueSnapshot
	if err := query.Find(&snapshots).Error; err != nil {
		return nil, fmt.Errorf("failed to load snapshots: %w", err)
	}
	return snapshots, nil
}
