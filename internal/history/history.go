package history

import (
	"fmt"
	"slices"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/robottwo/ratbatch/internal/batch"
	"gorm.io/gorm"
)

type HistoryManager struct {
	db *gorm.DB
}

// HistoryEntry is one evaluated line or summed file.
type HistoryEntry struct {
	ID        uint      `gorm:"primarykey"`
	CreatedAt time.Time `gorm:"index;index:idx_run_created,priority:2"`
	UpdatedAt time.Time

	RunID  string `gorm:"index:idx_run_created,priority:1"`
	Mode   string `gorm:"index"`
	Input  string
	Result string
	Error  string
}

func NewHistoryManager(dbFilePath string) (*HistoryManager, error) {
	// - busy_timeout(5000): wait for a concurrent run instead of failing
	// - synchronous(1): NORMAL, enough for a journal
	// - temp_store(2): MEMORY
	connectionString := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=synchronous(1)&_pragma=temp_store(2)", dbFilePath)

	db, err := gorm.Open(sqlite.Open(connectionString), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&HistoryEntry{}); err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	// SQLite serializes writes anyway
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return &HistoryManager{
		db: db,
	}, nil
}

// Close closes the database connection.
func (historyManager *HistoryManager) Close() error {
	sqlDB, err := historyManager.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// NewRunID returns a fresh identifier grouping the entries of one batch.
func NewRunID() string {
	return uuid.NewString()
}

func (historyManager *HistoryManager) Record(runID string, unit batch.Unit) (*HistoryEntry, error) {
	entry := HistoryEntry{
		RunID:  runID,
		Mode:   string(unit.Mode),
		Input:  unit.Input,
		Result: unit.Value,
	}
	if unit.Err != nil {
		entry.Error = unit.Err.Error()
	}

	result := historyManager.db.Create(&entry)
	if result.Error != nil {
		return nil, result.Error
	}

	return &entry, nil
}

// GetRecentEntries returns the newest limit entries, oldest first.
func (historyManager *HistoryManager) GetRecentEntries(limit int) ([]HistoryEntry, error) {
	var entries []HistoryEntry
	result := historyManager.db.Order("created_at desc").Order("id desc").Limit(limit).Find(&entries)
	if result.Error != nil {
		return nil, result.Error
	}

	slices.Reverse(entries)
	return entries, nil
}

// GetEntriesByRun returns the entries of one run in the order they were processed.
func (historyManager *HistoryManager) GetEntriesByRun(runID string) ([]HistoryEntry, error) {
	var entries []HistoryEntry
	result := historyManager.db.Where("run_id = ?", runID).Order("id asc").Find(&entries)
	if result.Error != nil {
		return nil, result.Error
	}
	return entries, nil
}

func (historyManager *HistoryManager) DeleteEntry(id uint) error {
	result := historyManager.db.Delete(&HistoryEntry{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("no history entry found with id %d", id)
	}

	return nil
}

func (historyManager *HistoryManager) ResetHistory() error {
	result := historyManager.db.Exec("DELETE FROM history_entries")
	if result.Error != nil {
		return result.Error
	}

	return nil
}

func (historyManager *HistoryManager) GetTotalCount() (int64, error) {
	var count int64
	result := historyManager.db.Model(&HistoryEntry{}).Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}
	return count, nil
}

// Journal returns a batch.Journal that records every unit under runID.
func (historyManager *HistoryManager) Journal(runID string) batch.Journal {
	return &runJournal{manager: historyManager, runID: runID}
}

type runJournal struct {
	manager *HistoryManager
	runID   string
}

func (j *runJournal) Record(unit batch.Unit) error {
	_, err := j.manager.Record(j.runID, unit)
	return err
}
