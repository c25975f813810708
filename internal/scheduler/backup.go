package scheduler

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

const snapshotTimeFormat = "20060102-150405"

// SnapshotScheduler periodically copies the library file into a backup
// directory so a corrupted or lost library.json can be restored by hand.
type SnapshotScheduler struct {
	libraryPath string
	backupDir   string
	schedule    string
	keep        int

	cron      *cron.Cron
	entryID   cron.EntryID
	mu        sync.Mutex
	isRunning bool
}

// NewSnapshotScheduler creates a scheduler that snapshots libraryPath to
// backupDir on the given cron schedule, retaining the newest keep files.
func NewSnapshotScheduler(libraryPath, backupDir, schedule string, keep int) *SnapshotScheduler {
	return &SnapshotScheduler{
		libraryPath: libraryPath,
		backupDir:   backupDir,
		schedule:    schedule,
		keep:        keep,
		cron:        cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow))),
	}
}

// Start begins the scheduler.
func (s *SnapshotScheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if err := os.MkdirAll(s.backupDir, 0o755); err != nil {
		return fmt.Errorf("failed to create backup directory %s: %w", s.backupDir, err)
	}

	entryID, err := s.cron.AddFunc(s.schedule, func() {
		if err := s.Snapshot(); err != nil {
			log.Printf("Library snapshot failed: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule snapshot job: %w", err)
	}
	s.entryID = entryID

	s.cron.Start()
	s.isRunning = true
	log.Printf("Snapshot scheduler: started with schedule '%s', keeping %d snapshots in %s",
		s.schedule, s.keep, s.backupDir)
	return nil
}

// Stop halts the scheduler. Already-running jobs finish on their own.
func (s *SnapshotScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}
	s.cron.Stop()
	s.isRunning = false
	log.Printf("Snapshot scheduler: stopped")
}

// Snapshot copies the current library file into the backup directory and
// prunes snapshots beyond the retention count. A missing library file is
// not an error; there is simply nothing to back up yet.
func (s *SnapshotScheduler) Snapshot() error {
	data, err := os.ReadFile(s.libraryPath)
	if os.IsNotExist(err) {
		log.Printf("Snapshot skipped: %s does not exist yet", s.libraryPath)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read library file: %w", err)
	}

	base := filepath.Base(s.libraryPath)
	ext := filepath.Ext(base)
	name := base[:len(base)-len(ext)]
	target := filepath.Join(s.backupDir, fmt.Sprintf("%s-%s%s", name, time.Now().Format(snapshotTimeFormat), ext))

	if err := os.WriteFile(target, data, 0o644); err != nil {
		return fmt.Errorf("failed to write snapshot %s: %w", target, err)
	}
	log.Printf("Library snapshot written to %s", target)

	return s.prune(name, ext)
}

// prune deletes the oldest snapshots beyond the retention count. The
// timestamp in the filename sorts lexicographically, so name order is
// age order.
func (s *SnapshotScheduler) prune(name, ext string) error {
	if s.keep <= 0 {
		return nil
	}

	matches, err := filepath.Glob(filepath.Join(s.backupDir, name+"-*"+ext))
	if err != nil {
		return fmt.Errorf("failed to list snapshots: %w", err)
	}
	if len(matches) <= s.keep {
		return nil
	}

	sort.Strings(matches)
	for _, old := range matches[:len(matches)-s.keep] {
		if err := os.Remove(old); err != nil {
			log.Printf("Failed to prune snapshot %s: %v", old, err)
		}
	}
	return nil
}
