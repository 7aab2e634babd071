package services

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/prasad217/Electric-Billing-system/internal/adapters/persistence/models"
	"github.com/prasad217/Electric-Billing-system/internal/core/sessions"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// Named shared-cache DSN: every pooled connection must land on the
	// same in-memory database, and each test gets its own.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

func newTestSessionStore(t *testing.T) (*sessions.Store, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return sessions.NewStore(client, time.Hour), mr
}

// fakeNotifier records enqueued outbox ids
type fakeNotifier struct {
	enqueued []uint
}

func (f *fakeNotifier) Enqueue(outboxID uint) {
	f.enqueued = append(f.enqueued, outboxID)
}

// Concurrent queries force the pool to open extra connections; all of
// them must see the migrated schema and the seeded rows.
func TestConcurrentConnectionsShareDatabase(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "a@x.com")

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			var got models.User
			if err := db.First(&got, user.ID).Error; err != nil {
				t.Errorf("query on pooled connection: %v", err)
			}
		}()
	}
	wg.Wait()
}
