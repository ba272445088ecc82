package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/Anabolique89/MuralFinderApp-sub000/internal/models"
	"github.com/Anabolique89/MuralFinderApp-sub000/internal/repositories"
)

// fakeClock is a settable clock for driving quiet-hours and retry timing
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock(t time.Time) *fakeClock { return &fakeClock{t: t} }

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = t
}

// fakeMailer records sends and optionally fails a number of times
type fakeMailer struct {
	mu       sync.Mutex
	sent     []string // recipient addresses
	failures int
}

func (m *fakeMailer) Send(_ context.Context, to, _, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failures > 0 {
		m.failures--
		return errors.New("smtp unreachable")
	}
	m.sent = append(m.sent, to)
	return nil
}

func (m *fakeMailer) sentCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

// fakePush records pushed tokens and optionally fails a number of times
type fakePush struct {
	mu       sync.Mutex
	sent     [][]string
	failures int
}

func (p *fakePush) Send(_ context.Context, tokens []string, _, _ string, _ map[string]string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.failures > 0 {
		p.failures--
		return errors.New("fcm unreachable")
	}
	p.sent = append(p.sent, tokens)
	return nil
}

func (p *fakePush) sentCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.sent)
}

// testEnv wires the full service graph onto in-memory SQLite and miniredis
type testEnv struct {
	db    *gorm.DB
	clk   *fakeClock
	queue *DeliveryQueue

	mailer *fakeMailer
	push   *fakePush

	userRepo   repositories.UserRepository
	followRepo repositories.FollowRepository
	likeRepo   repositories.LikeRepository
	notifRepo  repositories.NotificationRepository
	prefRepo   repositories.PreferenceRepository
	deviceRepo repositories.DeviceRepository

	worker        *DeliveryWorker
	prefs         *PreferenceService
	notifier      *NotificationService
	relationships *RelationshipService
	engagement    *EngagementService
	content       *ContentService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.FollowEdge{},
		&models.Like{},
		&models.Comment{},
		&models.Wall{},
		&models.Artwork{},
		&models.Post{},
		&models.Notification{},
		&models.NotificationPreference{},
		&models.Device{},
	))

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	env := &testEnv{
		db:     db,
		clk:    newFakeClock(time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)),
		mailer: &fakeMailer{},
		push:   &fakePush{},
	}

	env.userRepo = repositories.NewPostgresUserRepository(db)
	env.followRepo = repositories.NewPostgresFollowRepository(db)
	env.likeRepo = repositories.NewPostgresLikeRepository(db)
	commentRepo := repositories.NewPostgresCommentRepository(db)
	wallRepo := repositories.NewPostgresWallRepository(db)
	artworkRepo := repositories.NewPostgresArtworkRepository(db)
	postRepo := repositories.NewPostgresPostRepository(db)
	env.notifRepo = repositories.NewPostgresNotificationRepository(db)
	env.prefRepo = repositories.NewPostgresPreferenceRepository(db)
	env.deviceRepo = repositories.NewPostgresDeviceRepository(db)
	counters := repositories.NewCounterStore(db)
	registry := repositories.NewEntityRegistry(db)

	env.queue = NewDeliveryQueue(rdb)
	env.worker = NewDeliveryWorker(
		env.notifRepo, env.userRepo, env.deviceRepo, nil, env.queue,
		env.mailer, env.push, env.clk, 1, 64,
	)
	env.prefs = NewPreferenceService(env.prefRepo, env.clk)
	env.notifier = NewNotificationService(db, env.notifRepo, env.userRepo, env.prefs, env.queue, env.worker, env.clk)
	env.relationships = NewRelationshipService(db, env.followRepo, env.userRepo, counters, env.notifier, env.clk)
	env.engagement = NewEngagementService(db, registry, env.likeRepo, commentRepo, env.userRepo, counters, env.notifier, env.clk)
	env.content = NewContentService(db, wallRepo, artworkRepo, postRepo, env.followRepo, counters, env.notifier, env.clk)

	return env
}

func (env *testEnv) createUser(t *testing.T, username string) *models.User {
	t.Helper()
	u := &models.User{Username: username, Email: username + "@example.com"}
	require.NoError(t, env.db.Create(u).Error)
	return u
}

// pendingJobs drains the worker's in-process channel without processing
func (env *testEnv) pendingJobs() []DeliveryJob {
	var jobs []DeliveryJob
	for {
		select {
		case j := <-env.worker.ch:
			jobs = append(jobs, j)
		default:
			return jobs
		}
	}
}

// runPending processes every job currently queued on the worker channel
func (env *testEnv) runPending(ctx context.Context) {
	for _, j := range env.pendingJobs() {
		env.worker.process(ctx, j)
	}
}

func (env *testEnv) user(t *testing.T, id uint) *models.User {
	t.Helper()
	var u models.User
	require.NoError(t, env.db.First(&u, id).Error)
	return &u
}

func (env *testEnv) notificationsFor(t *testing.T, userID uint) []models.Notification {
	t.Helper()
	var ns []models.Notification
	require.NoError(t, env.db.Where("recipient_id = ?", userID).Order("id").Find(&ns).Error)
	return ns
}
