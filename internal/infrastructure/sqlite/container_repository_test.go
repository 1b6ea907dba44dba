package sqlite

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
	"pgregory.net/rapid"

	"github.com/zjrosen/hyperstore/internal/containers/domain"
	"github.com/zjrosen/hyperstore/internal/testutil"
)

// testClock is a manually advanced clock.
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// setupTestRepo creates a migrated database and a repository on a test clock.
func setupTestRepo(t *testing.T) (*containerRepository, *DB, *testClock) {
	t.Helper()
	db := setupDB(t)
	clock := newTestClock()
	return newContainerRepository(db.conn, WithClock(clock.Now)), db, clock
}

func ptr[T any](v T) *T { return &v }

func webConfig() domain.Config {
	return domain.Config{
		CPULimit:    ptr(uint32(2)),
		MemoryLimit: ptr(uint64(536870912)),
	}
}

func TestGetOrCreate_CreatesStoppedContainer(t *testing.T) {
	repo, _, clock := setupTestRepo(t)
	ctx := context.Background()

	c, err := repo.GetOrCreate(ctx, "web-1", "ubuntu", webConfig())
	require.NoError(t, err)

	require.NotEqual(t, uuid.Nil, c.ID(), "id should be assigned")
	require.Equal(t, "web-1", c.Name())
	require.Equal(t, domain.StatusStopped, c.Status())
	require.Equal(t, "ubuntu", c.Template())
	require.False(t, c.HasNode(), "new containers are unassigned")
	require.True(t, c.CreatedAt().Equal(clock.Now()), "createdAt should come from the clock")
	require.True(t, c.UpdatedAt().Equal(c.CreatedAt()), "createdAt == updatedAt on create")
	require.Equal(t, webConfig(), c.Config())
}

func TestGetOrCreate_ReturnsExistingUnchanged(t *testing.T) {
	repo, _, clock := setupTestRepo(t)
	ctx := context.Background()

	first, err := repo.GetOrCreate(ctx, "web-1", "ubuntu", webConfig())
	require.NoError(t, err)

	clock.Advance(time.Minute)
	second, err := repo.GetOrCreate(ctx, "web-1", "alpine", domain.Config{CPULimit: ptr(uint32(8))})
	require.NoError(t, err)

	require.Equal(t, first.ID(), second.ID(), "same name must yield the same id")
	require.Equal(t, "ubuntu", second.Template(), "template of the later call is ignored")
	require.Equal(t, webConfig(), second.Config(), "config of the later call is ignored")
	require.True(t, first.CreatedAt().Equal(second.CreatedAt()))
	require.True(t, first.UpdatedAt().Equal(second.UpdatedAt()))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
}

func TestGetOrCreate_ConcurrentCallersShareOneRow(t *testing.T) {
	repo, db, _ := setupTestRepo(t)
	ctx := context.Background()

	const callers = 16
	ids := make([]uuid.UUID, callers)

	g, gctx := errgroup.WithContext(ctx)
	for i := range callers {
		g.Go(func() error {
			c, err := repo.GetOrCreate(gctx, "race", "alpine", domain.Config{})
			if err != nil {
				return err
			}
			ids[i] = c.ID()
			return nil
		})
	}
	require.NoError(t, g.Wait(), "no caller should fail")

	for i := 1; i < callers; i++ {
		require.Equal(t, ids[0], ids[i], "caller %d saw a different id", i)
	}

	var count int
	require.NoError(t, db.conn.QueryRow(`SELECT COUNT(*) FROM containers WHERE name = 'race'`).Scan(&count))
	require.Equal(t, 1, count, "exactly one row should exist")
}

func TestEnsure_ReportsCreation(t *testing.T) {
	repo, _, _ := setupTestRepo(t)
	ctx := context.Background()

	first, created, err := repo.Ensure(ctx, "web-1", "alpine", domain.Config{})
	require.NoError(t, err)
	require.True(t, created, "first call inserts")

	second, created, err := repo.Ensure(ctx, "web-1", "alpine", domain.Config{})
	require.NoError(t, err)
	require.False(t, created, "second call finds the existing row")
	require.Equal(t, first.ID(), second.ID())
}

func TestEnsure_ExactlyOneRacerCreates(t *testing.T) {
	repo, _, _ := setupTestRepo(t)

	const callers = 12
	var (
		mu      sync.Mutex
		winners int
	)
	var g errgroup.Group
	for range callers {
		g.Go(func() error {
			_, created, err := repo.Ensure(context.Background(), "contended", "alpine", domain.Config{})
			if created {
				mu.Lock()
				winners++
				mu.Unlock()
			}
			return err
		})
	}
	require.NoError(t, g.Wait())
	require.Equal(t, 1, winners)
}

// TestGetOrCreate_Idempotent_Property checks that repeated calls for any set of
// names yield one stable id per name.
func TestGetOrCreate_Idempotent_Property(t *testing.T) {
	repo, _, _ := setupTestRepo(t)
	ctx := context.Background()
	seen := make(map[string]uuid.UUID)

	rapid.Check(t, func(r *rapid.T) {
		name := rapid.StringMatching(`[a-z0-9][a-z0-9.-]{0,20}`).Draw(r, "name")
		template := rapid.SampledFrom([]string{"alpine", "ubuntu", "debian"}).Draw(r, "template")

		c, err := repo.GetOrCreate(ctx, name, template, domain.Config{})
		if err != nil {
			r.Fatalf("GetOrCreate(%q): %v", name, err)
		}
		if prev, ok := seen[name]; ok && prev != c.ID() {
			r.Fatalf("GetOrCreate(%q) returned %s, previously %s", name, c.ID(), prev)
		}
		seen[name] = c.ID()

		got, err := repo.GetByName(ctx, name)
		if err != nil {
			r.Fatalf("GetByName(%q): %v", name, err)
		}
		if got.ID() != c.ID() {
			r.Fatalf("GetByName(%q) id %s, want %s", name, got.ID(), c.ID())
		}
	})
}

func TestGetOrCreate_GivesUpAsInternal(t *testing.T) {
	db := setupDB(t)
	repo := newContainerRepository(db.conn, WithMaxAttempts(2))
	ctx := context.Background()

	// Every insert is silently dropped, so the row never appears.
	_, err := db.conn.Exec(`CREATE TRIGGER swallow BEFORE INSERT ON containers BEGIN SELECT RAISE(IGNORE); END`)
	require.NoError(t, err)

	_, err = repo.GetOrCreate(ctx, "ghost", "alpine", domain.Config{})
	require.Error(t, err)
	require.True(t, errors.Is(err, domain.ErrInternal), "expected internal error, got %v", err)
	require.Equal(t, domain.KindInternal, domain.KindOf(err))
}

func TestCreate_RejectsDuplicateName(t *testing.T) {
	repo, _, _ := setupTestRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, "db-1", "alpine", domain.Config{})
	require.NoError(t, err)
	require.Equal(t, domain.StatusStopped, created.Status())

	_, err = repo.Create(ctx, "db-1", "ubuntu", domain.Config{})
	require.Error(t, err)

	var exists *domain.AlreadyExistsError
	require.True(t, errors.As(err, &exists), "expected *AlreadyExistsError, got %T", err)
	require.Equal(t, "db-1", exists.Name)
	require.Equal(t, domain.KindAlreadyExists, domain.KindOf(err))

	got, err := repo.GetByName(ctx, "db-1")
	require.NoError(t, err)
	require.Equal(t, "alpine", got.Template(), "original row is untouched")
}

func TestGetByName_NotFound(t *testing.T) {
	repo, _, _ := setupTestRepo(t)

	_, err := repo.GetByName(context.Background(), "missing")
	require.Error(t, err)

	var notFound *domain.NotFoundError
	require.True(t, errors.As(err, &notFound))
	require.Equal(t, "missing", notFound.Key)
	require.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestGetByName_IsExactMatch(t *testing.T) {
	repo, _, _ := setupTestRepo(t)
	ctx := context.Background()

	_, err := repo.GetOrCreate(ctx, "web-1", "alpine", domain.Config{})
	require.NoError(t, err)

	for _, name := range []string{"WEB-1", "web-1 ", "web", "web-10"} {
		_, err := repo.GetByName(ctx, name)
		require.True(t, errors.Is(err, domain.ErrNotFound), "%q should not match web-1", name)
	}
}

func TestGetByID(t *testing.T) {
	repo, _, _ := setupTestRepo(t)
	ctx := context.Background()

	created, err := repo.GetOrCreate(ctx, "web-1", "alpine", webConfig())
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, created.ID())
	require.NoError(t, err)
	require.Equal(t, "web-1", got.Name())
	require.Equal(t, webConfig(), got.Config())

	missing := uuid.New()
	_, err = repo.GetByID(ctx, missing)
	var notFound *domain.NotFoundError
	require.True(t, errors.As(err, &notFound))
	require.Equal(t, missing.String(), notFound.Key)
}

func TestList_EmptyIsNotNil(t *testing.T) {
	repo, _, _ := setupTestRepo(t)

	list, err := repo.List(context.Background())
	require.NoError(t, err)
	require.NotNil(t, list)
	require.Empty(t, list)
}

func TestList_NewestFirst(t *testing.T) {
	repo, _, clock := setupTestRepo(t)
	ctx := context.Background()

	for _, name := range []string{"a", "b", "c"} {
		_, err := repo.GetOrCreate(ctx, name, "alpine", domain.Config{})
		require.NoError(t, err)
		clock.Advance(time.Second)
	}

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"c", "b", "a"}, containerNames(list))
}

func TestList_TiesBrokenByInsertionOrder(t *testing.T) {
	repo, _, _ := setupTestRepo(t)
	ctx := context.Background()

	// The clock never advances, so every createdAt is identical.
	for _, name := range []string{"x", "y", "z"} {
		_, err := repo.GetOrCreate(ctx, name, "alpine", domain.Config{})
		require.NoError(t, err)
	}

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"z", "y", "x"}, containerNames(list))
}

func TestList_SubsecondOrdering(t *testing.T) {
	repo, _, clock := setupTestRepo(t)
	ctx := context.Background()

	_, err := repo.GetOrCreate(ctx, "first", "alpine", domain.Config{})
	require.NoError(t, err)
	clock.Advance(time.Microsecond)
	_, err = repo.GetOrCreate(ctx, "second", "alpine", domain.Config{})
	require.NoError(t, err)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"second", "first"}, containerNames(list))
}

func containerNames(list []*domain.Container) []string {
	names := make([]string, len(list))
	for i, c := range list {
		names[i] = c.Name()
	}
	return names
}

func TestUpdateStatus(t *testing.T) {
	repo, _, clock := setupTestRepo(t)
	ctx := context.Background()

	created, err := repo.GetOrCreate(ctx, "web-1", "ubuntu", webConfig())
	require.NoError(t, err)

	clock.Advance(5 * time.Second)
	n, err := repo.UpdateStatus(ctx, "web-1", domain.StatusRunning)
	require.NoError(t, err)
	require.Equal(t, int64(1), n)

	got, err := repo.GetByName(ctx, "web-1")
	require.NoError(t, err)
	require.Equal(t, domain.StatusRunning, got.Status())
	require.True(t, got.CreatedAt().Equal(created.CreatedAt()), "createdAt must not change")
	require.True(t, got.UpdatedAt().After(created.UpdatedAt()), "updatedAt should advance")
	require.Equal(t, created.ID(), got.ID())
	require.Equal(t, created.Template(), got.Template())
	require.Equal(t, created.Config(), got.Config())
}

func TestUpdateStatus_MissingReportsZeroRows(t *testing.T) {
	repo, _, _ := setupTestRepo(t)

	n, err := repo.UpdateStatus(context.Background(), "ghost", domain.StatusRunning)
	require.NoError(t, err, "updating a missing container is not an error")
	require.Zero(t, n)
}

func TestUpdateStatus_ClockBehindCreatedAt(t *testing.T) {
	repo, _, clock := setupTestRepo(t)
	ctx := context.Background()

	created, err := repo.GetOrCreate(ctx, "web-1", "alpine", domain.Config{})
	require.NoError(t, err)

	clock.Advance(-time.Hour)
	_, err = repo.UpdateStatus(ctx, "web-1", domain.StatusFrozen)
	require.NoError(t, err)

	got, err := repo.GetByName(ctx, "web-1")
	require.NoError(t, err)
	require.False(t, got.UpdatedAt().Before(got.CreatedAt()), "updatedAt must never precede createdAt")
	require.True(t, got.CreatedAt().Equal(created.CreatedAt()))
}

func TestUpdateStatus_InvalidStatusRejectedByStore(t *testing.T) {
	repo, _, _ := setupTestRepo(t)
	ctx := context.Background()

	_, err := repo.GetOrCreate(ctx, "web-1", "alpine", domain.Config{})
	require.NoError(t, err)

	_, err = repo.UpdateStatus(ctx, "web-1", domain.Status("paused"))
	require.Error(t, err)
	require.Equal(t, domain.KindStorage, domain.KindOf(err))

	got, err := repo.GetByName(ctx, "web-1")
	require.NoError(t, err)
	require.Equal(t, domain.StatusStopped, got.Status(), "row is unchanged")
}

func TestUpdateStatus_EveryStatusRoundTrips(t *testing.T) {
	repo, _, _ := setupTestRepo(t)
	ctx := context.Background()

	_, err := repo.GetOrCreate(ctx, "web-1", "alpine", domain.Config{})
	require.NoError(t, err)

	for _, status := range domain.AllStatuses() {
		_, err := repo.UpdateStatus(ctx, "web-1", status)
		require.NoError(t, err)
		got, err := repo.GetByName(ctx, "web-1")
		require.NoError(t, err)
		require.Equal(t, status, got.Status())
	}
}

func TestDelete(t *testing.T) {
	repo, _, _ := setupTestRepo(t)
	ctx := context.Background()

	_, err := repo.GetOrCreate(ctx, "web-1", "alpine", domain.Config{})
	require.NoError(t, err)

	n, err := repo.Delete(ctx, "web-1")
	require.NoError(t, err)
	require.Equal(t, int64(1), n)

	exists, err := repo.Exists(ctx, "web-1")
	require.NoError(t, err)
	require.False(t, exists)

	_, err = repo.GetByName(ctx, "web-1")
	require.True(t, errors.Is(err, domain.ErrNotFound))

	n, err = repo.Delete(ctx, "web-1")
	require.NoError(t, err, "deleting a missing container is not an error")
	require.Zero(t, n)
}

func TestDelete_ThenGetOrCreateMintsNewID(t *testing.T) {
	repo, _, _ := setupTestRepo(t)
	ctx := context.Background()

	first, err := repo.GetOrCreate(ctx, "web-1", "alpine", domain.Config{})
	require.NoError(t, err)
	_, err = repo.Delete(ctx, "web-1")
	require.NoError(t, err)

	second, err := repo.GetOrCreate(ctx, "web-1", "alpine", domain.Config{})
	require.NoError(t, err)
	require.NotEqual(t, first.ID(), second.ID())
}

func TestExists(t *testing.T) {
	repo, _, _ := setupTestRepo(t)
	ctx := context.Background()

	exists, err := repo.Exists(ctx, "web-1")
	require.NoError(t, err)
	require.False(t, exists)

	_, err = repo.GetOrCreate(ctx, "web-1", "alpine", domain.Config{})
	require.NoError(t, err)

	exists, err = repo.Exists(ctx, "web-1")
	require.NoError(t, err)
	require.True(t, exists)
}

func TestRead_CorruptIDIsInvalidData(t *testing.T) {
	repo, db, _ := setupTestRepo(t)
	testutil.NewBuilder(t, db.conn).WithContainer("broken", testutil.ID("not-a-uuid")).Build()

	_, err := repo.GetByName(context.Background(), "broken")
	require.Error(t, err)
	require.Equal(t, domain.KindInvalidData, domain.KindOf(err))
	require.Contains(t, err.Error(), "invalid UUID")

	_, err = repo.List(context.Background())
	require.Equal(t, domain.KindInvalidData, domain.KindOf(err), "List surfaces the bad row")
}

func TestRead_CorruptConfigIsInvalidData(t *testing.T) {
	repo, db, _ := setupTestRepo(t)
	for i, raw := range []string{"not json", "null", "[]", `{"cpu_limit":"two"}`, `{"version":99}`, `{"cpus":4,"mem":"512MB"}`} {
		name := fmt.Sprintf("bad-%d", i)
		testutil.NewBuilder(t, db.conn).WithContainer(name, testutil.Config(raw)).Build()

		_, err := repo.GetByName(context.Background(), name)
		require.Equal(t, domain.KindInvalidData, domain.KindOf(err), "config %q", raw)
	}
}

func TestRead_UnversionedConfigLoads(t *testing.T) {
	repo, db, _ := setupTestRepo(t)
	testutil.NewBuilder(t, db.conn).
		WithContainer("legacy", testutil.Status("running"), testutil.Config(`{"cpu_limit":4,"rootfs_path":"/var/lib/rootfs"}`)).
		Build()

	c, err := repo.GetByName(context.Background(), "legacy")
	require.NoError(t, err)
	require.Equal(t, uint32(4), *c.Config().CPULimit)
	require.Equal(t, "/var/lib/rootfs", c.Config().RootfsPath)
	require.Nil(t, c.Config().MemoryLimit)
}

func TestRead_UnknownStatusMapsToError(t *testing.T) {
	repo, db, _ := setupTestRepo(t)
	ctx := context.Background()

	conn, err := db.conn.Conn(ctx)
	require.NoError(t, err)
	_, err = conn.ExecContext(ctx, `PRAGMA ignore_check_constraints = ON`)
	require.NoError(t, err)
	now := formatTimestamp(time.Now())
	_, err = conn.ExecContext(ctx,
		`INSERT INTO containers (`+containerColumns+`) VALUES (?, 'odd', 'hibernating', 'alpine', NULL, ?, ?, '{}')`,
		uuid.NewString(), now, now,
	)
	require.NoError(t, err)
	_, err = conn.ExecContext(ctx, `PRAGMA ignore_check_constraints = OFF`)
	require.NoError(t, err)
	require.NoError(t, conn.Close())

	c, err := repo.GetByName(ctx, "odd")
	require.NoError(t, err, "an unknown status must not fail the load")
	require.Equal(t, domain.StatusError, c.Status())
}

func TestRead_NodeAssignment(t *testing.T) {
	repo, db, _ := setupTestRepo(t)
	ctx := context.Background()

	testutil.NewBuilder(t, db.conn).WithContainer("web-1", testutil.NodeID("node-7")).Build()

	c, err := repo.GetByName(ctx, "web-1")
	require.NoError(t, err)
	require.True(t, c.HasNode())
	require.Equal(t, "node-7", c.NodeID())
}

func TestRead_LegacyTimestampFormat(t *testing.T) {
	repo, db, _ := setupTestRepo(t)
	_, err := db.conn.Exec(
		`INSERT INTO containers (`+containerColumns+`) VALUES (?, 'old', 'stopped', 'alpine', NULL, '2024-01-02 03:04:05', '2024-01-02 03:04:05', '{}')`,
		uuid.NewString(),
	)
	require.NoError(t, err)

	c, err := repo.GetByName(context.Background(), "old")
	require.NoError(t, err)
	require.True(t, c.CreatedAt().Equal(time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)), "got %v", c.CreatedAt())
}

func TestConfig_FullRoundTrip(t *testing.T) {
	repo, _, _ := setupTestRepo(t)
	ctx := context.Background()

	cfg := domain.Config{
		CPULimit:    ptr(uint32(4)),
		MemoryLimit: ptr(uint64(2 << 30)),
		DiskLimit:   ptr(uint64(20 << 30)),
		NetworkInterfaces: []domain.NetworkInterface{
			{Name: "eth0", Bridge: "br0", IPv4: "10.0.0.5/24", MACAddress: "aa:bb:cc:dd:ee:ff"},
		},
		RootfsPath:  "/var/lib/hyperstore/web-1",
		Environment: []domain.EnvVar{{Key: "PORT", Value: "8080"}, {Key: "MODE", Value: "prod"}},
	}

	_, err := repo.GetOrCreate(ctx, "web-1", "alpine", cfg)
	require.NoError(t, err)

	got, err := repo.GetByName(ctx, "web-1")
	require.NoError(t, err)
	require.Equal(t, cfg, got.Config())
}

func TestTimestamp_Scan(t *testing.T) {
	want := time.Date(2026, 3, 1, 12, 0, 0, 123456789, time.UTC)

	var ts timestamp
	require.NoError(t, ts.Scan(formatTimestamp(want)))
	require.True(t, time.Time(ts).Equal(want))

	require.NoError(t, ts.Scan([]byte(want.Format(time.RFC3339Nano))))
	require.True(t, time.Time(ts).Equal(want))

	require.NoError(t, ts.Scan(want.In(time.FixedZone("X", 3600))))
	require.Equal(t, time.UTC, time.Time(ts).Location())

	require.Error(t, ts.Scan("yesterday"))
	require.Error(t, ts.Scan(nil))
	require.Error(t, ts.Scan(3.14))
}

func TestFormatTimestamp_SortsLexicographically(t *testing.T) {
	rapid.Check(t, func(r *rapid.T) {
		a := time.Unix(0, rapid.Int64Range(0, 4102444800e9).Draw(r, "a"))
		b := time.Unix(0, rapid.Int64Range(0, 4102444800e9).Draw(r, "b"))

		sa, sb := formatTimestamp(a), formatTimestamp(b)
		if len(sa) != len(sb) {
			r.Fatalf("width differs: %q vs %q", sa, sb)
		}
		if a.Before(b) != (sa < sb) {
			r.Fatalf("order mismatch: %v < %v but %q vs %q", a, b, sa, sb)
		}
	})
}

func TestList_SeededFleet(t *testing.T) {
	repo, db, _ := setupTestRepo(t)
	testutil.NewBuilder(t, db.conn).WithFleet().Build()

	list, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"cache-1", "db-1", "web-2", "web-1"}, containerNames(list))

	web, err := repo.GetByName(context.Background(), "web-1")
	require.NoError(t, err)
	require.Equal(t, domain.StatusRunning, web.Status())
	require.Equal(t, []domain.EnvVar{{Key: "PORT", Value: "8080"}}, web.Config().Environment)
}
