package source

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pricecheck-service/internal/config"
	"pricecheck-service/internal/fileio"
)

type countingFetcher struct {
	calls atomic.Int32
	delay time.Duration
	err   error
}

func (f *countingFetcher) Fetch(_ context.Context, id, sheet string) (*fileio.Table, error) {
	f.calls.Add(1)
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	if f.err != nil {
		return nil, f.err
	}
	return &fileio.Table{Columns: []string{id, sheet}}, nil
}

func TestCacheMemoizesPerDatasetAndSheet(t *testing.T) {
	next := &countingFetcher{}
	c := NewCache(next, 8, time.Hour, zerolog.Nop())
	ctx := context.Background()

	a1, err := c.Fetch(ctx, "db", "")
	require.NoError(t, err)
	a2, err := c.Fetch(ctx, "db", "")
	require.NoError(t, err)
	require.Same(t, a1, a2)
	require.EqualValues(t, 1, next.calls.Load())

	b, err := c.Fetch(ctx, "db", "Sheet2")
	require.NoError(t, err)
	require.NotSame(t, a1, b)
	require.EqualValues(t, 2, next.calls.Load())
	require.Equal(t, 2, c.Len())

	c.Invalidate()
	_, err = c.Fetch(ctx, "db", "")
	require.NoError(t, err)
	require.EqualValues(t, 3, next.calls.Load())
}

func TestCacheExpires(t *testing.T) {
	next := &countingFetcher{}
	c := NewCache(next, 8, time.Minute, zerolog.Nop())
	now := time.Now()
	c.now = func() time.Time { return now }

	_, err := c.Fetch(context.Background(), "sj", "")
	require.NoError(t, err)
	now = now.Add(2 * time.Minute)
	_, err = c.Fetch(context.Background(), "sj", "")
	require.NoError(t, err)
	require.EqualValues(t, 2, next.calls.Load())
}

func TestCacheDoesNotKeepFailures(t *testing.T) {
	next := &countingFetcher{err: errors.New("403 forbidden")}
	c := NewCache(next, 8, time.Hour, zerolog.Nop())

	_, err := c.Fetch(context.Background(), "db", "")
	require.Error(t, err)
	next.err = nil
	tbl, err := c.Fetch(context.Background(), "db", "")
	require.NoError(t, err)
	require.NotNil(t, tbl)
	require.EqualValues(t, 2, next.calls.Load())
}

func TestCacheCollapsesConcurrentFetches(t *testing.T) {
	next := &countingFetcher{delay: 50 * time.Millisecond}
	c := NewCache(next, 8, time.Hour, zerolog.Nop())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := c.Fetch(context.Background(), "db", "")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	require.LessOrEqual(t, next.calls.Load(), int32(2))
}

// blockingFetcher holds every fetch until release is closed, or fails when its context ends first.
type blockingFetcher struct {
	calls   atomic.Int32
	started chan struct{}
	release chan struct{}
}

func (f *blockingFetcher) Fetch(ctx context.Context, id, _ string) (*fileio.Table, error) {
	if f.calls.Add(1) == 1 {
		close(f.started)
	}
	select {
	case <-f.release:
		return &fileio.Table{Columns: []string{id}}, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func TestCacheSharedFetchSurvivesFirstCallerCancel(t *testing.T) {
	next := &blockingFetcher{started: make(chan struct{}), release: make(chan struct{})}
	c := NewCache(next, 8, time.Hour, zerolog.Nop())

	firstCtx, cancel := context.WithCancel(context.Background())
	errs := make(chan error, 2)
	go func() {
		_, err := c.Fetch(firstCtx, "db", "")
		errs <- err
	}()
	<-next.started
	go func() {
		_, err := c.Fetch(context.Background(), "db", "")
		errs <- err
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()
	time.Sleep(20 * time.Millisecond)
	close(next.release)

	for i := 0; i < 2; i++ {
		require.NoError(t, <-errs)
	}
	require.EqualValues(t, 1, next.calls.Load())
	require.Equal(t, 1, c.Len())
}

func TestSheetsWithLocalLoader(t *testing.T) {
	dir := t.TempDir()
	csv := "NAMABRG,HARGARATA,SJ_CREATED_ON\nBAUT M8,Rp 1500,2024-01-15\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sj.csv"), []byte(csv), 0o644))

	s := NewSheets(LocalLoader{Dir: dir}, fileio.CleanRules{
		Currency:  []string{"HARGARATA"},
		Timestamp: []string{"SJ_CREATED_ON"},
	}, zerolog.Nop())

	tbl, err := s.Fetch(context.Background(), "sj.csv", "")
	require.NoError(t, err)
	require.Equal(t, 1, tbl.Len())
	price, ok := tbl.Rows[0].Float("HARGARATA")
	require.True(t, ok)
	require.Equal(t, 1500.0, price)
	ts, ok := tbl.Rows[0].Time("SJ_CREATED_ON")
	require.True(t, ok)
	require.Equal(t, 15, ts.Day())

	_, err = s.Fetch(context.Background(), "missing.xlsx", "")
	require.Error(t, err)
}

func TestNewLocalChain(t *testing.T) {
	cache, closer, err := New(context.Background(), config.SourceConfig{
		Kind: "local", LocalDir: t.TempDir(), CacheTTL: time.Hour, CacheSize: 4,
	}, fileio.CleanRules{}, zerolog.Nop())
	require.NoError(t, err)
	require.NotNil(t, cache)
	require.NoError(t, closer())

	_, _, err = New(context.Background(), config.SourceConfig{Kind: "ftp"}, fileio.CleanRules{}, zerolog.Nop())
	require.Error(t, err)
}

func TestSplitObjectID(t *testing.T) {
	b, o, err := splitObjectID("gs://reports/sj/2024.xlsx")
	require.NoError(t, err)
	require.Equal(t, "reports", b)
	require.Equal(t, "sj/2024.xlsx", o)

	_, _, err = splitObjectID("gs://reports")
	require.Error(t, err)
}

func TestWithExt(t *testing.T) {
	require.Equal(t, "Data SJ.xlsx", withExt("Data SJ", ".xlsx"))
	require.Equal(t, "db.XLSX", withExt("db.XLSX", ".xlsx"))
}

func TestClientOptions(t *testing.T) {
	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS_JSON", "")
	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", "")
	require.Empty(t, ClientOptions(config.SourceConfig{}))
	require.Len(t, ClientOptions(config.SourceConfig{CredentialsJSON: `{"type":"service_account"}`}), 1)
	require.Len(t, ClientOptions(config.SourceConfig{CredentialsFile: "/etc/sa.json"}), 1)
}
