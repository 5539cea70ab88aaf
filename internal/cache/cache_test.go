package cache_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/nwtnni/goldfish/internal/cache"
	"github.com/nwtnni/goldfish/internal/journal"
)

func openCache(t *testing.T, threshold int64) (*cache.Cache, *journal.Log) {
	t.Helper()

	log, err := journal.Open(filepath.Join(t.TempDir(), "history"))
	require.NoError(t, err)

	t.Cleanup(func() { _ = log.Close() })

	return cache.New(log, threshold), log
}

func fileSize(t *testing.T, log *journal.Log) int64 {
	t.Helper()

	info, err := os.Stat(log.Path())
	require.NoError(t, err)

	return info.Size()
}

func Test_MostRecent_Ranks_By_Newest_Occurrence(t *testing.T) {
	t.Parallel()

	c, _ := openCache(t, 1<<20)

	require.NoError(t, c.Touch("a", "b", "a", "c"))

	got, err := c.MostRecent(3)
	require.NoError(t, err)

	if diff := cmp.Diff([]string{"c", "a", "b"}, got); diff != "" {
		t.Fatalf("MostRecent mismatch (-want +got):\n%s", diff)
	}
}

func Test_MostRecent_Stops_At_K_Distinct(t *testing.T) {
	t.Parallel()

	c, _ := openCache(t, 1<<20)

	require.NoError(t, c.Touch("a", "b", "c", "d"))

	got, err := c.MostRecent(2)
	require.NoError(t, err)
	require.Equal(t, []string{"d", "c"}, got)
}

func Test_MostRecent_On_Empty_Cache_Is_Empty(t *testing.T) {
	t.Parallel()

	c, _ := openCache(t, 1<<20)

	got, err := c.MostRecent(10)
	require.NoError(t, err)
	require.Empty(t, got)
}

func Test_MostRecent_Skips_Records_That_Are_Not_Text(t *testing.T) {
	t.Parallel()

	c, log := openCache(t, 1<<20)

	require.NoError(t, log.Append([]byte("old")))
	require.NoError(t, log.Append([]byte{0xFF, 0xFE, 0x01}))
	require.NoError(t, log.Append([]byte("new")))
	require.NoError(t, log.Sync())

	// The bad record is consumed by the walk but does not count toward k,
	// and it never aborts the query.
	got, err := c.MostRecent(2)
	require.NoError(t, err)
	require.Equal(t, []string{"new", "old"}, got)
}

func Test_Query_Leaving_Exactly_Threshold_Stale_Bytes_Does_Not_Compact(t *testing.T) {
	t.Parallel()

	// Four 3-byte "x" records below one 4-byte "zz" record. A walk bounded
	// to one entry stops on "zz" with its front on the last "x" trailer:
	// 4*3 - 2 = 10 stale bytes.
	c, log := openCache(t, 10)

	require.NoError(t, c.Touch("x", "x", "x", "x", "zz"))
	sizeBefore := fileSize(t, log)

	got, err := c.MostRecent(1)
	require.NoError(t, err)
	require.Equal(t, []string{"zz"}, got)

	require.Equal(t, sizeBefore, fileSize(t, log), "stale == threshold must not rewrite")
}

func Test_Query_Leaving_One_Byte_Over_Threshold_Compacts(t *testing.T) {
	t.Parallel()

	// Same layout as above: 10 stale bytes against a threshold of 9.
	c, log := openCache(t, 9)

	require.NoError(t, c.Touch("x", "x", "x", "x", "zz"))

	got, err := c.MostRecent(1)
	require.NoError(t, err)
	require.Equal(t, []string{"zz"}, got)

	// Only the retained record survives: payload "zz" plus its trailer.
	require.Equal(t, int64(4), fileSize(t, log))

	again, err := c.MostRecent(1)
	require.NoError(t, err)
	require.Equal(t, []string{"zz"}, again)
}

func Test_Compaction_Preserves_Chronological_Order(t *testing.T) {
	t.Parallel()

	c, log := openCache(t, 0)

	require.NoError(t, c.Touch("a", "b", "a", "c"))

	got, err := c.MostRecent(3)
	require.NoError(t, err)
	require.Equal(t, []string{"c", "a", "b"}, got)

	// The rewritten file holds the retained window oldest first.
	data, err := os.ReadFile(log.Path())
	require.NoError(t, err)
	require.Equal(t, []byte("b\x01\x00a\x01\x00c\x01\x00"), data)
}

func Test_Compacting_Twice_Without_Appends_Is_Idempotent(t *testing.T) {
	t.Parallel()

	c, log := openCache(t, 0)

	require.NoError(t, c.Touch("a", "b", "a", "c", "b"))

	_, err := c.MostRecent(3)
	require.NoError(t, err)

	first, err := os.ReadFile(log.Path())
	require.NoError(t, err)

	_, err = c.MostRecent(3)
	require.NoError(t, err)

	second, err := os.ReadFile(log.Path())
	require.NoError(t, err)

	require.Equal(t, first, second, "second pass must leave the file byte-identical")
}

func Test_Prune_Keeps_The_N_Most_Recent_Distinct(t *testing.T) {
	t.Parallel()

	// Generous threshold: only Prune itself may rewrite.
	c, log := openCache(t, 1<<20)

	require.NoError(t, c.Touch("a", "b", "c", "b", "d"))
	require.NoError(t, c.Prune(2))

	data, err := os.ReadFile(log.Path())
	require.NoError(t, err)
	require.Equal(t, []byte("b\x01\x00d\x01\x00"), data)

	got, err := c.MostRecent(10)
	require.NoError(t, err)
	require.Equal(t, []string{"d", "b"}, got)
}

func Test_Prune_Zero_Empties_The_Cache(t *testing.T) {
	t.Parallel()

	c, log := openCache(t, 1<<20)

	require.NoError(t, c.Touch("a", "b"))
	require.NoError(t, c.Prune(0))

	require.Zero(t, fileSize(t, log))

	got, err := c.MostRecent(10)
	require.NoError(t, err)
	require.Empty(t, got)
}
