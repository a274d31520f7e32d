package directory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meetmindai/meetmind/services/orchestrator/datatypes"
)

// =============================================================================
// Test Helpers
// =============================================================================

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(InMemoryConfig())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func testRecord(id string, userID int, name string) *datatypes.StaffRecord {
	return &datatypes.StaffRecord{
		ID:         id,
		UserID:     userID,
		Name:       name,
		Department: "개발팀",
		Position:   "백엔드 개발자",
		Skills:     []string{"Go"},
	}
}

// =============================================================================
// Open Tests
// =============================================================================

func TestOpen_RequiresPath(t *testing.T) {
	_, err := Open(Config{})
	assert.Error(t, err)
}

func TestOpen_PersistentPath(t *testing.T) {
	store, err := Open(DefaultConfig(t.TempDir()))
	require.NoError(t, err)
	require.NoError(t, store.Close())
}

// =============================================================================
// CRUD Tests
// =============================================================================

func TestAddAndGet(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	record := testRecord("u1", 1, "김철수")
	require.NoError(t, store.Add(ctx, record))
	assert.NotEmpty(t, record.CreatedAt)
	assert.Equal(t, record.CreatedAt, record.UpdatedAt)

	got, err := store.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "김철수", got.Name)
	assert.Equal(t, 1, got.UserID)
	assert.Equal(t, []string{"Go"}, got.Skills)
}

func TestAdd_AssignsID(t *testing.T) {
	store := newTestStore(t)

	record := testRecord("", 1, "김철수")
	require.NoError(t, store.Add(context.Background(), record))
	assert.NotEmpty(t, record.ID)
}

func TestAdd_RejectsInvalidRecord(t *testing.T) {
	store := newTestStore(t)

	err := store.Add(context.Background(), &datatypes.StaffRecord{ID: "u1"})
	assert.Error(t, err, "a nameless record must be rejected")
}

func TestAdd_RejectsDuplicateID(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Add(ctx, testRecord("u1", 1, "김철수")))
	assert.Error(t, store.Add(ctx, testRecord("u1", 2, "이영희")))
}

func TestGet_NotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdate_PreservesCreatedAt(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	record := testRecord("u1", 1, "김철수")
	require.NoError(t, store.Add(ctx, record))
	created := record.CreatedAt

	updated := testRecord("u1", 1, "김철수")
	updated.Position = "수석 개발자"
	require.NoError(t, store.Update(ctx, updated))

	got, err := store.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "수석 개발자", got.Position)
	assert.Equal(t, created, got.CreatedAt)
}

func TestUpdate_NotFound(t *testing.T) {
	store := newTestStore(t)

	err := store.Update(context.Background(), testRecord("missing", 1, "아무개"))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDelete(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Add(ctx, testRecord("u1", 1, "김철수")))
	require.NoError(t, store.Delete(ctx, "u1"))

	_, err := store.Get(ctx, "u1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDelete_NotFound(t *testing.T) {
	store := newTestStore(t)

	err := store.Delete(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

// =============================================================================
// ListAll Tests
// =============================================================================

func TestListAll_Empty(t *testing.T) {
	store := newTestStore(t)

	records, err := store.ListAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestListAll_KeyOrder(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	// Insert out of key order; iteration must come back sorted by id.
	require.NoError(t, store.Add(ctx, testRecord("c", 3, "박민수")))
	require.NoError(t, store.Add(ctx, testRecord("a", 1, "김철수")))
	require.NoError(t, store.Add(ctx, testRecord("b", 2, "이영희")))

	records, err := store.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, "a", records[0].ID)
	assert.Equal(t, "b", records[1].ID)
	assert.Equal(t, "c", records[2].ID)
}

func TestContextCancellation(t *testing.T) {
	store := newTestStore(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Error(t, store.Add(ctx, testRecord("u1", 1, "김철수")))
	_, err := store.ListAll(ctx)
	assert.Error(t, err)
}
