package state

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"complaint-intake-backend/internal/model"
)

var dbSeq atomic.Int64

func newGormTestStore(t *testing.T) (Store, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:state%d?mode=memory&cache=shared", dbSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.ConversationState{}))
	return NewGormStore(db), db
}

func newRedisTestStore(t *testing.T) (Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisStore(client, "dialog:", 0), mr
}

// runStoreContract exercises the behavior both backends must share.
func runStoreContract(t *testing.T, s Store) {
	ctx := context.Background()

	t.Run("get before upsert returns nil", func(t *testing.T) {
		sess, err := s.Get(ctx, "user-1")
		require.NoError(t, err)
		assert.Nil(t, sess)
	})

	t.Run("upsert then get returns exactly what was written", func(t *testing.T) {
		payload := Payload{CandidateIDs: []int64{2, 3}}
		require.NoError(t, s.Upsert(ctx, "user-1", StepAwaitingExactName, payload))

		sess, err := s.Get(ctx, "user-1")
		require.NoError(t, err)
		require.NotNil(t, sess)
		assert.Equal(t, StepAwaitingExactName, sess.Step)
		assert.Equal(t, payload, sess.Payload)
	})

	t.Run("upsert replaces step and payload wholesale", func(t *testing.T) {
		require.NoError(t, s.Upsert(ctx, "user-1", StepAwaitingExactName, Payload{CandidateIDs: []int64{2, 3}}))
		require.NoError(t, s.Upsert(ctx, "user-1", StepAwaitingDescription, Payload{
			MachineID:   2,
			MachineName: "Lathe A",
			Location:    "Workshop B",
		}))

		sess, err := s.Get(ctx, "user-1")
		require.NoError(t, err)
		require.NotNil(t, sess)
		assert.Equal(t, StepAwaitingDescription, sess.Step)
		assert.Empty(t, sess.Payload.CandidateIDs, "stale fields must not survive an upsert")
		assert.Equal(t, "Lathe A", sess.Payload.MachineName)
	})

	t.Run("clear removes the session and is a no-op when absent", func(t *testing.T) {
		require.NoError(t, s.Upsert(ctx, "user-2", StepAwaitingType, Payload{MachineID: 1}))
		require.NoError(t, s.Clear(ctx, "user-2"))

		sess, err := s.Get(ctx, "user-2")
		require.NoError(t, err)
		assert.Nil(t, sess)

		require.NoError(t, s.Clear(ctx, "user-2"))
	})
}

func TestGormStore(t *testing.T) {
	s, _ := newGormTestStore(t)
	runStoreContract(t, s)
}

func TestRedisStore(t *testing.T) {
	s, _ := newRedisTestStore(t)
	runStoreContract(t, s)
}

func TestGormStore_CorruptPayloadDecodesToZeroValue(t *testing.T) {
	s, db := newGormTestStore(t)
	ctx := context.Background()

	row := model.ConversationState{
		UserID:        "user-3",
		CurrentStep:   string(StepAwaitingType),
		CollectedData: "{not json",
	}
	require.NoError(t, db.Create(&row).Error)

	sess, err := s.Get(ctx, "user-3")
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.Equal(t, StepAwaitingType, sess.Step, "step survives a corrupt payload")
	assert.Equal(t, Payload{}, sess.Payload)
}

func TestRedisStore_CorruptPayloadDecodesToZeroValue(t *testing.T) {
	s, mr := newRedisTestStore(t)
	ctx := context.Background()

	mr.HSet("dialog:user-3", "step", string(StepAwaitingType), "payload", "{not json")

	sess, err := s.Get(ctx, "user-3")
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.Equal(t, StepAwaitingType, sess.Step)
	assert.Equal(t, Payload{}, sess.Payload)
}
