package memory

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore(t *testing.T) {
	store := NewConfigStore()
	require.NotNil(t, store)
	assert.NotNil(t, store.values)
	assert.Equal(t, ":memory:", store.Path())
	assert.NoError(t, store.Load())
}

func TestConfigStore_SetGetUnset(t *testing.T) {
	store := NewConfigStore()

	require.NoError(t, store.Set("session.validation", "local"))
	require.NoError(t, store.Set("session.validation", "remote"))

	val, ok := store.Get("session.validation")
	assert.True(t, ok)
	assert.Equal(t, "remote", val)

	require.NoError(t, store.Unset("session.validation"))
	_, ok = store.Get("session.validation")
	assert.False(t, ok)
	assert.NoError(t, store.Unset("never.set"))
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store := NewConfigStore()
	_ = store.Set("s", "text")
	_ = store.Set("i", 7)
	_ = store.Set("i64", int64(9))
	_ = store.Set("f", 2.5)

	tests := []struct {
		key       string
		wantStr   string
		wantInt   int
		wantFloat float64
	}{
		{"s", "text", 0, 0},
		{"i", "", 7, 7},
		{"i64", "", 9, 9},
		{"f", "", 2, 2.5},
		{"missing", "", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.wantStr, store.GetString(tt.key))
			assert.Equal(t, tt.wantInt, store.GetInt(tt.key))
			assert.InDelta(t, tt.wantFloat, store.GetFloat(tt.key), 0.0001)
		})
	}
}

func TestConfigStore_Keys_Sorted(t *testing.T) {
	store := NewConfigStore()
	_ = store.Set("quiz.duration", 30)
	_ = store.Set("api.timeout", 10)
	_ = store.Set("api.base_url", "u")

	assert.Equal(t, []string{"api.base_url", "api.timeout", "quiz.duration"}, store.Keys())
}

func TestConfigStore_Concurrency(t *testing.T) {
	store := NewConfigStore()
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			key := "key-" + string(rune('0'+id%10))
			_ = store.Set(key, id)
			_ = store.GetInt(key)
			_ = store.GetFloat(key)
			_ = store.Keys()
			if id%7 == 0 {
				_ = store.Unset(key)
			}
		}(i)
	}

	wg.Wait()
	assert.LessOrEqual(t, len(store.Keys()), 10)
}
