package ring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(l *Lists, s int32) []int32 {
	var out []int32
	for id := l.Next(s); id != s; id = l.Next(id) {
		out = append(out, id)
	}
	return out
}

func TestLists_PushFrontOrder(t *testing.T) {
	l := New(4, 1)
	s := l.Sentinel(0)

	require.True(t, l.Empty(s))
	assert.Equal(t, int32(-1), l.Front(s))
	assert.Equal(t, int32(-1), l.Back(s))

	l.PushFront(s, 0)
	l.PushFront(s, 1)
	l.PushFront(s, 2)

	assert.Equal(t, []int32{2, 1, 0}, collect(l, s))
	assert.Equal(t, int32(2), l.Front(s))
	assert.Equal(t, int32(0), l.Back(s))
}

func TestLists_PushBackOrder(t *testing.T) {
	l := New(4, 1)
	s := l.Sentinel(0)

	l.PushBack(s, 0)
	l.PushBack(s, 1)
	l.PushBack(s, 2)

	assert.Equal(t, []int32{0, 1, 2}, collect(l, s))
	assert.Equal(t, int32(2), l.Back(s))
}

func TestLists_Remove(t *testing.T) {
	l := New(4, 1)
	s := l.Sentinel(0)

	for i := int32(0); i < 4; i++ {
		l.PushBack(s, i)
	}

	l.Remove(1) // middle
	assert.Equal(t, []int32{0, 2, 3}, collect(l, s))

	l.Remove(0) // front
	l.Remove(3) // back
	assert.Equal(t, []int32{2}, collect(l, s))

	l.Remove(2)
	assert.True(t, l.Empty(s))

	// Detached records are self-linked and reusable.
	l.PushFront(s, 1)
	assert.Equal(t, []int32{1}, collect(l, s))
}

func TestLists_MultipleSentinels(t *testing.T) {
	l := New(6, 3)

	l.PushBack(l.Sentinel(0), 0)
	l.PushBack(l.Sentinel(1), 1)
	l.PushBack(l.Sentinel(1), 2)
	l.PushBack(l.Sentinel(2), 3)

	assert.Equal(t, []int32{0}, collect(l, l.Sentinel(0)))
	assert.Equal(t, []int32{1, 2}, collect(l, l.Sentinel(1)))
	assert.Equal(t, []int32{3}, collect(l, l.Sentinel(2)))
	assert.True(t, l.Empty(l.Sentinel(1)) == false)

	// Moving a record between lists.
	l.Remove(2)
	l.PushFront(l.Sentinel(2), 2)
	assert.Equal(t, []int32{1}, collect(l, l.Sentinel(1)))
	assert.Equal(t, []int32{2, 3}, collect(l, l.Sentinel(2)))
}

func TestLists_IndependentInstances(t *testing.T) {
	// One record arena threaded through two independent list sets, the way
	// the cache threads objects through hash buckets and the LRU.
	hash := New(4, 2)
	lru := New(4, 1)

	hash.PushFront(hash.Sentinel(1), 0)
	lru.PushBack(lru.Sentinel(0), 0)

	assert.Equal(t, []int32{0}, collect(hash, hash.Sentinel(1)))
	assert.Equal(t, []int32{0}, collect(lru, lru.Sentinel(0)))

	lru.Remove(0)
	assert.Equal(t, []int32{0}, collect(hash, hash.Sentinel(1)), "hash membership survives LRU removal")
	assert.True(t, lru.Empty(lru.Sentinel(0)))
}
