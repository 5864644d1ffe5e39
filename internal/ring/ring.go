package ring

// Lists is a set of circular doubly linked lists threaded through a fixed
// arena of records. Records are addressed by stable indices 0..records-1;
// every list is anchored by a sentinel node allocated past the record range.
// A record can be a member of at most one list per Lists instance, so a
// record that needs membership in several lists (hash bucket and LRU, for
// example) carries one Lists instance per membership.
//
// All operations are O(1) except construction. Lists performs no locking;
// callers serialize access.
type Lists struct {
	next []int32
	prev []int32
	base int32 // id of the first sentinel == number of records
}

// New creates lists threaded through records record slots with sentinels
// anchor nodes. Every node starts detached (self-linked).
func New(records, sentinels int) *Lists {
	n := records + sentinels
	l := &Lists{
		next: make([]int32, n),
		prev: make([]int32, n),
		base: int32(records),
	}
	for i := int32(0); i < int32(n); i++ {
		l.next[i] = i
		l.prev[i] = i
	}
	return l
}

// Sentinel returns the node id of the i-th sentinel.
func (l *Lists) Sentinel(i int) int32 {
	return l.base + int32(i)
}

// Next returns the successor of node id within its list.
func (l *Lists) Next(id int32) int32 {
	return l.next[id]
}

// Prev returns the predecessor of node id within its list.
func (l *Lists) Prev(id int32) int32 {
	return l.prev[id]
}

// Empty reports whether the list anchored at sentinel s has no records.
func (l *Lists) Empty(s int32) bool {
	return l.next[s] == s
}

// PushFront inserts record id right after sentinel s.
func (l *Lists) PushFront(s, id int32) {
	l.next[id] = l.next[s]
	l.prev[id] = s
	l.prev[l.next[s]] = id
	l.next[s] = id
}

// PushBack inserts record id right before sentinel s.
func (l *Lists) PushBack(s, id int32) {
	l.prev[id] = l.prev[s]
	l.next[id] = s
	l.next[l.prev[s]] = id
	l.prev[s] = id
}

// Remove detaches record id from its list and leaves it self-linked.
func (l *Lists) Remove(id int32) {
	l.next[l.prev[id]] = l.next[id]
	l.prev[l.next[id]] = l.prev[id]
	l.next[id] = id
	l.prev[id] = id
}

// Front returns the record right after sentinel s, or -1 if the list is
// empty.
func (l *Lists) Front(s int32) int32 {
	if l.next[s] == s {
		return -1
	}
	return l.next[s]
}

// Back returns the record right before sentinel s, or -1 if the list is
// empty.
func (l *Lists) Back(s int32) int32 {
	if l.prev[s] == s {
		return -1
	}
	return l.prev[s]
}
