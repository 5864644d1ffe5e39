// Package ring provides index-addressed circular doubly linked lists.
//
// The lists are "intrusive" in spirit: link fields live in flat arrays
// parallel to a caller-owned record arena, so records move between lists
// without allocation and without self-referential pointers. The package
// backs both the hash-bucket chains and the LRU list of the object cache.
package ring
