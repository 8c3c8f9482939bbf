package cache

// lruNode is one pooled value in the doubly-linked recency list.
// The node keeps its key so eviction can find the owning bucket.
type lruNode[K comparable, V any] struct {
	key   K
	value V
	frame uint64 // pool frame at which the value was returned
	prev  *lruNode[K, V]
	next  *lruNode[K, V]
}

// lruList orders pooled values by the time they were returned.
// The list is not thread-safe; callers must handle synchronization.
//
// The head is the most recently returned, tail is the oldest.
type lruList[K comparable, V any] struct {
	head *lruNode[K, V]
	tail *lruNode[K, V]
	len  int
}

// newLRUList creates an empty list.
func newLRUList[K comparable, V any]() *lruList[K, V] {
	return &lruList[K, V]{}
}

// Len returns the number of nodes in the list.
func (l *lruList[K, V]) Len() int {
	return l.len
}

// PushFront inserts a node at the front (most recently returned).
func (l *lruList[K, V]) PushFront(node *lruNode[K, V]) {
	node.prev = nil
	node.next = l.head
	if l.head != nil {
		l.head.prev = node
	}
	l.head = node
	if l.tail == nil {
		l.tail = node
	}
	l.len++
}

// Remove unlinks a node from the list.
func (l *lruList[K, V]) Remove(node *lruNode[K, V]) {
	if node == nil {
		return
	}
	l.unlink(node)
}

// Oldest returns the least recently returned node without removing it.
func (l *lruList[K, V]) Oldest() *lruNode[K, V] {
	return l.tail
}

// Clear drops all nodes.
func (l *lruList[K, V]) Clear() {
	l.head = nil
	l.tail = nil
	l.len = 0
}

func (l *lruList[K, V]) unlink(node *lruNode[K, V]) {
	if node.prev != nil {
		node.prev.next = node.next
	} else {
		l.head = node.next
	}

	if node.next != nil {
		node.next.prev = node.prev
	} else {
		l.tail = node.prev
	}

	node.prev = nil
	node.next = nil
	l.len--
}
