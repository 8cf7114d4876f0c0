/*
DESCRIPTION
  priorityqueue.go implements a bounded, timestamp-ordered queue bridging an
  external base-codec production thread and the core decode thread: the
  base decoder may produce pictures slightly out of order (B-frame
  reordering, threaded decode), but lcevcdec.Decoder must consume base
  pictures in presentation order paired one-to-one with enhancement
  pictures. Push blocks when the queue is full and Pop blocks when it is
  empty, exactly the producer/consumer handoff a demuxer and its decode
  goroutine need.

AUTHORS
  Saxon Nelson-Milton <saxon@ausocean.org>, The Australian Ocean Laboratory (AusOcean)

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package priorityqueue provides a bounded, timestamp-ordered handoff queue
// between a base-codec production thread and the enhancement decode thread.
package priorityqueue

import (
	"container/heap"
	"sync"

	"github.com/Jamaika1/LTM-master-sub001/codec/lcevc/lcevcdec"
)

// Item is one base picture awaiting consumption, ordered by Timestamp.
type Item struct {
	Timestamp int64
	Picture   lcevcdec.Image
}

type itemHeap []Item

func (h itemHeap) Len() int            { return len(h) }
func (h itemHeap) Less(i, j int) bool  { return h[i].Timestamp < h[j].Timestamp }
func (h itemHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *itemHeap) Push(x interface{}) { *h = append(*h, x.(Item)) }
func (h *itemHeap) Pop() interface{} {
	old := *h
	n := len(old)
	it := old[n-1]
	*h = old[:n-1]
	return it
}

// Queue is a bounded min-heap of Items, keyed by Timestamp, safe for one
// producer and one consumer (or many of either) calling concurrently.
type Queue struct {
	mu       sync.Mutex
	notEmpty *sync.Cond
	notFull  *sync.Cond
	items    itemHeap
	capacity int
	closed   bool
}

// New returns a Queue that holds at most capacity items before Push blocks.
func New(capacity int) *Queue {
	q := &Queue{capacity: capacity}
	q.notEmpty = sync.NewCond(&q.mu)
	q.notFull = sync.NewCond(&q.mu)
	return q
}

// Push inserts it, blocking while the queue is at capacity. It returns false
// without inserting if the queue has been closed.
func (q *Queue) Push(it Item) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	for len(q.items) >= q.capacity && !q.closed {
		q.notFull.Wait()
	}
	if q.closed {
		return false
	}
	heap.Push(&q.items, it)
	q.notEmpty.Signal()
	return true
}

// Pop removes and returns the lowest-timestamp Item, blocking while the
// queue is empty. It returns ok=false once the queue is closed and drained.
func (q *Queue) Pop() (it Item, ok bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for len(q.items) == 0 && !q.closed {
		q.notEmpty.Wait()
	}
	if len(q.items) == 0 {
		return Item{}, false
	}
	it = heap.Pop(&q.items).(Item)
	q.notFull.Signal()
	return it, true
}

// Close marks the queue closed, waking any blocked Push or Pop so they can
// observe it. Already-queued items remain poppable until drained.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.closed = true
	q.notEmpty.Broadcast()
	q.notFull.Broadcast()
}

// Len returns the current number of queued items.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
