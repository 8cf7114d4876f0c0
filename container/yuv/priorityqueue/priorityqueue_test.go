/*
DESCRIPTION
  priorityqueue_test.go tests Queue's timestamp ordering and blocking
  behaviour.

AUTHORS
  Saxon Nelson-Milton <saxon@ausocean.org>, The Australian Ocean Laboratory (AusOcean)

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package priorityqueue

import (
	"testing"
	"time"
)

func TestQueueOrdersByTimestamp(t *testing.T) {
	q := New(8)
	for _, ts := range []int64{5, 1, 3, 2, 4} {
		if !q.Push(Item{Timestamp: ts}) {
			t.Fatalf("Push(%d) failed", ts)
		}
	}

	var got []int64
	for i := 0; i < 5; i++ {
		it, ok := q.Pop()
		if !ok {
			t.Fatalf("Pop %d: not ok", i)
		}
		got = append(got, it.Timestamp)
	}

	want := []int64{1, 2, 3, 4, 5}
	for i, ts := range want {
		if got[i] != ts {
			t.Errorf("pop order[%d]: got %d, want %d", i, got[i], ts)
		}
	}
}

func TestQueuePopBlocksUntilPush(t *testing.T) {
	q := New(4)
	done := make(chan Item)
	go func() {
		it, ok := q.Pop()
		if !ok {
			t.Error("Pop: not ok")
		}
		done <- it
	}()

	time.Sleep(10 * time.Millisecond)
	q.Push(Item{Timestamp: 42})

	select {
	case it := <-done:
		if it.Timestamp != 42 {
			t.Errorf("got timestamp %d, want 42", it.Timestamp)
		}
	case <-time.After(time.Second):
		t.Fatal("Pop did not return after Push")
	}
}

func TestQueueCloseUnblocksPop(t *testing.T) {
	q := New(4)
	done := make(chan bool)
	go func() {
		_, ok := q.Pop()
		done <- ok
	}()

	time.Sleep(10 * time.Millisecond)
	q.Close()

	select {
	case ok := <-done:
		if ok {
			t.Error("Pop on a closed empty queue returned ok=true")
		}
	case <-time.After(time.Second):
		t.Fatal("Pop did not unblock after Close")
	}
}

func TestQueueLen(t *testing.T) {
	q := New(4)
	q.Push(Item{Timestamp: 1})
	q.Push(Item{Timestamp: 2})
	if n := q.Len(); n != 2 {
		t.Errorf("got Len %d, want 2", n)
	}
}
