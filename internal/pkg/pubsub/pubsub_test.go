package pubsub

import (
	"sync"
	"testing"
)

func TestPublishReachesAllSubscribers(t *testing.T) {
	topic := NewTopic[int]()

	var got1, got2 []int
	sub1 := topic.Subscribe(func(v int) { got1 = append(got1, v) })
	sub2 := topic.Subscribe(func(v int) { got2 = append(got2, v) })
	defer sub1.Cancel()
	defer sub2.Cancel()

	topic.Publish(1)
	topic.Publish(2)

	for _, got := range [][]int{got1, got2} {
		if len(got) != 2 || got[0] != 1 || got[1] != 2 {
			t.Errorf("received = %v, want [1 2]", got)
		}
	}
}

func TestPublishWithoutSubscribers(t *testing.T) {
	topic := NewTopic[string]()
	topic.Publish("dropped")
}

func TestCancelStopsDelivery(t *testing.T) {
	topic := NewTopic[int]()

	count := 0
	sub := topic.Subscribe(func(int) { count++ })

	topic.Publish(1)
	sub.Cancel()
	topic.Publish(2)

	if count != 1 {
		t.Errorf("deliveries = %d, want 1", count)
	}
}

func TestCancelIsIdempotent(t *testing.T) {
	topic := NewTopic[int]()
	sub := topic.Subscribe(func(int) {})

	sub.Cancel()
	sub.Cancel()

	topic.Publish(1)
}

func TestCancelOneKeepsOthers(t *testing.T) {
	topic := NewTopic[int]()

	count := 0
	sub1 := topic.Subscribe(func(int) {})
	sub2 := topic.Subscribe(func(int) { count++ })
	defer sub2.Cancel()

	sub1.Cancel()
	topic.Publish(1)

	if count != 1 {
		t.Errorf("deliveries to the surviving subscriber = %d, want 1", count)
	}
}

func TestHandlerMaySubscribeDuringPublish(t *testing.T) {
	topic := NewTopic[int]()

	var nested *Subscription
	sub := topic.Subscribe(func(int) {
		if nested == nil {
			nested = topic.Subscribe(func(int) {})
		}
	})
	defer sub.Cancel()

	topic.Publish(1)

	if nested == nil {
		t.Fatal("nested subscribe did not run")
	}
	nested.Cancel()
}

func TestConcurrentPublishAndSubscribe(t *testing.T) {
	topic := NewTopic[int]()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			sub := topic.Subscribe(func(int) {})
			sub.Cancel()
		}()
		go func() {
			defer wg.Done()
			topic.Publish(1)
		}()
	}
	wg.Wait()
}
