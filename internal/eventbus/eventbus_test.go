package eventbus

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seek/internal/domain"
)

func TestPublishNeverBlocks(t *testing.T) {
	b := New()

	// Far more events than any channel buffer, with no consumer running.
	const count = 10000
	for i := range count {
		b.Publish(domain.EntryMatchedEvent{Path: pathFor(i)})
	}

	var got []domain.SearchEvent
	done := make(chan struct{})
	go func() {
		for ev := range b.Events() {
			got = append(got, ev)
		}
		close(done)
	}()

	b.Close()
	<-done

	require.Len(t, got, count)
	// Single-producer FIFO: delivery preserves publish order.
	for i, ev := range got {
		matched, ok := ev.(domain.EntryMatchedEvent)
		require.True(t, ok)
		assert.Equal(t, pathFor(i), matched.Path)
	}
}

func TestPerProducerOrdering(t *testing.T) {
	b := New()

	const perProducer = 500
	var wg sync.WaitGroup
	for _, prefix := range []string{"a", "b", "c"} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range perProducer {
				b.Publish(domain.DirectoryEnteredEvent{Path: prefix + "/" + pathFor(i)})
			}
		}()
	}

	var got []string
	done := make(chan struct{})
	go func() {
		for ev := range b.Events() {
			got = append(got, ev.(domain.DirectoryEnteredEvent).Path)
		}
		close(done)
	}()

	wg.Wait()
	b.Close()
	<-done

	require.Len(t, got, 3*perProducer)

	// Events from each producer arrive in that producer's order.
	seen := map[string]int{}
	for _, path := range got {
		prefix := path[:1]
		idx := path[2:]
		assert.Equal(t, pathFor(seen[prefix]), idx, "out of order for producer %s", prefix)
		seen[prefix]++
	}
}

func TestPublishAfterCloseIsDropped(t *testing.T) {
	b := New()
	b.Publish(domain.DirectoryEnteredEvent{Path: "kept"})
	b.Close()

	// Must not panic and must not appear on the channel.
	b.Publish(domain.DirectoryEnteredEvent{Path: "dropped"})

	var got []domain.SearchEvent
	for ev := range b.Events() {
		got = append(got, ev)
	}
	require.Len(t, got, 1)
	assert.Equal(t, "kept", got[0].(domain.DirectoryEnteredEvent).Path)
}

func TestCloseTwice(t *testing.T) {
	b := New()
	b.Close()
	b.Close()
}

// pathFor builds a fixed-width index so ordering checks are string-safe
func pathFor(i int) string {
	const digits = "0123456789"
	return string([]byte{
		digits[i/10000%10],
		digits[i/1000%10],
		digits[i/100%10],
		digits[i/10%10],
		digits[i%10],
	})
}
