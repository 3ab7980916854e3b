package channel_utils

import (
	"sync"

	"github.com/lissani/devfest-vivid-stroy/application/ports/outbound"
)

// MergeChannels fans the input channels into one output channel, one pool
// task per input. Submission is all-or-nothing: fan-in tasks hold at a gate
// until every task is placed, so a rejected submission returns with the
// inputs untouched and the caller can drain them directly.
func MergeChannels[T any](workerPool outbound.TaskDispatcher, channels ...<-chan T) (<-chan T, error) {
	var wg sync.WaitGroup
	merged := make(chan T)
	release := make(chan struct{})
	abort := make(chan struct{})

	output := func(c <-chan T) {
		defer wg.Done()
		select {
		case <-abort:
			return
		case <-release:
		}
		for val := range c {
			merged <- val
		}
	}

	for _, c := range channels {
		ch := c
		wg.Add(1)
		err := workerPool.Submit(func() {
			output(ch)
		})
		if err != nil {
			wg.Done()
			close(abort)
			return nil, err
		}
	}

	err := workerPool.Submit(func() {
		wg.Wait()
		close(merged)
	})
	if err != nil {
		close(abort)
		return nil, err
	}

	close(release)
	return merged, nil
}
