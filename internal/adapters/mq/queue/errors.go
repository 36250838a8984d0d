package queue

import "errors"

var (
	// ErrQueueClosed indicates an operation on a closed queue.
	ErrQueueClosed = errors.New("queue closed")
)
