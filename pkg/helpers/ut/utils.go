package ut

import "sync/atomic"

// CreateUint64IDGenerator returns a goroutine safe generator of IDs starting from 1.
// Every generator has its own counter.
func CreateUint64IDGenerator() func() uint64 {
	var counter atomic.Uint64
	return func() uint64 {
		return counter.Add(1)
	}
}
