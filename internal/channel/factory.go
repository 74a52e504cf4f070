//go:build !debug

package channel

// New creates a channel buffering up to size values.
func New[T any](size int) Channel[T] {
	return newQueue[T](size)
}
