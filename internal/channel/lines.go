package channel

import (
	"bufio"
	"context"
	"io"
)

// Lines reads r line by line in its own goroutine. The returned channel is
// closed at EOF, on a read error, or when ctx ends. wait blocks until the
// reader has stopped and returns the scanner error, if any.
func Lines(ctx context.Context, r io.Reader, size int) (lines Receiver[string], wait func() error) {
	ch := New[string](size)
	done := make(chan struct{})
	var err error

	go func() {
		defer close(done)
		defer ch.Close()

		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			if !ch.Send(ctx, scanner.Text()) {
				return
			}
		}
		err = scanner.Err()
	}()

	return ch, func() error {
		<-done
		return err
	}
}
