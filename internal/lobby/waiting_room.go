package lobby

import "sync"

const capacity = 2

// WaitingRoom pairs connections two at a time.
type WaitingRoom[T comparable] struct {
	mu      sync.Mutex
	waiting []T
}

func NewWaitingRoom[T comparable]() *WaitingRoom[T] {
	return &WaitingRoom[T]{}
}

// Join seats conn. The 1-based seat is returned; once the room is full the pair comes back
// in arrival order and the room is emptied for the next two.
func (that *WaitingRoom[T]) Join(conn T) (int, []T, bool) {
	seat, pair, full, _ := that.JoinFunc(conn, nil)

	return seat, pair, full
}

// JoinFunc is Join with onSeat run while the room is locked, before the seat is taken.
// When onSeat fails conn is not seated and the error is returned.
func (that *WaitingRoom[T]) JoinFunc(conn T, onSeat func(seat int) error) (int, []T, bool, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	seat := len(that.waiting) + 1

	if onSeat != nil {
		if err := onSeat(seat); err != nil {
			return 0, nil, false, err
		}
	}

	that.waiting = append(that.waiting, conn)

	if seat < capacity {
		return seat, nil, false, nil
	}

	pair := that.waiting
	that.waiting = nil

	return seat, pair, true, nil
}

// Leave removes a connection that is still waiting.
func (that *WaitingRoom[T]) Leave(conn T) bool {
	that.mu.Lock()
	defer that.mu.Unlock()

	for i, waiting := range that.waiting {
		if waiting == conn {
			that.waiting = append(that.waiting[:i], that.waiting[i+1:]...)
			return true
		}
	}

	return false
}

func (that *WaitingRoom[T]) Waiting() int {
	that.mu.Lock()
	defer that.mu.Unlock()

	return len(that.waiting)
}
