package pipeline

import "sync"

// requestQueue is an ordered, unbounded FIFO of pending generation
// requests. Enqueue never blocks and never fails; tryDequeue pops the head
// or reports empty. Emptiness is a point-in-time read used by the drain
// loop to decide whether to continue; the drain-start logic in Submit makes
// the resulting race benign.
type requestQueue struct {
	mu    sync.Mutex
	items []GenerationRequest
}

func (q *requestQueue) enqueue(req GenerationRequest) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.items = append(q.items, req)
}

func (q *requestQueue) tryDequeue() (GenerationRequest, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		return GenerationRequest{}, false
	}
	head := q.items[0]
	q.items[0] = GenerationRequest{} // drop the head reference, hooks included
	q.items = q.items[1:]
	return head, true
}

func (q *requestQueue) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

func (q *requestQueue) isEmpty() bool {
	return q.len() == 0
}
