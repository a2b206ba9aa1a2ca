package dom

import (
	"fmt"
	"sync"

	"github.com/go-drift/webanim/pkg/errors"
)

// microtaskWarnLimit is the queue length at which a checkpoint reports a
// likely runaway microtask chain.
const microtaskWarnLimit = 10000

// TaskID identifies a queued task or microtask.
type TaskID uint64

// Task is a unit of work queued on an EventLoop.
type Task struct {
	ID  TaskID
	Run func()
}

// EventLoop runs tasks and microtasks on the goroutine that drives it.
//
// Only Submit is safe to call from other goroutines; every other method must
// be called from the driving goroutine.
type EventLoop struct {
	tasks      []Task
	microtasks []Task
	nextID     TaskID

	checkpointing bool
	hooks         map[int]func()
	hookOrder     []int
	nextHookID    int
	panics        int

	ingressMu sync.Mutex
	ingress   []Task
}

// NewEventLoop creates an empty event loop.
func NewEventLoop() *EventLoop {
	return &EventLoop{hooks: make(map[int]func())}
}

func (l *EventLoop) allocID() TaskID {
	l.nextID++
	return l.nextID
}

// QueueMicrotask appends fn to the microtask queue.
func (l *EventLoop) QueueMicrotask(fn func()) TaskID {
	id := l.allocID()
	l.microtasks = append(l.microtasks, Task{ID: id, Run: fn})
	return id
}

// QueueTask appends fn to the task queue.
func (l *EventLoop) QueueTask(fn func()) TaskID {
	id := l.allocID()
	l.tasks = append(l.tasks, Task{ID: id, Run: fn})
	return id
}

// CancelMicrotask removes a queued microtask. It reports whether the
// microtask was still queued.
func (l *EventLoop) CancelMicrotask(id TaskID) bool {
	for i, t := range l.microtasks {
		if t.ID == id {
			l.microtasks = append(l.microtasks[:i], l.microtasks[i+1:]...)
			return true
		}
	}
	return false
}

// Submit queues fn as a task from any goroutine. The task is moved onto the
// task queue the next time RunTasks is called.
func (l *EventLoop) Submit(fn func()) {
	l.ingressMu.Lock()
	l.ingress = append(l.ingress, Task{Run: fn})
	l.ingressMu.Unlock()
}

// Panics returns how many tasks and microtasks panicked.
func (l *EventLoop) Panics() int { return l.panics }

// PendingMicrotasks returns the number of queued microtasks.
func (l *EventLoop) PendingMicrotasks() int { return len(l.microtasks) }

// PendingTasks returns the number of queued tasks.
func (l *EventLoop) PendingTasks() int {
	l.ingressMu.Lock()
	defer l.ingressMu.Unlock()
	return len(l.tasks) + len(l.ingress)
}

// OnCheckpoint registers fn to run at the end of every microtask checkpoint.
// Returns an unsubscribe function.
func (l *EventLoop) OnCheckpoint(fn func()) func() {
	id := l.nextHookID
	l.nextHookID++
	l.hooks[id] = fn
	l.hookOrder = append(l.hookOrder, id)
	return func() {
		delete(l.hooks, id)
	}
}

// PerformMicrotaskCheckpoint drains the microtask queue, including
// microtasks queued by the microtasks it runs. Re-entrant calls return
// immediately.
func (l *EventLoop) PerformMicrotaskCheckpoint() {
	if l.checkpointing {
		return
	}
	l.checkpointing = true
	defer func() { l.checkpointing = false }()

	if n := len(l.microtasks); n > microtaskWarnLimit {
		errors.Report(&errors.Error{
			Op:   "dom.EventLoop.checkpoint",
			Kind: errors.KindQueueOverflow,
			Err:  fmt.Errorf("microtask queue holds %d items", n),
		})
	}

	for len(l.microtasks) > 0 {
		t := l.microtasks[0]
		l.microtasks[0] = Task{}
		l.microtasks = l.microtasks[1:]
		l.safeExecute("dom.EventLoop.microtask", t)
	}

	for _, id := range l.hookOrder {
		if fn, ok := l.hooks[id]; ok {
			fn()
		}
	}
	l.compactHooks()
}

func (l *EventLoop) compactHooks() {
	if len(l.hookOrder) == len(l.hooks) {
		return
	}
	kept := l.hookOrder[:0]
	for _, id := range l.hookOrder {
		if _, ok := l.hooks[id]; ok {
			kept = append(kept, id)
		}
	}
	l.hookOrder = kept
}

// RunTasks runs every task queued before the call, each followed by a
// microtask checkpoint. Tasks queued while running wait for the next call.
// Returns the number of tasks run.
func (l *EventLoop) RunTasks() int {
	l.ingressMu.Lock()
	l.tasks = append(l.tasks, l.ingress...)
	l.ingress = nil
	l.ingressMu.Unlock()

	batch := l.tasks
	l.tasks = nil
	for _, t := range batch {
		l.safeExecute("dom.EventLoop.task", t)
		l.PerformMicrotaskCheckpoint()
	}
	return len(batch)
}

// Drain runs tasks and microtasks until both queues are empty or maxRounds
// task batches have run. It reports whether the loop went idle.
func (l *EventLoop) Drain(maxRounds int) bool {
	l.PerformMicrotaskCheckpoint()
	for range maxRounds {
		if l.PendingTasks() == 0 && len(l.microtasks) == 0 {
			return true
		}
		l.RunTasks()
	}
	return l.PendingTasks() == 0 && len(l.microtasks) == 0
}

// safeExecute runs a task with panic recovery so one failing task does not
// stop the loop.
func (l *EventLoop) safeExecute(op string, t Task) {
	if t.Run == nil {
		return
	}
	defer errors.RecoverWithCallback(op, func(any) { l.panics++ })
	t.Run()
}
