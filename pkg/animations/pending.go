package animations

import (
	"github.com/go-drift/webanim/pkg/errors"
	"github.com/go-drift/webanim/pkg/promise"
	"github.com/go-drift/webanim/pkg/timing"
)

// schedulePendingTask marks a pending task of kind and queues the microtask
// that commits it. Only one kind is ever scheduled.
func (a *Animation) schedulePendingTask(kind taskKind) {
	switch kind {
	case playTask:
		a.pendingPlayTask = taskScheduled
		a.pendingPauseTask = taskNone
	case pauseTask:
		a.pendingPauseTask = taskScheduled
		a.pendingPlayTask = taskNone
	}
	a.queuePendingTaskMicrotask(kind)
}

func (a *Animation) queuePendingTaskMicrotask(kind taskKind) {
	a.taskGeneration++
	a.awaitingTimeline = false
	generation := a.taskGeneration
	a.realm.QueueMicrotask(func() {
		a.runScheduledTask(kind, generation)
	})
}

// reschedulePendingTask re-queues an outstanding pending task so it commits
// against the current timeline and effect.
func (a *Animation) reschedulePendingTask() {
	switch {
	case a.pendingPlayTask == taskScheduled:
		a.queuePendingTaskMicrotask(playTask)
	case a.pendingPauseTask == taskScheduled:
		a.queuePendingTaskMicrotask(pauseTask)
	}
}

func (a *Animation) clearPendingTasks() {
	a.pendingPlayTask = taskNone
	a.pendingPauseTask = taskNone
	a.awaitingTimeline = false
}

func (a *Animation) hasTask(kind taskKind) bool {
	if kind == pauseTask {
		return a.pendingPauseTask == taskScheduled
	}
	return a.pendingPlayTask == taskScheduled
}

// runScheduledTask is the body of a pending-task microtask. A microtask whose
// flag was cleared, or that a later command superseded, does nothing.
func (a *Animation) runScheduledTask(kind taskKind, generation uint64) {
	if generation != a.taskGeneration || !a.hasTask(kind) {
		return
	}
	if !a.isReady() {
		a.awaitingTimeline = true
		return
	}
	a.commitPendingTask()
}

// isReady reports whether a pending task can compute its ready time.
func (a *Animation) isReady() bool {
	return a.timelineTime().IsResolved()
}

func (a *Animation) commitPendingTask() {
	switch {
	case a.pendingPlayTask == taskScheduled:
		a.runPendingPlayTask()
	case a.pendingPauseTask == taskScheduled:
		a.runPendingPauseTask()
	}
}

func (a *Animation) runPendingPlayTask() {
	a.clearPendingTasks()
	ready := a.timelineTime().Value()

	if hold, ok := a.holdTime.Get(); ok {
		a.applyPendingPlaybackRate()
		if a.playbackRate == 0 {
			a.startTime = timing.Resolved(ready)
		} else {
			a.startTime = timing.Resolved(ready - hold/a.playbackRate)
			a.holdTime = timing.Unresolved
		}
	} else if start, ok := a.startTime.Get(); ok && a.hasPendingRate {
		currentToMatch := (ready - start) * a.playbackRate
		a.applyPendingPlaybackRate()
		if a.playbackRate == 0 {
			a.holdTime = timing.Resolved(currentToMatch)
			a.startTime = timing.Resolved(ready)
		} else {
			a.startTime = timing.Resolved(ready - currentToMatch/a.playbackRate)
		}
	}

	a.resolveReady()
	a.updateFinishedState(false, false)
	a.invalidateEffect()
}

func (a *Animation) runPendingPauseTask() {
	a.clearPendingTasks()
	ready := a.timelineTime().Value()

	if start, ok := a.startTime.Get(); ok && !a.holdTime.IsResolved() {
		a.holdTime = timing.Resolved((ready - start) * a.playbackRate)
	}
	a.applyPendingPlaybackRate()
	a.startTime = timing.Unresolved

	a.resolveReady()
	a.updateFinishedState(false, false)
	a.invalidateEffect()
}

// resetPendingTasks abandons an outstanding play or pause request. The
// pending ready promise is rejected and replaced with a resolved one.
func (a *Animation) resetPendingTasks() {
	if !a.Pending() {
		return
	}
	a.clearPendingTasks()
	a.applyPendingPlaybackRate()

	ready := a.ready.current()
	ready.MarkHandled()
	ready.Reject(errors.Abort("Animation.cancel", "pending play or pause was aborted"))
	a.ready.replace(promise.NewResolved(a.realm, a))
}
