// Package dom provides the host primitives an animation needs from its
// document: a single-threaded event loop with task and microtask queues,
// events with their targets, and elements that effects animate.
//
// # Event Loop
//
// [EventLoop] owns two FIFO queues. Tasks run one at a time and each task is
// followed by a microtask checkpoint that drains the microtask queue,
// including microtasks queued while draining. Nothing here is scheduled on a
// timer: the owner drives the loop explicitly with [EventLoop.RunTasks] or
// [EventLoop.PerformMicrotaskCheckpoint], typically once per frame.
//
// A queued task is never revoked by its scheduler under normal operation.
// Callers that need to void a task set a flag the task re-checks when it runs.
// [EventLoop.CancelMicrotask] exists for the single case where a queued
// notification must be superseded by a synchronous one.
//
// Panics raised by a task are recovered and reported through
// [errors.ReportPanic]; the loop keeps draining.
package dom
