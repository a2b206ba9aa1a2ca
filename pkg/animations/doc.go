// Package animations implements the timing and lifecycle engine of a single
// web animation: its current time, its play state, the deferred commit of
// play and pause requests, and the ready and finished promises.
//
// # Timing Model
//
// An [Animation] samples a [Timeline]. Its current time is the hold time when
// one is set, otherwise (timeline time - start time) * playback rate, or
// unresolved when either input is missing. Seeking writes whichever of the
// two the current state treats as authoritative.
//
// # Play States
//
// The play state is derived, never stored:
//
//	           Play()                     reaches end
//	Idle ─────────────────► Running ──────────────────► Finished
//	  ▲                      │   ▲                          │
//	  │ Cancel()     Pause() │   │ Play()          Play()   │
//	  │                      ▼   │           (auto-rewind)  │
//	  └───────────────────── Paused ◄───────────────────────┘
//
// Play and Pause do not take effect immediately. They mark a pending task and
// queue a microtask on the [Realm]; the microtask commits the request when it
// runs, unless a later command cleared the flag in the meantime. [Animation.Pending]
// reports whether such a commit is outstanding.
//
// # Promises
//
// [Animation.Ready] settles when a pending commit completes.
// [Animation.Finished] resolves the first time the animation reaches its end.
// Both are replaced by fresh promises when the animation re-enters a state
// that needs a new outstanding promise; holders of the old promise observe
// only its own settlement.
//
// # Composite Order
//
// Animations generated by CSS carry an [Origin] describing where they came
// from. [CompareCompositeOrder] combines [Animation.Class],
// [Animation.ClassSpecificCompositeOrder] and
// [Animation.GlobalAnimationListOrder] into the total order used to stack
// simultaneous effects.
package animations
