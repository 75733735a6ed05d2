package ecs

// System represents a behavior run once per frame. Systems may declare Query and
// Singleton fields, which the Scheduler initializes on registration, as well as
// custom state that persists between frames.
type System interface {
	Execute(frame *UpdateFrame)
}
