package ecs_test

import (
	"fmt"

	"github.com/plus3/packecs/ecs"
)

type decaySystem struct {
	Living ecs.Query[struct {
		ecs.Entity
		*Health
	}]
}

func (s *decaySystem) Execute(frame *ecs.UpdateFrame) {
	for item := range s.Living.Iter() {
		item.Current -= 40
		if item.Current <= 0 {
			frame.Commands.Destroy(item.Entity)
		}
	}
}

// ExampleScheduler registers a system whose Query field is initialized by the
// scheduler. Destroys queued on the frame's Commands apply after all systems ran.
func ExampleScheduler() {
	m := ecs.NewEntityManager()
	ecs.RegisterComponent[Health](m.Registry())

	for _, hp := range []int{50, 100} {
		e := m.CreateEntity()
		ecs.Insert(m, e, Health{Current: hp, Max: hp})
	}

	scheduler := ecs.NewScheduler(m)
	decay := &decaySystem{}
	scheduler.Register(decay)
	defer scheduler.Close()

	for frame := 1; frame <= 3; frame++ {
		scheduler.Once(1.0 / 60)
		fmt.Printf("frame %d: %d alive\n", frame, decay.Living.Len())
	}

	// Output:
	// frame 1: 2 alive
	// frame 2: 1 alive
	// frame 3: 0 alive
}
