package ecs

// UpdateFrame is passed to every system once per frame.
type UpdateFrame struct {
	DeltaTime float64
	Index     uint64
	Commands  *Commands
	Manager   *EntityManager
}

func newUpdateFrame(dt float64, index uint64, m *EntityManager) *UpdateFrame {
	return &UpdateFrame{
		DeltaTime: dt,
		Index:     index,
		Commands:  newCommands(),
		Manager:   m,
	}
}
