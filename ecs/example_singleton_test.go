package ecs_test

import (
	"fmt"

	"github.com/plus3/packecs/ecs"
)

type GameConfig struct {
	MaxPlayers int
	Difficulty string
}

// ExampleNewSingleton demonstrates creating and accessing singleton values.
// Singletons are owned by the manager rather than by any entity, which suits
// per-frame global state such as camera or lighting data.
func ExampleNewSingleton() {
	m := ecs.NewEntityManager()

	config := ecs.NewSingleton[GameConfig](m, GameConfig{
		MaxPlayers: 4,
		Difficulty: "Normal",
	})
	fmt.Printf("Config: %d players, %s difficulty\n", config.Get().MaxPlayers, config.Get().Difficulty)

	config.Get().Difficulty = "Hard"

	sameConfig := ecs.NewSingleton[GameConfig](m)
	fmt.Printf("Same config: %s difficulty\n", sameConfig.Get().Difficulty)

	// Output:
	// Config: 4 players, Normal difficulty
	// Same config: Hard difficulty
}

// ExampleSingleton_Exists shows a singleton field that is bound before its value
// is added.
func ExampleSingleton_Exists() {
	m := ecs.NewEntityManager()

	var config ecs.Singleton[GameConfig]
	config.Init(m)
	fmt.Println("exists:", config.Exists())

	m.AddSingleton(GameConfig{MaxPlayers: 2})
	fmt.Println("exists:", config.Exists(), "players:", config.Get().MaxPlayers)

	m.AddSingleton(GameConfig{MaxPlayers: 8})
	fmt.Println("players after replace:", config.Get().MaxPlayers)

	// Output:
	// exists: false
	// exists: true players: 2
	// players after replace: 8
}
