package usecases

import (
	"github.com/teja123git/Maze-Generator/pkg/engine"
	"github.com/teja123git/Maze-Generator/pkg/engine/session"
)

type MazeEngine interface {
	Config() engine.Config
	Algorithms() []string
	NewSession(observer session.Observer) *session.Engine
	Generate(algorithm string, width, height int, seed uint64) (*engine.Maze, error)
}
