package controllers

import (
	"time"

	"github.com/teja123git/Maze-Generator/pkg/engine"
	"github.com/teja123git/Maze-Generator/pkg/engine/session"
)

type GenerationService interface {
	Open(connID string, observer session.Observer)
	Close(connID string)
	Start(connID string, req session.StartRequest) (session.RunInfo, error)
	SetPaused(connID string, paused bool) error
	SetSpeed(connID string, delay time.Duration) error
	Algorithms() []string
	Generate(algorithm string, width, height int, seed *uint64) (*engine.Maze, error)
}
