package usecases

import (
	"errors"
	"sync"
	"time"

	"github.com/teja123git/Maze-Generator/pkg/engine"
	"github.com/teja123git/Maze-Generator/pkg/engine/session"
	"github.com/teja123git/Maze-Generator/pkg/util"
	"go.uber.org/zap"
	"golang.org/x/exp/rand"
)

var (
	ErrUnknownConnection = errors.New("connection is not registered")
)

// GenerationService. one session engine per websocket connection, keyed by connection id.
type GenerationService struct {
	log    *zap.Logger
	engine MazeEngine

	mu       sync.RWMutex
	sessions map[string]*session.Engine
}

func NewGenerationService(log *zap.Logger, engine MazeEngine) *GenerationService {
	return &GenerationService{
		log:      log,
		engine:   engine,
		sessions: make(map[string]*session.Engine),
	}
}

// Open registers a connection, observer receives the events of every run started on it.
func (gs *GenerationService) Open(connID string, observer session.Observer) {
	s := gs.engine.NewSession(observer)

	gs.mu.Lock()
	prev := gs.sessions[connID]
	gs.sessions[connID] = s
	gs.mu.Unlock()

	if prev != nil {
		prev.Close()
	}
}

// Close cancels the run of a connection and forgets it. Unknown ids are ignored.
func (gs *GenerationService) Close(connID string) {
	gs.mu.Lock()
	s, ok := gs.sessions[connID]
	delete(gs.sessions, connID)
	gs.mu.Unlock()

	if ok {
		s.Close()
	}
}

func (gs *GenerationService) CloseAll() {
	gs.mu.Lock()
	sessions := gs.sessions
	gs.sessions = make(map[string]*session.Engine)
	gs.mu.Unlock()

	for _, s := range sessions {
		s.Close()
	}
}

func (gs *GenerationService) Connections() int {
	gs.mu.RLock()
	defer gs.mu.RUnlock()
	return len(gs.sessions)
}

func (gs *GenerationService) session(connID string) (*session.Engine, error) {
	gs.mu.RLock()
	defer gs.mu.RUnlock()
	s, ok := gs.sessions[connID]
	if !ok {
		return nil, util.WrapErrorf(ErrUnknownConnection, util.ErrNotFound, "connection %s", connID)
	}
	return s, nil
}

// Start fills absent fields with the configured defaults and starts a run on the connection's session.
func (gs *GenerationService) Start(connID string, req session.StartRequest) (session.RunInfo, error) {
	s, err := gs.session(connID)
	if err != nil {
		return session.RunInfo{}, err
	}
	return gs.startOn(connID, s, req)
}

func (gs *GenerationService) startOn(connID string, s *session.Engine, req session.StartRequest) (session.RunInfo, error) {
	cfg := gs.engine.Config()
	if req.Algorithm == "" {
		req.Algorithm = cfg.DefaultAlgorithm
	}
	if req.Width == 0 {
		req.Width = cfg.DefaultWidth
	}
	if req.Height == 0 {
		req.Height = cfg.DefaultHeight
	}

	info, err := s.Start(req)
	if err != nil {
		return session.RunInfo{}, err
	}

	// the connection may have been closed while the run was starting
	gs.mu.RLock()
	current := gs.sessions[connID]
	gs.mu.RUnlock()
	if current != s {
		s.Close()
		return session.RunInfo{}, util.WrapErrorf(ErrUnknownConnection, util.ErrNotFound, "connection %s", connID)
	}
	gs.log.Info("maze generation accepted", zap.String("conn_id", connID), zap.String("run_id", info.ID),
		zap.String("algorithm", info.Algorithm), zap.Int("width", info.Width), zap.Int("height", info.Height))
	return info, nil
}

func (gs *GenerationService) SetPaused(connID string, paused bool) error {
	s, err := gs.session(connID)
	if err != nil {
		return err
	}
	return s.SetPaused(paused)
}

func (gs *GenerationService) SetSpeed(connID string, delay time.Duration) error {
	s, err := gs.session(connID)
	if err != nil {
		return err
	}
	return s.SetSpeed(delay)
}

func (gs *GenerationService) Algorithms() []string {
	return gs.engine.Algorithms()
}

// Generate builds a complete maze without streaming, seed nil picks a random one.
func (gs *GenerationService) Generate(algorithm string, width, height int, seed *uint64) (*engine.Maze, error) {
	cfg := gs.engine.Config()
	if algorithm == "" {
		algorithm = cfg.DefaultAlgorithm
	}
	if width == 0 {
		width = cfg.DefaultWidth
	}
	if height == 0 {
		height = cfg.DefaultHeight
	}

	s := rand.Uint64()
	if seed != nil {
		s = *seed
	}
	return gs.engine.Generate(algorithm, width, height, s)
}
