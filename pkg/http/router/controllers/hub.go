package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/gobwas/ws"
	"github.com/gobwas/ws/wsutil"
	"github.com/google/uuid"
	da "github.com/teja123git/Maze-Generator/pkg/datastructure"
	"github.com/teja123git/Maze-Generator/pkg/engine/session"
	"github.com/teja123git/Maze-Generator/pkg/util"
	"go.uber.org/zap"
)

var (
	ErrTransport        = errors.New("websocket transport failure")
	ErrMalformedMessage = errors.New("malformed websocket message")
	ErrUnknownEvent     = errors.New("unknown websocket event")
)

// User. one websocket connection. reads are serialized by the poller, writes by wmu:
// the drive loop of the connection's session and the command handlers both write.
type User struct {
	wmu  sync.Mutex
	conn io.ReadWriteCloser

	id  string
	hub *Hub

	closeOnce sync.Once
	onClose   []func()
}

func (u *User) ID() string {
	return u.id
}

// OnClose registers fn to run once when the user is removed from the hub.
func (u *User) OnClose(fn func()) {
	u.onClose = append(u.onClose, fn)
}

func (u *User) readMessage() (*inboundMessage, error) {
	h, r, err := wsutil.NextReader(u.conn, ws.StateServerSide)
	if err != nil {
		return nil, err
	}
	if h.OpCode.IsControl() {
		u.wmu.Lock()
		defer u.wmu.Unlock()
		return nil, wsutil.ControlFrameHandler(u.conn, ws.StateServerSide)(h, r)
	}

	// the whole frame is consumed even when it does not decode
	payload, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	msg := &inboundMessage{}
	if err := json.Unmarshal(payload, msg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedMessage, err)
	}
	if err := u.hub.validator.Struct(msg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedMessage, errorMessage(err))
	}
	return msg, nil
}

// Receive reads one frame from the connection and handles it.
// a returned error means the connection is unusable and must be removed from the hub.
func (u *User) Receive() error {
	msg, err := u.readMessage()
	if errors.Is(err, ErrMalformedMessage) {
		return u.write(EventConnectError, connectErrorResponse{Message: err.Error()})
	}
	if err != nil {
		return err
	}
	if msg == nil {
		return nil
	}

	if err := u.dispatch(msg); err != nil {
		if errors.Is(err, ErrTransport) {
			return err
		}
		return u.writeError(err)
	}
	return nil
}

func (u *User) dispatch(msg *inboundMessage) error {
	switch msg.Event {
	case EventGenerateMaze:
		var req generateMazeRequest
		if err := u.decodeData(msg.Data, &req); err != nil {
			return err
		}
		_, err := u.hub.service.Start(u.id, req.toStartRequest())
		return err

	case EventPauseResume:
		var req pauseResumeRequest
		if err := u.decodeData(msg.Data, &req); err != nil {
			return err
		}
		return u.hub.service.SetPaused(u.id, *req.IsPaused)

	case EventSetSpeed:
		var req setSpeedRequest
		if err := u.decodeData(msg.Data, &req); err != nil {
			return err
		}
		return u.hub.service.SetSpeed(u.id, req.delay())

	default:
		return util.WrapErrorf(ErrUnknownEvent, util.ErrBadParamInput, "unknown event '%s'", msg.Event)
	}
}

// decodeData. absent data decodes to the zero request, which is then validated.
func (u *User) decodeData(data json.RawMessage, dst any) error {
	if len(data) > 0 && string(data) != "null" {
		if err := json.Unmarshal(data, dst); err != nil {
			return util.WrapErrorf(err, util.ErrBadParamInput, "invalid data: %v", err)
		}
	}
	return u.hub.validator.Struct(dst)
}

func (u *User) write(event string, data any) error {
	w := wsutil.NewWriter(u.conn, ws.StateServerSide, ws.OpText)
	encoder := json.NewEncoder(w)

	u.wmu.Lock()
	defer u.wmu.Unlock()

	if err := encoder.Encode(outboundMessage{Event: event, Data: data}); err != nil {
		return fmt.Errorf("%w: %w", ErrTransport, err)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("%w: %w", ErrTransport, err)
	}
	return nil
}

func (u *User) writeError(err error) error {
	return u.write(EventError, errorMessageResponse{
		Code:    wireErrorCode(err),
		Message: errorMessage(err),
	})
}

func (u *User) OnEvent(info session.RunInfo, ev da.Event) error {
	return u.write(EventMazeUpdate, NewMazeUpdateResponse(ev))
}

func (u *User) OnComplete(info session.RunInfo, summary session.Summary) error {
	return u.write(EventGenerationComplete, NewGenerationCompleteResponse(info, summary))
}

// OnFailure. a broken transport removes the user, any other failure is reported to the client.
func (u *User) OnFailure(info session.RunInfo, err error) {
	if errors.Is(err, ErrTransport) {
		u.hub.log.Info("dropping websocket user after write failure", zap.String("conn_id", u.id),
			zap.String("run_id", info.ID), zap.Error(err))
		// the drive loop calling us is awaited by Remove
		go u.hub.Remove(u)
		return
	}
	if werr := u.writeError(err); werr != nil {
		go u.hub.Remove(u)
	}
}

func (u *User) close() {
	u.closeOnce.Do(func() {
		for _, fn := range u.onClose {
			fn()
		}
		_ = u.conn.Close()
	})
}

type Hub struct {
	mu        sync.RWMutex
	users     map[string]*User
	service   GenerationService
	validator *requestValidator
	log       *zap.Logger
}

func NewHub(service GenerationService, log *zap.Logger) *Hub {
	return &Hub{
		users:     make(map[string]*User),
		service:   service,
		validator: newRequestValidator(),
		log:       log,
	}
}

// Register a freshly upgraded connection and open its generation session.
func (h *Hub) Register(conn io.ReadWriteCloser) *User {
	user := &User{
		hub:  h,
		conn: conn,
		id:   uuid.NewString(),
	}

	h.mu.Lock()
	h.users[user.id] = user
	h.mu.Unlock()

	h.service.Open(user.id, user)
	return user
}

// Remove closes the connection and cancels its run. Safe to call more than once.
func (h *Hub) Remove(user *User) {
	h.mu.Lock()
	_, ok := h.users[user.id]
	delete(h.users, user.id)
	h.mu.Unlock()

	// closing first unblocks a drive loop stuck in a write
	user.close()
	if ok {
		h.service.Close(user.id)
	}
}

func (h *Hub) RemoveAllUser() {
	h.mu.RLock()
	users := make([]*User, 0, len(h.users))
	for _, u := range h.users {
		users = append(users, u)
	}
	h.mu.RUnlock()

	for _, u := range users {
		h.Remove(u)
	}
}

func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.users)
}
