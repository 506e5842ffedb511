package raftchat

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/url"
	"sync"

	"github.com/seriousben/raft-chat-client-go/raftchat/internal"
	"github.com/seriousben/raft-chat-client-go/raftchat/rest"

	"github.com/coder/websocket"
)

// Client is the high-level SDK entry point. It owns the REST client,
// the push-stream connection, and the session state machine, and
// surfaces the session operations as methods.
type Client struct {
	cfg        Config
	logger     Logger
	session    *Session
	conn       *internal.Conn
	dispatcher Dispatcher
	onRoomPost func(RoomPost)

	// REST exposes the raw HTTP API for callers that need it directly.
	REST *rest.Client

	mu     sync.Mutex
	state  ConnectionState
	cancel context.CancelFunc
}

// NewClient constructs a client with the provided config. Use
// DefaultConfig or ConfigFromEnv as a starting point.
func NewClient(cfg Config) *Client {
	c := &Client{
		cfg:    cfg,
		logger: noopLogger{},
		REST:   rest.NewClient(cfg.RESTBaseURL, cfg.HTTPTimeout),
	}
	c.session = NewSession(restTransport{c.REST}, c.logger)
	c.session.SetDraftUser(cfg.User)
	c.dispatcher.SetOnRoomPost(c.handleRoomPost)
	return c
}

// SetLogger overrides the logger (optional). Call before Connect.
func (c *Client) SetLogger(l Logger) {
	if l == nil {
		return
	}
	c.logger = l
	c.session.logger = l
}

// OnRoomPost registers a callback observing every pushed frame, invoked
// after the session has applied it. Register before Connect.
func (c *Client) OnRoomPost(fn func(RoomPost)) { c.onRoomPost = fn }

// OnError registers a callback for push-stream errors.
func (c *Client) OnError(fn func(error)) { c.dispatcher.SetOnError(fn) }

// Connect dials the push stream, starts the read loop, and issues the
// initial room-list fetch. Opening the push subscription is the only
// side effect not tied to a user action, and it happens exactly once.
func (c *Client) Connect(ctx context.Context) error {
	c.mu.Lock()
	if c.state == StateConnecting || c.state == StateConnected {
		c.mu.Unlock()
		return NewError(ErrorConnection, "already connected")
	}
	c.state = StateConnecting
	c.mu.Unlock()

	if c.cfg.WSURL == "" {
		c.setState(StateDisconnected)
		return NewError(ErrorInvalidConfig, "empty websocket URL")
	}
	u, err := url.Parse(c.cfg.WSURL)
	if err != nil {
		c.setState(StateDisconnected)
		return WrapError(ErrorInvalidConfig, "parse websocket URL", err)
	}

	dialCtx := ctx
	if c.cfg.HandshakeTimeout > 0 {
		var cancel context.CancelFunc
		dialCtx, cancel = context.WithTimeout(ctx, c.cfg.HandshakeTimeout)
		defer cancel()
	}

	ws, _, err := websocket.Dial(dialCtx, u.String(), nil)
	if err != nil {
		c.setState(StateDisconnected)
		return WrapError(ErrorConnection, "dial push stream", err)
	}

	c.conn = internal.NewConn(ws, c.cfg.ReadTimeout)

	runCtx, cancel := context.WithCancel(context.Background())
	c.mu.Lock()
	c.cancel = cancel
	c.state = StateConnected
	c.mu.Unlock()

	go c.readLoop(runCtx)
	c.session.RefreshRooms(runCtx)
	return nil
}

// SelectRoom switches to room and loads its history.
func (c *Client) SelectRoom(ctx context.Context, room string) { c.session.SelectRoom(ctx, room) }

// CreateRoom registers a new room locally and selects it.
func (c *Client) CreateRoom(ctx context.Context, room string) { c.session.CreateRoom(ctx, room) }

// SetDraftUser updates the author name used by Post.
func (c *Client) SetDraftUser(user string) { c.session.SetDraftUser(user) }

// SetDraftMessage updates the message text used by Post.
func (c *Client) SetDraftMessage(message string) { c.session.SetDraftMessage(message) }

// Post sends the current draft to the selected room.
func (c *Client) Post(ctx context.Context) { c.session.Post(ctx) }

// View returns a renderable snapshot of the session.
func (c *Client) View() ViewModel { return c.session.View() }

// Session exposes the underlying state machine.
func (c *Client) Session() *Session { return c.session }

// State reports the push-stream connection state.
func (c *Client) State() ConnectionState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Close shuts down the client and closes the push stream.
func (c *Client) Close() error {
	c.mu.Lock()
	if c.cancel != nil {
		c.cancel()
	}
	c.state = StateClosed
	c.mu.Unlock()
	if c.conn != nil {
		return c.conn.Close(websocket.StatusNormalClosure, "client close")
	}
	return nil
}

func (c *Client) handleRoomPost(rp RoomPost) {
	c.session.HandleRoomPost(rp)
	if c.onRoomPost != nil {
		c.onRoomPost(rp)
	}
}

func (c *Client) readLoop(ctx context.Context) {
	for {
		var raw json.RawMessage
		if err := c.conn.Read(ctx, &raw); err != nil {
			if !isExpectedDisconnect(ctx, err) {
				c.dispatcher.fireError(WrapError(ErrorDisconnected, "push stream read", err))
				c.logger.Warn("push stream closed", map[string]any{"error": err.Error()})
			}
			// No reconnection: a dropped stream stays down for the rest
			// of the session.
			c.setState(StateDisconnected)
			return
		}
		c.dispatcher.Dispatch(raw)
	}
}

func (c *Client) setState(st ConnectionState) {
	c.mu.Lock()
	c.state = st
	c.mu.Unlock()
}

func isExpectedDisconnect(ctx context.Context, err error) bool {
	if err == nil {
		return false
	}
	if ctx != nil && ctx.Err() != nil {
		return true
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) {
		return true
	}
	switch websocket.CloseStatus(err) {
	case websocket.StatusNormalClosure, websocket.StatusGoingAway:
		return true
	default:
		return false
	}
}

// restTransport adapts the REST client to the session's Transport.
type restTransport struct {
	rest *rest.Client
}

func (t restTransport) Rooms(ctx context.Context) ([]string, error) {
	return t.rest.Rooms(ctx)
}

func (t restTransport) RoomHistory(ctx context.Context, room string) ([]Post, error) {
	history, err := t.rest.RoomHistory(ctx, room)
	if err != nil {
		return nil, err
	}
	posts := make([]Post, 0, len(history))
	for _, p := range history {
		posts = append(posts, Post{User: p.User, Message: p.Message, PostedAt: p.PostedAt})
	}
	return posts, nil
}

func (t restTransport) PostMessage(ctx context.Context, room, user, message string) error {
	return t.rest.PostMessage(ctx, room, user, message)
}
