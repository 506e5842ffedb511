package raftchat

import (
	"context"
	"sync"

	"github.com/samber/lo"
)

// Transport is the slice of the server API the session depends on.
// *Client satisfies it through the REST layer; tests substitute fakes
// to control completion order.
type Transport interface {
	Rooms(ctx context.Context) ([]string, error)
	RoomHistory(ctx context.Context, room string) ([]Post, error)
	PostMessage(ctx context.Context, room, user, message string) error
}

// Session is the client-local synchronization state machine. It owns
// the selected room, the set of known rooms, the post log of the
// selected room, and the draft input fields. All mutation goes through
// the named operations below; the mutex serializes operations and
// asynchronous completions, so at most one handler touches the state
// at a time.
//
// Every asynchronous completion re-checks the state it was issued
// against before applying its result. A history response that arrives
// after the user has moved to another room is discarded, never applied.
type Session struct {
	transport Transport
	logger    Logger

	mu           sync.Mutex
	selected     string
	rooms        []string // first-seen order, grow-only
	posts        []Post
	draftUser    string
	draftMessage string
	historyGen   uint64
}

// NewSession creates a session backed by the given transport.
func NewSession(t Transport, logger Logger) *Session {
	if logger == nil {
		logger = noopLogger{}
	}
	return &Session{transport: t, logger: logger}
}

// SelectRoom makes room the current room. The room set is extended
// first, the post log is cleared immediately, and the room's history is
// fetched in the background. The fetched history is applied only if the
// selection is unchanged when the fetch resolves, so a slow fetch can
// never clobber another room's log.
func (s *Session) SelectRoom(ctx context.Context, room string) {
	s.mu.Lock()
	s.addRoomLocked(room)
	s.selected = room
	s.posts = nil
	s.historyGen++
	gen := s.historyGen
	s.mu.Unlock()

	go s.fetchHistory(ctx, room, gen)
}

// CreateRoom registers a locally created room and selects it. The room
// name is taken as-is; the server treats unknown rooms as empty.
func (s *Session) CreateRoom(ctx context.Context, room string) {
	s.SelectRoom(ctx, room)
}

func (s *Session) fetchHistory(ctx context.Context, room string, gen uint64) {
	posts, err := s.transport.RoomHistory(ctx, room)
	if err != nil {
		s.logger.Warn("room history fetch failed", map[string]any{"room": room, "error": err.Error()})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.historyGen || s.selected != room {
		// The user moved on while the fetch was in flight. Dropping the
		// result is the designed outcome, not a failure.
		s.logger.Debug("discarding stale room history", map[string]any{"room": room})
		return
	}
	// Wholesale replace: a push that landed between the clear and this
	// response is superseded by the server's history.
	s.posts = posts
}

// HandleRoomPost applies one push-stream frame. The room is always
// recorded so the room list stays current; the post itself lands in the
// log only when the frame targets the room selected at processing time.
func (s *Session) HandleRoomPost(rp RoomPost) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.addRoomLocked(rp.RoomName)
	if rp.RoomName == s.selected {
		s.posts = append(s.posts, rp.Post)
	}
}

// HandleRoomList unions fetched room names into the room set, keeping
// first-seen order. Selection and the post log are never affected.
func (s *Session) HandleRoomList(names []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rooms = lo.Uniq(append(s.rooms, names...))
}

// RefreshRooms fetches the room list in the background. On failure the
// room list simply does not grow this round.
func (s *Session) RefreshRooms(ctx context.Context) {
	go func() {
		names, err := s.transport.Rooms(ctx)
		if err != nil {
			s.logger.Warn("room list fetch failed", map[string]any{"error": err.Error()})
			return
		}
		s.HandleRoomList(names)
	}()
}

// SetDraftUser updates the author name used by Post.
func (s *Session) SetDraftUser(user string) {
	s.mu.Lock()
	s.draftUser = user
	s.mu.Unlock()
}

// SetDraftMessage updates the message text used by Post.
func (s *Session) SetDraftMessage(message string) {
	s.mu.Lock()
	s.draftMessage = message
	s.mu.Unlock()
}

// Post sends the current draft to the currently selected room,
// fire-and-forget. The post is not appended locally and the draft is
// not cleared: the poster sees their own message when it comes back on
// the push stream, through the same path as everyone else's.
func (s *Session) Post(ctx context.Context) {
	s.mu.Lock()
	room, user, message := s.selected, s.draftUser, s.draftMessage
	s.mu.Unlock()

	go func() {
		if err := s.transport.PostMessage(ctx, room, user, message); err != nil {
			s.logger.Warn("post failed", map[string]any{"room": room, "error": err.Error()})
		}
	}()
}

func (s *Session) addRoomLocked(room string) {
	if !lo.Contains(s.rooms, room) {
		s.rooms = append(s.rooms, room)
	}
}
