package rest

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestRooms(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/rooms" || r.Method != http.MethodGet {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		json.NewEncoder(w).Encode([]string{"General", "Random"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second)
	rooms, err := c.Rooms(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rooms) != 2 || rooms[0] != "General" || rooms[1] != "Random" {
		t.Fatalf("unexpected rooms: %v", rooms)
	}
}

func TestRoomHistory(t *testing.T) {
	posted := time.Date(2019, 4, 2, 10, 0, 0, 0, time.UTC)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]Post{{User: "alice", Message: "hi", PostedAt: posted}})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second)
	posts, err := c.RoomHistory(context.Background(), "General")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(posts) != 1 {
		t.Fatalf("unexpected posts: %v", posts)
	}
	if posts[0].User != "alice" || posts[0].Message != "hi" || !posts[0].PostedAt.Equal(posted) {
		t.Fatalf("unexpected post: %+v", posts[0])
	}
}

func TestRoomHistoryEscapesRoomName(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		w.Write([]byte("[]"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second)
	if _, err := c.RoomHistory(context.Background(), "war room/2"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotPath != "/rooms/war%20room%2F2" {
		t.Fatalf("room name not escaped: %q", gotPath)
	}
}

// The server answers an unknown room with an empty array, not an error.
func TestRoomHistoryUnknownRoom(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("[]"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second)
	posts, err := c.RoomHistory(context.Background(), "never-seen")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(posts) != 0 {
		t.Fatalf("expected empty history, got %v", posts)
	}
}

func TestPostMessage(t *testing.T) {
	var gotBody []byte
	var gotMethod string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second)
	if err := c.PostMessage(context.Background(), "General", "bob", "yo"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotMethod != http.MethodPost {
		t.Fatalf("method = %s", gotMethod)
	}

	var req struct {
		User    string
		Message string
	}
	if err := json.Unmarshal(gotBody, &req); err != nil {
		t.Fatalf("bad body %q: %v", gotBody, err)
	}
	if req.User != "bob" || req.Message != "yo" {
		t.Fatalf("unexpected body: %+v", req)
	}
}

func TestErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Failed on POST", http.StatusBadRequest)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second)
	err := c.PostMessage(context.Background(), "General", "bob", "yo")
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), "status 400") {
		t.Fatalf("error does not carry status: %v", err)
	}
}
