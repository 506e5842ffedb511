package raftchat

import "time"

// Post is a single chat message as the raft-chat server encodes it.
// Field names match the server's Go-default JSON encoding.
type Post struct {
	User     string    `json:"User"`
	Message  string    `json:"Message"`
	PostedAt time.Time `json:"PostedAt"`
}

// RoomPost is the frame pushed over the websocket whenever any client
// posts to any room.
type RoomPost struct {
	RoomName string `json:"RoomName"`
	Post     Post   `json:"Post"`
}
