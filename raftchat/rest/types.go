package rest

import "time"

// Post mirrors the server's JSON encoding of a chat message.
type Post struct {
	User     string    `json:"User"`
	Message  string    `json:"Message"`
	PostedAt time.Time `json:"PostedAt"`
}

// postRequest is the body for POST /rooms/{room}. The server stamps
// PostedAt itself.
type postRequest struct {
	User    string `json:"User"`
	Message string `json:"Message"`
}
