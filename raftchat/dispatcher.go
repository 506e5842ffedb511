package raftchat

import "encoding/json"

// Dispatcher decodes push-stream frames and routes them to registered
// callbacks.
type Dispatcher struct {
	onRoomPost func(RoomPost)
	onError    func(error)
}

func (d *Dispatcher) SetOnRoomPost(fn func(RoomPost)) { d.onRoomPost = fn }
func (d *Dispatcher) SetOnError(fn func(error))       { d.onError = fn }

// Dispatch decodes one frame. A malformed frame fires the error
// callback and is dropped; the stream keeps going.
func (d *Dispatcher) Dispatch(raw json.RawMessage) {
	var rp RoomPost
	if err := json.Unmarshal(raw, &rp); err != nil {
		d.fireError(WrapError(ErrorSerialization, "failed to unmarshal room post frame", err))
		return
	}
	if d.onRoomPost != nil {
		d.onRoomPost(rp)
	}
}

func (d *Dispatcher) fireError(err error) {
	if d.onError != nil && err != nil {
		d.onError(err)
	}
}
