package raftchat

import "time"

// RoomItem is one sidebar entry.
type RoomItem struct {
	Name     string
	Selected bool
}

// PostRow is one renderable message, annotated with the author's color.
type PostRow struct {
	Author   string
	Body     string
	PostedAt time.Time
	Color    string
}

// ViewModel is everything a renderer needs. It is a value snapshot:
// mutating it has no effect on the session.
type ViewModel struct {
	SelectedRoom string
	Rooms        []RoomItem
	Posts        []PostRow
	DraftUser    string
	DraftMessage string
}

// View projects the session state into a renderable model. Rooms keep
// first-seen order, posts keep append order. Pure read, no side
// effects.
func (s *Session) View() ViewModel {
	s.mu.Lock()
	defer s.mu.Unlock()

	vm := ViewModel{
		SelectedRoom: s.selected,
		Rooms:        make([]RoomItem, 0, len(s.rooms)),
		Posts:        make([]PostRow, 0, len(s.posts)),
		DraftUser:    s.draftUser,
		DraftMessage: s.draftMessage,
	}
	for _, r := range s.rooms {
		vm.Rooms = append(vm.Rooms, RoomItem{Name: r, Selected: r == s.selected})
	}
	for _, p := range s.posts {
		vm.Posts = append(vm.Posts, PostRow{
			Author:   p.User,
			Body:     p.Message,
			PostedAt: p.PostedAt,
			Color:    ColorFor(p.User),
		})
	}
	return vm
}
