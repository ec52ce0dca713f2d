package aggregates

import (
	"sort"

	"meumuseu/domain/core/entities"
	"meumuseu/domain/core/valueobjects"
)

// Museum is the read-only aggregate behind the public share view: one
// user's rooms with their memories grouped in, plus per-media-type counts.
type Museum struct {
	Owner  *entities.User `json:"owner"`
	Rooms  []RoomExhibit  `json:"rooms"`
	Counts MediaCounts    `json:"counts"`
}

// RoomExhibit is a room together with its memories
type RoomExhibit struct {
	Room     *entities.Room      `json:"room"`
	Memories []*entities.Memory  `json:"memories"`
	Counts   MediaCounts         `json:"counts"`
}

// MediaCounts tallies memories per media type
type MediaCounts struct {
	Text  int `json:"text"`
	Image int `json:"image"`
	Video int `json:"video"`
	Audio int `json:"audio"`
	Total int `json:"total"`
}

func (c *MediaCounts) add(mt valueobjects.MediaType) {
	switch mt {
	case valueobjects.MediaText:
		c.Text++
	case valueobjects.MediaImage:
		c.Image++
	case valueobjects.MediaVideo:
		c.Video++
	case valueobjects.MediaAudio:
		c.Audio++
	}
	c.Total++
}

// BuildMuseum assembles the aggregate from an owner's rooms and memories.
// Rooms are ordered oldest first; memories newest first within a room,
// matching the browsing order of the share page.
func BuildMuseum(owner *entities.User, rooms []*entities.Room, memories []*entities.Memory) *Museum {
	byRoom := make(map[string][]*entities.Memory, len(rooms))
	for _, m := range memories {
		key := m.RoomID.String()
		byRoom[key] = append(byRoom[key], m)
	}

	museum := &Museum{Owner: owner, Rooms: make([]RoomExhibit, 0, len(rooms))}

	sorted := make([]*entities.Room, len(rooms))
	copy(sorted, rooms)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
	})

	for _, room := range sorted {
		exhibit := RoomExhibit{Room: room, Memories: byRoom[room.ID.String()]}
		if exhibit.Memories == nil {
			exhibit.Memories = []*entities.Memory{}
		}
		sort.Slice(exhibit.Memories, func(i, j int) bool {
			return exhibit.Memories[i].CreatedAt.After(exhibit.Memories[j].CreatedAt)
		})
		for _, m := range exhibit.Memories {
			exhibit.Counts.add(m.MediaType)
			museum.Counts.add(m.MediaType)
		}
		museum.Rooms = append(museum.Rooms, exhibit)
	}

	return museum
}
