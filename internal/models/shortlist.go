package models

import "time"

// ShortlistEntry is a reference to a player kept inside a named shortlist.
// Name and Team are a snapshot taken when the player was added, so entries
// stay renderable even after the player record is removed.
type ShortlistEntry struct {
	PlayerID string `json:"id"`
	Name     string `json:"name,omitempty"`
	Team     string `json:"team,omitempty"`
}

// Shortlist is a named, ordered collection of player references.
type Shortlist struct {
	Name    string           `json:"name"`
	Entries []ShortlistEntry `json:"entries"`
}

// Note is a quick scouting note, optionally attached to a player.
type Note struct {
	ID        string    `json:"id"`
	PlayerID  string    `json:"player_id,omitempty"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}
