package models

import (
	"encoding/json"
	"time"
)

// Match is one entry in the match log that scout reports are filed against.
type Match struct {
	ID          string `json:"id"`
	HomeTeam    string `json:"home_team"`
	AwayTeam    string `json:"away_team"`
	Datetime    string `json:"datetime"`
	Competition string `json:"competition,omitempty"`
}

// UnmarshalJSON tolerates older match rows that stored the kickoff under a
// "date" key instead of "datetime".
func (m *Match) UnmarshalJSON(data []byte) error {
	type alias Match
	aux := struct {
		*alias
		Date string `json:"date"`
	}{alias: (*alias)(m)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if m.Datetime == "" {
		m.Datetime = aux.Date
	}
	return nil
}

// AttributeRating is one scored attribute inside a scout report.
type AttributeRating struct {
	Attribute string `json:"attribute"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment,omitempty"`
}

// RatingList decodes ratings stored either as a JSON array or as a
// JSON-encoded string; older report rows used the string form. Ratings are
// clamped to the 1..5 scale on decode.
type RatingList []AttributeRating

func (r *RatingList) UnmarshalJSON(data []byte) error {
	var raw []AttributeRating
	if err := json.Unmarshal(data, &raw); err != nil {
		var s string
		if serr := json.Unmarshal(data, &s); serr != nil {
			return err
		}
		if s != "" {
			if err := json.Unmarshal([]byte(s), &raw); err != nil {
				return err
			}
		}
	}
	out := make(RatingList, 0, len(raw))
	for _, a := range raw {
		a.Rating = ClampRating(a.Rating)
		out = append(out, a)
	}
	*r = out
	return nil
}

// ClampRating forces a rating onto the 1..5 scale.
func ClampRating(n int) int {
	if n < 1 {
		return 1
	}
	if n > 5 {
		return 5
	}
	return n
}

// ScoutReport is a structured post-match assessment of one player. HomeTeam,
// AwayTeam and Datetime are joined in from the match log on read and are not
// persisted with the report itself.
type ScoutReport struct {
	ID             string     `json:"id"`
	MatchID        string     `json:"match_id"`
	PlayerID       string     `json:"player_id"`
	Competition    string     `json:"competition,omitempty"`
	Foot           string     `json:"foot,omitempty"`
	Position       string     `json:"position,omitempty"`
	Ratings        RatingList `json:"ratings"`
	GeneralComment string     `json:"general_comment,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`

	HomeTeam string `json:"home_team,omitempty"`
	AwayTeam string `json:"away_team,omitempty"`
	Datetime string `json:"datetime,omitempty"`
}
