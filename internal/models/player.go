package models

import "encoding/json"

// Player is a single scouted player record. The schema is deliberately open:
// the UI has accumulated columns over several seasons (nationality, preferred
// foot, transfermarkt URL, ...) and both storage backends pass unknown keys
// through verbatim, so the record is a map with typed accessors for the few
// fields the server itself reasons about.
type Player map[string]any

// Well-known player fields.
const (
	FieldID        = "id"
	FieldName      = "name"
	FieldTeamName  = "team_name"
	FieldTags      = "tags"
	FieldPhotoPath = "photo_path"
)

func (p Player) ID() string {
	return stringField(p, FieldID)
}

func (p Player) Name() string {
	return stringField(p, FieldName)
}

// TeamName returns the canonical team, reconciling legacy aliases.
func (p Player) TeamName() string {
	return CanonicalTeam(p)
}

// Tags returns the tags field coerced to a string slice. Historical rows
// stored tags as JSON-encoded text or as a bare string; both are accepted.
func (p Player) Tags() []string {
	return CoerceTags(p[FieldTags])
}

func (p Player) PhotoPath() string {
	return stringField(p, FieldPhotoPath)
}

// Clone returns a shallow copy so callers can mutate without aliasing the
// store's in-memory slice.
func (p Player) Clone() Player {
	out := make(Player, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Merge overlays src's fields onto p, keeping keys src does not mention.
func (p Player) Merge(src Player) {
	for k, v := range src {
		p[k] = v
	}
}

func stringField(p Player, key string) string {
	if v, ok := p[key].(string); ok {
		return v
	}
	return ""
}

// CoerceTags normalizes a raw tags value to a string list. Best effort, never
// fails: unparseable values become a single-element list, nil becomes empty.
func CoerceTags(v any) []string {
	switch t := v.(type) {
	case nil:
		return []string{}
	case []string:
		return t
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case string:
		if t == "" {
			return []string{}
		}
		var parsed []string
		if err := json.Unmarshal([]byte(t), &parsed); err == nil {
			return parsed
		}
		return []string{t}
	default:
		return []string{}
	}
}
