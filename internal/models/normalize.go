package models

import "strings"

// Field aliases left behind by older spreadsheet imports and schema
// revisions. Checked in order; the first non-empty value wins.
var (
	teamAliases = []string{FieldTeamName, "Team", "team", "current_club", "CurrentClub"}
	idAliases   = []string{FieldID, "PlayerID"}
	nameAliases = []string{FieldName, "Name"}
)

// CanonicalTeam resolves the team for a raw record regardless of which
// schema generation produced it. Returns "" when no alias holds a value;
// such records are treated as unassigned and excluded from team queries.
func CanonicalTeam(p Player) string {
	return firstNonEmpty(p, teamAliases)
}

// CanonicalID resolves the player id, accepting the legacy PlayerID column.
func CanonicalID(p Player) string {
	return firstNonEmpty(p, idAliases)
}

// Normalize rewrites a raw record in place so the canonical keys are
// authoritative. All other keys are preserved verbatim; the resolved alias
// keys are dropped to avoid the same value under two names.
func Normalize(p Player) Player {
	normalizeField(p, FieldTeamName, teamAliases)
	normalizeField(p, FieldID, idAliases)
	normalizeField(p, FieldName, nameAliases)
	return p
}

func normalizeField(p Player, canonical string, aliases []string) {
	value := firstNonEmpty(p, aliases)
	for _, alias := range aliases {
		if alias != canonical {
			delete(p, alias)
		}
	}
	if value != "" {
		p[canonical] = value
	}
}

func firstNonEmpty(p Player, aliases []string) string {
	for _, alias := range aliases {
		v, ok := p[alias]
		if !ok {
			continue
		}
		if s, ok := v.(string); ok {
			if trimmed := strings.TrimSpace(s); trimmed != "" {
				return trimmed
			}
		}
	}
	return ""
}
