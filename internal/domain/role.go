package domain

import "strings"

type Role string

const (
	RoleAdmin       Role = "admin"
	RoleOrganizer   Role = "organizer"
	RoleClubManager Role = "club_manager"
	RolePlayer      Role = "player"
	RoleFan         Role = "fan"
)

func ParseRole(raw string) Role {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	normalized = strings.ReplaceAll(normalized, "-", "_")
	normalized = strings.ReplaceAll(normalized, " ", "_")
	return Role(normalized)
}

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleOrganizer, RoleClubManager, RolePlayer, RoleFan:
		return true
	default:
		return false
	}
}

func (r Role) Label() string {
	switch r {
	case RoleAdmin:
		return "Admin"
	case RoleOrganizer:
		return "Organizer"
	case RoleClubManager:
		return "Club manager"
	case RolePlayer:
		return "Player"
	case RoleFan:
		return "Fan"
	case "":
		return "Unknown"
	default:
		return string(r)
	}
}
