package handler

import "github.com/google/uuid"

// Helper to parse a UUID path param
func parseUUID(id string) (uuid.UUID, error) {
	return uuid.Parse(id)
}
