package identity

import (
	"remindbot/internal/core/domain/audit"

	"github.com/google/uuid"
)

type UUID struct{}

func NewUUID() *UUID {
	return &UUID{}
}

func (g *UUID) GenerateEventID() audit.EventID {
	return audit.EventID(uuid.New().String())
}
