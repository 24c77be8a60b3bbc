package bot

import (
	"github.com/gamer-gang/flushed/internal/domain"
)

// Agent binds a bot identity to its decision procedure.
type Agent struct {
	ID       string
	Name     string
	Strategy Brain
}

// NewAgent builds an agent for the given bot user id.
func NewAgent(userID string) *Agent {
	return &Agent{
		ID:       userID,
		Name:     DisplayName(userID),
		Strategy: NewBrain(),
	}
}

// Play asks the agent for its move in the given game. An agent whose seat
// has vanished passes; a delayed bot action must no-op gracefully rather
// than fail.
func (a *Agent) Play(game *domain.Game) (domain.Move, error) {
	seat := game.SeatByID(a.ID)
	if seat == nil {
		return domain.Move{Pass: true}, nil
	}
	return a.Strategy.CalculateMove(game, seat)
}
