package bot

import (
	"github.com/gamer-gang/flushed/internal/domain"
)

// Brain is the decision procedure behind a bot seat. Implementations must be
// deterministic for a given game state.
type Brain interface {
	CalculateMove(game *domain.Game, seat *domain.Seat) (domain.Move, error)
}
