package brackets

import (
	"context"
	"fmt"

	"github.com/Dosada05/tabletennis/models"
)

type GenerateBracketParams struct {
	Category *models.Category
	// Players must already be seeded, best first.
	Players []*models.Player
	// GroupSize is only read by the group stage generator.
	GroupSize int
}

// Bracket is the generated, not yet persisted, structure of a stage.
type Bracket struct {
	Groups  []*models.Group
	Matches []*models.Match
}

type BracketGenerator interface {
	GenerateBracket(ctx context.Context, params GenerateBracketParams) (*Bracket, error)

	GetName() string
}

// NewGeneratorForStart returns the generator that builds the first stage of a category.
func NewGeneratorForStart(format models.CategoryFormat) (BracketGenerator, error) {
	switch format {
	case models.FormatSingleElimination:
		return NewSingleEliminationGenerator(), nil
	case models.FormatGroupsThenElimination, models.FormatRoundRobin:
		return NewGroupStageGenerator(), nil
	default:
		return nil, fmt.Errorf("unsupported category format '%s'", format)
	}
}

func playerIDs(players []*models.Player) []int {
	ids := make([]int, len(players))
	for i, p := range players {
		ids[i] = p.ID
	}
	return ids
}

func intPtr(v int) *int { return &v }
