package brackets

import (
	"context"
	"errors"
	"fmt"

	"github.com/Dosada05/tabletennis/models"
)

type GroupStageGenerator struct{}

func NewGroupStageGenerator() BracketGenerator {
	return &GroupStageGenerator{}
}

func (g *GroupStageGenerator) GetName() string {
	return "GroupStage"
}

// GenerateBracket splits the seeded players into groups of params.GroupSize
// and creates the round-robin matches of every group.
func (g *GroupStageGenerator) GenerateBracket(ctx context.Context, params GenerateBracketParams) (*Bracket, error) {
	if params.Category == nil {
		return nil, errors.New("group stage: category is required")
	}
	if len(params.Players) < 2 {
		return nil, fmt.Errorf("group stage: not enough participants (found %d, min 2 required)", len(params.Players))
	}
	if params.GroupSize < 2 {
		return nil, fmt.Errorf("group stage: group size must be at least 2, got %d", params.GroupSize)
	}
	groups, matches := BuildGroups(playerIDs(params.Players), params.GroupSize, params.Category.ID)
	return &Bracket{Groups: groups, Matches: matches}, nil
}

// NumGroups returns how many groups n players split into.
func NumGroups(n, groupSize int) int {
	if n <= 0 || groupSize <= 0 {
		return 0
	}
	return (n + groupSize - 1) / groupSize
}

// BuildGroups distributes seeded players over ceil(n/groupSize) groups using
// snake seeding and emits a single round robin for each group. Every match is
// also attached to its group's Matches so the caller can set GroupID once the
// group has an id.
func BuildGroups(seeded []int, groupSize, categoryID int) ([]*models.Group, []*models.Match) {
	numGroups := NumGroups(len(seeded), groupSize)
	if numGroups == 0 {
		return []*models.Group{}, []*models.Match{}
	}

	groups := make([]*models.Group, numGroups)
	for i := range groups {
		groups[i] = &models.Group{
			CategoryID: categoryID,
			Name:       groupName(i),
			PlayerIDs:  make([]int, 0, groupSize),
		}
	}

	for i, playerID := range seeded {
		pass := i / numGroups
		lane := i % numGroups
		if pass%2 == 1 {
			lane = numGroups - 1 - lane
		}
		groups[lane].PlayerIDs = append(groups[lane].PlayerIDs, playerID)
	}

	matches := make([]*models.Match, 0)
	for _, group := range groups {
		position := 0
		members := group.PlayerIDs
		for i := 0; i < len(members); i++ {
			for j := i + 1; j < len(members); j++ {
				position++
				m := &models.Match{
					CategoryID: categoryID,
					Stage:      models.StageGroup,
					Round:      0,
					Position:   position,
					Player1ID:  intPtr(members[i]),
					Player2ID:  intPtr(members[j]),
					Status:     models.MatchStatusScheduled,
					Sets:       []models.SetScore{},
				}
				group.Matches = append(group.Matches, m)
				matches = append(matches, m)
			}
		}
	}
	return groups, matches
}

// groupName turns 0, 1, … 25, 26 into "A", "B", … "Z", "AA".
func groupName(i int) string {
	name := ""
	for i >= 0 {
		name = string(rune('A'+i%26)) + name
		i = i/26 - 1
	}
	return name
}
