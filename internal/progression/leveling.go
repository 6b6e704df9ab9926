package progression

import "github.com/erazemk/algorithmia/internal/model"

// ApplyExperience adds xp to the player and levels up as many times as the
// total allows. Each level consumes level*100 experience, so the remainder is
// always below the new level's threshold. It returns the number of levels gained.
func ApplyExperience(p *model.Player, xp int) int {
	if xp <= 0 {
		return 0
	}
	p.Experience += xp

	gained := 0
	for p.Experience >= model.LevelThreshold(p.Level) {
		p.Experience -= model.LevelThreshold(p.Level)
		p.Level++
		gained++
	}
	return gained
}
