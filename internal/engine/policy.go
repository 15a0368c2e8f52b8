package engine

// dangerZone is the number of marks that leaves a line one move from completion.
const dangerZone = BoardSize - 1

const (
	hardWinningAttack = 20
	hardBlockDefense  = 10
)

type Difficulty uint8

const (
	Hard Difficulty = iota
	Easy
)

func (d Difficulty) String() string {
	if d == Easy {
		return "easy"
	}
	return "hard"
}

// Policy updates the scores of one empty cell on a line after a move.
// enemyCount is the number of human marks on the line, friendlyCount the
// number of computer marks.
type Policy interface {
	UpdateAttackLinePoints(enemyCount, friendlyCount uint8, cell *Cell)
	UpdateDefenseLinePoints(enemyCount uint8, cell *Cell)
	Difficulty() Difficulty
}

// NewPolicy returns the policy for the given difficulty.
func NewPolicy(difficulty Difficulty) Policy {
	if difficulty == Easy {
		return easyPolicy{}
	}
	return hardPolicy{}
}

type easyPolicy struct{}

func (easyPolicy) UpdateAttackLinePoints(enemyCount, friendlyCount uint8, cell *Cell) {
	switch {
	case friendlyCount == dangerZone:
		cell.AttackPoints++
	case enemyCount < dangerZone:
		decrementAttack(cell)
	}
}

func (easyPolicy) UpdateDefenseLinePoints(enemyCount uint8, cell *Cell) {
	if enemyCount > 0 {
		cell.DefensePoints = 1
	}
}

func (easyPolicy) Difficulty() Difficulty {
	return Easy
}

type hardPolicy struct{}

func (hardPolicy) UpdateAttackLinePoints(enemyCount, friendlyCount uint8, cell *Cell) {
	switch {
	// one move from closing the line, make sure it's taken
	case friendlyCount == dangerZone:
		cell.AttackPoints = hardWinningAttack
	case enemyCount < dangerZone:
		decrementAttack(cell)
	}
}

func (hardPolicy) UpdateDefenseLinePoints(enemyCount uint8, cell *Cell) {
	switch {
	case enemyCount == dangerZone:
		cell.DefensePoints = hardBlockDefense
	case enemyCount > 0:
		cell.DefensePoints = enemyCount
	}
}

func (hardPolicy) Difficulty() Difficulty {
	return Hard
}

func decrementAttack(cell *Cell) {
	if cell.AttackPoints > 0 {
		cell.AttackPoints--
	}
}
