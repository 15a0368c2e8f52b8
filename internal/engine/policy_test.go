package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPolicy(t *testing.T) {
	assert.Equal(t, Easy, NewPolicy(Easy).Difficulty())
	assert.Equal(t, Hard, NewPolicy(Hard).Difficulty())
}

func TestPolicy_UpdateAttackLinePoints(t *testing.T) {
	tests := []struct {
		name       string
		difficulty Difficulty
		enemy      uint8
		friendly   uint8
		before     uint8
		expected   uint8
	}{
		{name: "easy raises a line one move from completion", difficulty: Easy, enemy: 0, friendly: 2, before: 3, expected: 4},
		{name: "easy lowers an open line", difficulty: Easy, enemy: 1, friendly: 0, before: 3, expected: 2},
		{name: "easy never goes below zero", difficulty: Easy, enemy: 1, friendly: 1, before: 0, expected: 0},
		{name: "easy leaves a line the enemy is about to close", difficulty: Easy, enemy: 2, friendly: 0, before: 3, expected: 3},
		{name: "hard forces the winning move", difficulty: Hard, enemy: 0, friendly: 2, before: 1, expected: 20},
		{name: "hard lowers an open line", difficulty: Hard, enemy: 0, friendly: 1, before: 2, expected: 1},
		{name: "hard never goes below zero", difficulty: Hard, enemy: 1, friendly: 0, before: 0, expected: 0},
		{name: "hard leaves a line the enemy is about to close", difficulty: Hard, enemy: 2, friendly: 0, before: 4, expected: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Given: a cell with some attack points
			cell := &Cell{AttackPoints: tt.before}

			// When: the policy updates the cell for its line
			NewPolicy(tt.difficulty).UpdateAttackLinePoints(tt.enemy, tt.friendly, cell)

			// Then: the attack points follow the difficulty rules
			assert.Equal(t, tt.expected, cell.AttackPoints)
			assert.Zero(t, cell.DefensePoints)
		})
	}
}

func TestPolicy_UpdateDefenseLinePoints(t *testing.T) {
	tests := []struct {
		name       string
		difficulty Difficulty
		enemy      uint8
		before     uint8
		expected   uint8
	}{
		{name: "easy ignores a line without enemy marks", difficulty: Easy, enemy: 0, before: 5, expected: 5},
		{name: "easy gives a flat signal for one enemy mark", difficulty: Easy, enemy: 1, before: 0, expected: 1},
		{name: "easy gives a flat signal for two enemy marks", difficulty: Easy, enemy: 2, before: 0, expected: 1},
		{name: "hard ignores a line without enemy marks", difficulty: Hard, enemy: 0, before: 2, expected: 2},
		{name: "hard follows the enemy count", difficulty: Hard, enemy: 1, before: 0, expected: 1},
		{name: "hard forces a block", difficulty: Hard, enemy: 2, before: 1, expected: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cell := &Cell{DefensePoints: tt.before, AttackPoints: 3}

			NewPolicy(tt.difficulty).UpdateDefenseLinePoints(tt.enemy, cell)

			assert.Equal(t, tt.expected, cell.DefensePoints)
			assert.Equal(t, uint8(3), cell.AttackPoints)
		})
	}
}
