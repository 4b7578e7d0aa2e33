// Package catalog holds the fixed table of academic standards and their boards.
package catalog

import (
	"errors"
	"fmt"

	"github.com/nrjt/eduplatform/internal/types"
)

var (
	ErrUnknownStandard = errors.New("unknown standard")
	ErrUnknownBoard    = errors.New("unknown board")
)

var schoolBoards = []string{"CBSE", "ICSE", "State Board"}

var standards = []types.StandardDescriptor{
	{ID: "7th", Label: "7th Standard", Boards: schoolBoards},
	{ID: "8th", Label: "8th Standard", Boards: schoolBoards},
	{ID: "9th", Label: "9th Standard", Boards: schoolBoards},
	{ID: "10th", Label: "10th Standard", Boards: schoolBoards},
	{ID: "neet", Label: "NEET", Boards: []string{}},
	{ID: "jee", Label: "JEE", Boards: []string{}},
}

// Standards returns a copy of the catalog in display order
func Standards() []types.StandardDescriptor {
	out := make([]types.StandardDescriptor, len(standards))
	for i, std := range standards {
		out[i] = types.StandardDescriptor{
			ID:     std.ID,
			Label:  std.Label,
			Boards: append([]string{}, std.Boards...),
		}
	}
	return out
}

// Lookup finds a standard by ID
func Lookup(id string) (types.StandardDescriptor, bool) {
	for _, std := range Standards() {
		if std.ID == id {
			return std, true
		}
	}
	return types.StandardDescriptor{}, false
}

// HasBoard reports whether board belongs to the standard. Standards without
// boards accept only the empty board.
func HasBoard(standardID, board string) bool {
	std, ok := Lookup(standardID)
	if !ok {
		return false
	}
	if len(std.Boards) == 0 {
		return board == ""
	}
	for _, b := range std.Boards {
		if b == board {
			return true
		}
	}
	return false
}

// DefaultScope is the first standard with its first board
func DefaultScope() types.Scope {
	return ScopeFor(standards[0].ID)
}

// ScopeFor returns the scope a standard opens on: its first board, if any.
func ScopeFor(standardID string) types.Scope {
	std, ok := Lookup(standardID)
	if !ok {
		return types.Scope{}
	}
	scope := types.Scope{Standard: std.ID}
	if len(std.Boards) > 0 {
		scope.Board = std.Boards[0]
	}
	return scope
}

// ValidateScope checks a scope against the catalog
func ValidateScope(scope types.Scope) error {
	if _, ok := Lookup(scope.Standard); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownStandard, scope.Standard)
	}
	if !HasBoard(scope.Standard, scope.Board) {
		return fmt.Errorf("%w: %q for standard %q", ErrUnknownBoard, scope.Board, scope.Standard)
	}
	return nil
}
