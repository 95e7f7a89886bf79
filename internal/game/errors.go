package game

import (
	"errors"
	"fmt"

	"blaze-and-steel/internal/component"
)

// Error kinds returned by controller operations. Rule errors from the system
// package are wrapped inside them, so errors.Is matches either level.
var (
	ErrInvalidAction        = errors.New("invalid action")
	ErrInsufficientResource = errors.New("insufficient resource")
	ErrPersistence          = errors.New("persistence failed")
)

// reject logs msg to the combat log and returns an error of the given kind.
func (g *Game) reject(kind error, cause error, msg string) error {
	g.addMessage(msg, component.ToneCombat)
	if cause == nil {
		return fmt.Errorf("%w: %s", kind, msg)
	}
	return fmt.Errorf("%w: %w", kind, cause)
}
