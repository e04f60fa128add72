package presenter

import (
	"fmt"
	catalogerrors "tembea/internal/catalog/errors"
)

type State string

const (
	StateIdle      State = "idle"
	StateLoading   State = "loading"
	StatePopulated State = "populated"
	StateEmpty     State = "empty"
)

// Page tracks the lifecycle of one category view. PartialError is orthogonal
// to the state and may accompany Populated or Empty.
type Page struct {
	state   State
	partial bool
}

func NewPage() *Page {
	return &Page{state: StateIdle}
}

func (p *Page) State() State {
	return p.state
}

func (p *Page) PartialError() bool {
	return p.partial
}

// Begin starts a load. Allowed from Idle and from a settled state.
func (p *Page) Begin() error {
	if p.state == StateLoading {
		return fmt.Errorf("%w: %s -> %s", catalogerrors.ErrInvalidTransition, p.state, StateLoading)
	}
	p.state = StateLoading
	p.partial = false
	return nil
}

// Resolve settles a load with the number of items shown.
func (p *Page) Resolve(items int, partial bool) error {
	if p.state != StateLoading {
		return fmt.Errorf("%w: %s -> resolved", catalogerrors.ErrInvalidTransition, p.state)
	}
	if items > 0 {
		p.state = StatePopulated
	} else {
		p.state = StateEmpty
	}
	p.partial = partial
	return nil
}
