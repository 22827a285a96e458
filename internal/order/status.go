package order

import (
	"errors"

	"github.com/mgandara/pizzastore/internal/user"
)

type Status string

const (
	StatusIncomplete Status = "incomplete"
	StatusInProgress Status = "in progress"
	StatusComplete   Status = "complete"
)

var (
	ErrBadStatus     = errors.New("unknown order status")
	ErrBadTransition = errors.New("status change not allowed")
)

func ValidStatus(s Status) bool {
	switch s {
	case StatusIncomplete, StatusInProgress, StatusComplete:
		return true
	}
	return false
}

// driverTransitions lists the single-step advances a driver may perform.
// Managers are not bound by the table: they may set any valid status.
var driverTransitions = map[[2]Status]bool{
	{StatusIncomplete, StatusInProgress}: true,
	{StatusInProgress, StatusComplete}:   true,
}

// CanTransition checks whether an actor with the given role may move an
// order from one status to another.
func CanTransition(from, to Status, role user.Role) error {
	if !ValidStatus(to) {
		return ErrBadStatus
	}
	switch role {
	case user.RoleManager:
		return nil
	case user.RoleDriver:
		if driverTransitions[[2]Status{from, to}] {
			return nil
		}
		return ErrBadTransition
	default:
		return user.ErrDenied
	}
}
