package exception

import "github.com/atelierops/backoffice/internal/model"

// transitions is the exception status guard table. Resolved is terminal.
// Escalated stays an active problem, so it can still be resolved, but a
// resolved exception is never reopened.
var transitions = map[model.ExceptionStatus][]model.ExceptionStatus{
	model.ExceptionOpen:       {model.ExceptionInProgress, model.ExceptionEscalated, model.ExceptionResolved},
	model.ExceptionInProgress: {model.ExceptionEscalated, model.ExceptionResolved},
	model.ExceptionEscalated:  {model.ExceptionResolved},
	model.ExceptionResolved:   {},
}

// CanTransition reports whether moving from one status to another is allowed.
func CanTransition(from, to model.ExceptionStatus) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}
