package model

import "fmt"

// ValidationError is a problem with user input. It is raised before any
// network call and is fixed by re-entering the field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// ContractError means the scoring service replied with something that does
// not honour the response contract. Retrying will not help.
type ContractError struct {
	Field   string
	Message string
}

func (e *ContractError) Error() string {
	if e.Field == "" {
		return "scoring service contract violation: " + e.Message
	}
	return fmt.Sprintf("scoring service contract violation: %s: %s", e.Field, e.Message)
}
