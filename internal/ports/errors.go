package ports

import "fmt"

// UnavailableError reports a transport-level failure talking to a
// collaborator (connection refused, timeout, HTTP error status). For the
// search collaborator this is fatal; for the pricing collaborator the quote
// fetcher degrades the affected candidate instead.
type UnavailableError struct {
	Collaborator string
	Err          error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("%s collaborator unreachable: %v", e.Collaborator, e.Err)
}

func (e *UnavailableError) Unwrap() error { return e.Err }

// ContractError reports a malformed success payload from a collaborator.
// Partial interpretation risks silently wrong recommendations, so this is
// always fatal for the request.
type ContractError struct {
	Collaborator string
	Detail       string
}

func (e *ContractError) Error() string {
	return fmt.Sprintf("unexpected response format from %s collaborator: %s", e.Collaborator, e.Detail)
}
