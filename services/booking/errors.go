package booking

import (
	"errors"

	"quickmechanic/utils"
)

// storeError maps session store failures onto workflow errors.
func storeError(sessionID string, err error) error {
	if errors.Is(err, ErrSessionNotFound) {
		return utils.NewSessionNotFound(sessionID)
	}
	return utils.NewNetworkFailure("booking session storage unavailable", err)
}

// asWorkflow keeps workflow errors as they are and wraps anything else as a
// retryable network failure.
func asWorkflow(msg string, err error) error {
	if _, ok := utils.AsWorkflowError(err); ok {
		return err
	}
	return utils.NewNetworkFailure(msg, err)
}
