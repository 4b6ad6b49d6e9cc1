package impl

import (
	domainerrors "taskboard/internal/domain/errors"
	"taskboard/internal/domain/repository"

	"github.com/pkg/errors"
)

// mapUserError turns a repository miss into the public not-found error and wraps anything else with message.
func mapUserError(err error, message string) error {
	if errors.Is(err, repository.ErrUserNotFound) {
		return domainerrors.ErrUserNotFound.WrapMessage(message)
	}

	return errors.Wrap(err, message)
}

// mapTaskError is mapUserError for tasks.
func mapTaskError(err error, message string) error {
	if errors.Is(err, repository.ErrTaskNotFound) {
		return domainerrors.ErrTaskNotFound.WrapMessage(message)
	}

	return errors.Wrap(err, message)
}
