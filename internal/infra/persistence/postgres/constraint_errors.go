package postgres

import (
	"strings"

	domainerrors "taskboard/internal/domain/errors"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type constraintKind int

const (
	constraintNone constraintKind = iota
	constraintUnique
	constraintNotNull
	constraintCheck
	constraintTooLong
)

// constraintMarkers match Postgres SQLSTATE codes and the wording used by Postgres and SQLite.
var constraintMarkers = []struct {
	kind    constraintKind
	markers []string
}{
	{constraintUnique, []string{"23505", "duplicate key", "unique constraint"}},
	{constraintNotNull, []string{"23502", "null value", "not null constraint"}},
	{constraintCheck, []string{"23514", "check constraint"}},
	{constraintTooLong, []string{"22001", "value too long"}},
}

// classifyConstraint prefers GORM's translated sentinels and falls back to the driver message.
func classifyConstraint(err error) constraintKind {
	switch {
	case err == nil:
		return constraintNone
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return constraintUnique
	case errors.Is(err, gorm.ErrCheckConstraintViolated):
		return constraintCheck
	}

	msg := strings.ToLower(err.Error())
	for _, group := range constraintMarkers {
		for _, marker := range group.markers {
			if strings.Contains(msg, marker) {
				return group.kind
			}
		}
	}

	return constraintNone
}

// writeErrorMapping describes how a repository reports failed inserts and updates.
type writeErrorMapping struct {
	duplicate error // nil when the table has no unique columns
	subject   string
}

var (
	userWriteErrors = writeErrorMapping{
		duplicate: domainerrors.ErrUserAlreadyExists,
		subject:   "user",
	}
	taskWriteErrors = writeErrorMapping{subject: "task"}
)

// translate maps err to a domain error. failed reports rejected input for this write.
func (m writeErrorMapping) translate(err error, failed *domainerrors.BaseError, details string) error {
	switch classifyConstraint(err) {
	case constraintUnique:
		if m.duplicate != nil {
			return errors.Wrap(m.duplicate, m.subject+" already exists")
		}
	case constraintNotNull, constraintCheck:
		return failed.WrapMessage("missing or invalid " + m.subject + " information")
	case constraintTooLong:
		return domainerrors.ErrValidationFailed.WrapMessage(m.subject + " field exceeds its column width")
	case constraintNone:
	}

	return domainerrors.NewDatabaseExecuteError(err, details)
}
