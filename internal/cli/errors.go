package cli

import (
	"errors"
	"log/slog"

	"github.com/thenoetrevino/cadence/internal/config"
	"github.com/thenoetrevino/cadence/internal/database"
	"github.com/thenoetrevino/cadence/internal/models"
	"github.com/thenoetrevino/cadence/internal/ordering"
	"github.com/thenoetrevino/cadence/internal/remote"
	itemservice "github.com/thenoetrevino/cadence/internal/services/item"
	"github.com/thenoetrevino/cadence/internal/services/reorder"
)

type errorClass struct {
	code       string
	exit       int
	suggestion string
}

func classify(err error) errorClass {
	switch {
	case errors.Is(err, ordering.ErrItemNotFound), errors.Is(err, database.ErrItemNotFound):
		return errorClass{"ITEM_NOT_FOUND", ExitNotFound, "List items with: cadence item list --scope <board:owner>"}
	case errors.Is(err, ordering.ErrInvalidBucket):
		return errorClass{"INVALID_BUCKET", ExitValidation, "Check the board's buckets with: cadence board show --scope <board:owner>"}
	case errors.Is(err, config.ErrUnknownBoard), errors.Is(err, itemservice.ErrInvalidScope):
		return errorClass{"UNKNOWN_BOARD", ExitValidation, "Scopes look like board:owner, with the board configured under `boards`"}
	case errors.Is(err, models.ErrNoBuckets):
		return errorClass{"EMPTY_BOARD", ExitValidation, "Give the board at least one bucket under `boards` in the config file"}
	case errors.Is(err, itemservice.ErrEmptyTitle), errors.Is(err, itemservice.ErrTitleTooLong),
		errors.Is(err, itemservice.ErrInvalidItemID), errors.Is(err, itemservice.ErrNegativePosition):
		return errorClass{"VALIDATION_ERROR", ExitValidation, ""}
	case errors.Is(err, ordering.ErrNotDense):
		return errorClass{"CORRUPT_BOARD", ExitDataErr, "Run: cadence board compact"}
	case errors.Is(err, reorder.ErrPersistenceFailed):
		if remote.IsUnavailable(err) {
			return errorClass{"REMOTE_UNAVAILABLE", ExitError, "Check that `cadence serve` is running at remote.url"}
		}
		return errorClass{"PERSISTENCE_FAILED", ExitError, "The board was restored; retry the move"}
	case remote.IsUnavailable(err):
		return errorClass{"REMOTE_UNAVAILABLE", ExitError, "Check that `cadence serve` is running at remote.url"}
	default:
		return errorClass{"ERROR", ExitError, ""}
	}
}

// Fail reports err through the formatter and returns a *CodedError carrying
// the exit code for it. Commands return its result from RunE.
func Fail(formatter *OutputFormatter, err error) error {
	class := classify(err)
	if fmtErr := formatter.ErrorWithSuggestion(class.code, err.Error(), class.suggestion); fmtErr != nil {
		slog.Error("failed to format error message", "error", fmtErr)
	}
	return &CodedError{Code: class.exit, Err: err}
}

// FailWithCode reports err under an explicit code, for errors found by the
// command itself such as bad flag values.
func FailWithCode(formatter *OutputFormatter, code string, exit int, err error, suggestion string) error {
	if fmtErr := formatter.ErrorWithSuggestion(code, err.Error(), suggestion); fmtErr != nil {
		slog.Error("failed to format error message", "error", fmtErr)
	}
	return &CodedError{Code: exit, Err: err}
}
