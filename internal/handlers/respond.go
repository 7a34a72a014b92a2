package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	apierrors "taskhub/internal/errors"
	"taskhub/internal/services"
)

// parseID extracts the numeric :id path parameter. A zero return with false
// means the error response has already been written.
func parseID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid id")
		return 0, false
	}
	return id, true
}

// respondServiceError translates a service error into the matching HTTP
// response. Unknown errors are infrastructure failures and surface as 500.
func respondServiceError(c *gin.Context, err error) {
	var nf *services.NotFoundError

	switch {
	case errors.As(err, &nf):
		apierrors.NotFound(c, nf.Error())
	case errors.Is(err, services.ErrUsernameTaken),
		errors.Is(err, services.ErrEmailTaken),
		errors.Is(err, services.ErrRoleNameTaken):
		apierrors.Conflict(c, err.Error())
	// A concurrent duplicate can slip past the service pre-check and hit the
	// unique index; the translated store error still answers as a conflict.
	case errors.Is(err, gorm.ErrDuplicatedKey):
		apierrors.Conflict(c, "")
	case errors.Is(err, services.ErrInvalidCredentials):
		apierrors.Unauthorized(c, err.Error())
	case errors.Is(err, services.ErrRoleIDsEmpty),
		errors.Is(err, services.ErrUserIDsEmpty),
		errors.Is(err, services.ErrInvalidSortField),
		errors.Is(err, services.ErrInvalidOrder),
		errors.Is(err, services.ErrInvalidStatus),
		errors.Is(err, services.ErrTitleLength),
		errors.Is(err, services.ErrUsernameLength),
		errors.Is(err, services.ErrDueDateNotFuture),
		errors.Is(err, services.ErrPasswordConfirmation),
		errors.Is(err, services.ErrPasswordLength):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}
