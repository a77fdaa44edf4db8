package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	domainerrors "menvo.backend/internal/domain/errors"
	"menvo.backend/pkg/logger"
	"menvo.backend/pkg/utils"
)

// Success sends a success response
func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

// Paginated sends a list with its pagination meta
func Paginated(c *gin.Context, items interface{}, total int64, page, limit int) {
	p := utils.GetPaginationParams(page, limit)
	c.JSON(http.StatusOK, gin.H{
		"items": items,
		"meta":  utils.CalculateMeta(total, p.Page, p.Limit),
	})
}

// Error sends an error response. Plain sentinel errors are mapped to their HTTP status;
// anything unrecognized is logged and rendered as a 500.
func Error(c *gin.Context, err error) {
	appErr := toAppError(err)
	if appErr.Status >= http.StatusInternalServerError {
		logger.Error(c.Request.Context(), "request failed",
			zap.String("code", appErr.Code),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
	}

	body := gin.H{
		"code":    appErr.Code,
		"message": appErr.Message,
	}
	if len(appErr.Fields) > 0 {
		body["fields"] = appErr.Fields
	}
	c.JSON(appErr.Status, body)
}

// ErrorWithError sends an error response with a specific status and code
func ErrorWithError(c *gin.Context, status int, code string, message string) {
	c.JSON(status, gin.H{
		"code":    code,
		"message": message,
	})
}

// Abort renders err and stops the handler chain. Used by middleware.
func Abort(c *gin.Context, err error) {
	Error(c, err)
	c.Abort()
}

func toAppError(err error) *domainerrors.AppError {
	var appErr *domainerrors.AppError
	if errors.As(err, &appErr) && appErr.Status != 0 {
		return appErr
	}

	switch {
	case errors.Is(err, domainerrors.ErrNotFound):
		return domainerrors.NotFound("resource not found")
	case errors.Is(err, domainerrors.ErrConflict), errors.Is(err, domainerrors.ErrAlreadyExists):
		return domainerrors.Conflict("resource was modified or already exists")
	case errors.Is(err, domainerrors.ErrValidation), errors.Is(err, domainerrors.ErrInvalidInput):
		return domainerrors.BadRequest(err.Error())
	case errors.Is(err, domainerrors.ErrUnknownRole):
		return domainerrors.FieldError("role", "unknown role")
	case errors.Is(err, domainerrors.ErrInvalidCredentials):
		return domainerrors.NewAppError(http.StatusUnauthorized, domainerrors.CodeInvalidCredentials, "invalid email or password", err)
	case errors.Is(err, domainerrors.ErrTokenExpired):
		return domainerrors.NewAppError(http.StatusUnauthorized, domainerrors.CodeTokenExpired, "token expired", err)
	case errors.Is(err, domainerrors.ErrUnauthorized):
		return domainerrors.Unauthorized("authentication required")
	case errors.Is(err, domainerrors.ErrForbidden):
		return domainerrors.Forbidden("you do not have access to this resource")
	case errors.Is(err, domainerrors.ErrUpstream):
		return domainerrors.Upstream(err)
	}
	return domainerrors.InternalError(err)
}
