package controller

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domainerror "github.com/personal-finance/backend/internal/domain/error"
	"github.com/personal-finance/backend/internal/integration/entrypoint/dto"
	"github.com/personal-finance/backend/internal/integration/entrypoint/middleware"
)

var (
	errInvalidBudgetID = errors.New("invalid budget ID format")
	errInvalidPotID    = errors.New("invalid pot ID format")
)

// statusForKind maps a domain error kind to its HTTP status.
func statusForKind(kind domainerror.Kind) int {
	switch kind {
	case domainerror.KindNotFound:
		return http.StatusNotFound
	case domainerror.KindValidation:
		return http.StatusBadRequest
	case domainerror.KindLimitExceeded, domainerror.KindInsufficientFunds:
		return http.StatusUnprocessableEntity
	case domainerror.KindConflict:
		return http.StatusConflict
	case domainerror.KindUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err as an ErrorResponse. Errors that are not domain
// errors are logged and reported with the fallback message.
func respondError(ctx *gin.Context, err error, fallback string) {
	var domainErr *domainerror.Error
	if !errors.As(err, &domainErr) || domainErr.Kind == domainerror.KindInternal {
		slog.Error(fallback, "error", err, "path", ctx.FullPath())
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: fallback,
		})
		return
	}

	ctx.JSON(statusForKind(domainErr.Kind), dto.ErrorResponse{
		Error:   domainErr.Message,
		Code:    string(domainErr.Code),
		Details: domainErr.Details,
	})
}

func badRequest(ctx *gin.Context, message string, code domainerror.ErrorCode) {
	ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error: message,
		Code:  string(code),
	})
}

// requireUser returns the authenticated user, writing a 401 when absent.
func requireUser(ctx *gin.Context) (uuid.UUID, bool) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return uuid.Nil, false
	}
	return userID, true
}

// parseIDParam parses the :id path parameter, writing a 400 when malformed.
func parseIDParam(ctx *gin.Context, resource string) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid " + resource + " ID format",
		})
		return uuid.Nil, false
	}
	return id, true
}

// parseOptionalID parses an optional id reference. An empty value yields nil.
func parseOptionalID(value *string) (*uuid.UUID, error) {
	if value == nil || strings.TrimSpace(*value) == "" {
		return nil, nil
	}
	id, err := uuid.Parse(strings.TrimSpace(*value))
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// queryList collects a repeated or comma-separated query parameter.
// Both name and name[] are accepted.
func queryList(ctx *gin.Context, name string) []string {
	var values []string
	raw := append(ctx.QueryArray(name), ctx.QueryArray(name+"[]")...)
	for _, item := range raw {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				values = append(values, part)
			}
		}
	}
	return values
}

func queryInt(ctx *gin.Context, name string) int {
	value, err := strconv.Atoi(ctx.Query(name))
	if err != nil {
		return 0
	}
	return value
}

func queryBool(ctx *gin.Context, name string) (*bool, error) {
	raw := ctx.Query(name)
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, err
	}
	return &value, nil
}

func queryDecimal(ctx *gin.Context, name string) (*decimal.Decimal, error) {
	raw := ctx.Query(name)
	if raw == "" {
		return nil, nil
	}
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, err
	}
	return &value, nil
}

func queryDate(ctx *gin.Context, name string) (*time.Time, error) {
	raw := ctx.Query(name)
	return dto.ParseOptionalDate(&raw)
}
