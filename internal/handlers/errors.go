// internal/handlers/errors.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"

	"github.com/shopfront/storefront-api/internal/services"
	"github.com/shopfront/storefront-api/internal/utils"
)

// respondError maps service errors onto HTTP responses. Store failures are
// logged in full and reported to the client as a bare 500.
func respondError(c *gin.Context, err error) {
	var reqErr *services.RequestError
	if errors.As(err, &reqErr) {
		switch {
		case errors.Is(reqErr, services.ErrInvalidRequest):
			utils.BadRequestResponse(c, reqErr.Detail)
			return
		case errors.Is(reqErr, services.ErrNotFound):
			utils.NotFoundResponse(c, reqErr.Detail)
			return
		}
	}

	fields := logrus.Fields{
		"method":     c.Request.Method,
		"path":       c.Request.URL.Path,
		"request_id": utils.GetRequestIDFromContext(c),
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		fields["sqlstate"] = pgErr.Code
		if pgErr.ConstraintName != "" {
			fields["constraint"] = pgErr.ConstraintName
		}
	}

	logrus.WithError(err).WithFields(fields).Error("Request failed")
	utils.InternalErrorResponse(c)
}
