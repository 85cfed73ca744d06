package web

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"kingdomstudio/internal/application/content"
	"kingdomstudio/internal/application/site"
	"kingdomstudio/internal/domain/program"
	"kingdomstudio/internal/domain/registration"
)

// statusFor maps a controller error to a response status. Anything that
// is not a session, lookup or remote failure is a validation error,
// since those are the only other errors the controller returns.
func statusFor(err error) int {
	switch {
	case errors.Is(err, site.ErrSessionRequired):
		return http.StatusForbidden
	case errors.Is(err, program.ErrUnknownProgram):
		return http.StatusNotFound
	case content.IsRemoteWrite(err):
		return http.StatusBadGateway
	default:
		return http.StatusUnprocessableEntity
	}
}

// userMessage hides remote store details from visitors.
func userMessage(err error) string {
	if content.IsRemoteWrite(err) {
		return "The content store rejected the change. Please try again."
	}
	return err.Error()
}

// fieldErrors flattens registration schema failures for the form.
func fieldErrors(err error) map[string]string {
	var verr *registration.ValidationError
	if !errors.As(err, &verr) {
		return nil
	}
	fields := make(map[string]string, len(verr.Fields))
	for _, f := range verr.Fields {
		if _, seen := fields[f.Field]; !seen {
			fields[f.Field] = f.Message
		}
	}
	return fields
}

func (s *Server) logWriteFailure(op string, err error) {
	if content.IsRemoteWrite(err) {
		s.logger.Error("mutation_failed", zap.String("op", op), zap.Error(err))
		return
	}
	s.logger.Info("mutation_rejected", zap.String("op", op), zap.Error(err))
}
