package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"kycflow/pkg/types"
)

func (s *Service) writeJSON(w http.ResponseWriter, status int, body types.APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.WithError(err).Error("failed to write response")
	}
}

func (s *Service) respondData(w http.ResponseWriter, status int, data any) {
	s.writeJSON(w, status, types.APIResponse{Success: true, Data: data})
}

// respondError writes err as an error envelope. Anything that is not an
// APIErrors is reported as a system error and logged.
func (s *Service) respondError(w http.ResponseWriter, r *http.Request, err error) {
	var apiErrs types.APIErrors
	if !errors.As(err, &apiErrs) || len(apiErrs) == 0 {
		s.logger.WithError(err).WithField("request_id", requestIDFromContext(r.Context())).Error("unhandled error")
		apiErrs = s.apiError(types.CodeSystemError, types.CauseSystemError, "")
	}

	s.writeJSON(w, apiErrs.HTTPStatus(), types.APIResponse{Errors: apiErrs})
}

func (s *Service) apiError(code, cause, detail string) types.APIErrors {
	return types.APIErrors{{
		Entity: s.config.ErrorEntity,
		Code:   code,
		Cause:  cause,
		Detail: detail,
	}}
}

func (s *Service) invalidBody(detail string) types.APIErrors {
	return s.apiError(types.CodeInvalidInput, types.CauseInvalidRequestBody, detail)
}
