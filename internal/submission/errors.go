package submission

import (
	"kycflow/pkg/types"
)

func (s *Service) fail(code, cause string) types.APIErrors {
	return types.APIErrors{{
		Entity: s.entity,
		Code:   code,
		Cause:  cause,
	}}
}

func (s *Service) invalid(cause string, err error) types.APIErrors {
	apiErrs := s.fail(types.CodeInvalidInput, cause)
	if err != nil {
		apiErrs[0].Detail = err.Error()
	}
	return apiErrs
}

func (s *Service) notFound(cause string) types.APIErrors {
	return s.fail(types.CodeNotFound, cause)
}

func (s *Service) storageError() types.APIErrors {
	return s.fail(types.CodeStorageError, types.CauseStorageError)
}

func (s *Service) persistenceError() types.APIErrors {
	return s.fail(types.CodePersistenceError, types.CausePersistenceError)
}
