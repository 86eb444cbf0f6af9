package check_conflicts

import "fmt"

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: request is required", ErrInvalidInput)
	}

	// Нулевое время - признак того, что дата не была распарсена вызывающей стороной
	if req.CandidateStart.IsZero() {
		return fmt.Errorf("%w: candidate start is required", ErrInvalidInput)
	}

	if req.Exclude != nil && req.Exclude.ID <= 0 {
		return fmt.Errorf("%w: exclude id must be positive", ErrInvalidInput)
	}

	return nil
}
