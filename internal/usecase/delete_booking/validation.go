package delete_booking

import "fmt"

// validateRequest валидирует входные данные запроса
func validateRequest[T any](req *Request[T]) error {
	if req == nil {
		return fmt.Errorf("%w: request is required", ErrInvalidInput)
	}
	if req.ID <= 0 {
		return fmt.Errorf("%w: id must be positive", ErrInvalidInput)
	}
	if req.Current == nil {
		return fmt.Errorf("%w: current list is required", ErrInvalidInput)
	}
	return nil
}
