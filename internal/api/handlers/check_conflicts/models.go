package check_conflicts

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	checkConflicts "github.com/m04kA/SMC-SchedulingService/internal/usecase/check_conflicts"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

var errMissingStart = errors.New("start or date is required")

// CheckConflictsRequest HTTP request model.
// Время начала задается либо Start (RFC3339), либо парой Date + StartTime в часовом поясе сервиса.
type CheckConflictsRequest struct {
	Start        string          `json:"start,omitempty"`     // "2025-06-16T10:00:00-07:00"
	Date         string          `json:"date,omitempty"`      // "2025-06-16"
	StartTime    string          `json:"startTime,omitempty"` // "10:00"
	ActivityType string          `json:"activityType"`
	IsVirtual    bool            `json:"isVirtual"`
	Location     *string         `json:"location,omitempty"`
	Exclude      *domain.ItemRef `json:"exclude,omitempty"`
}

// CheckConflictsResponse HTTP response model
type CheckConflictsResponse struct {
	Conflict               bool            `json:"conflict"`
	ConflictsWith          *domain.ItemRef `json:"conflictsWith,omitempty"`
	CandidateEnd           string          `json:"candidateEnd"`
	CandidateBufferMinutes int             `json:"candidateBufferMinutes"`
	KnownType              bool            `json:"knownType"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CheckConflictsRequest) ToUseCaseRequest(loc *time.Location) (*checkConflicts.Request, error) {
	var start time.Time
	var err error

	switch {
	case r.Start != "":
		start, err = types.ParseInstant(r.Start)
	case r.Date != "":
		start, err = types.MergeDateAndTimeStrings(r.Date, r.StartTime, loc)
	default:
		err = errMissingStart
	}
	if err != nil {
		return nil, err
	}

	return &checkConflicts.Request{
		CandidateStart: start,
		ActivityType:   r.ActivityType,
		IsVirtual:      r.IsVirtual,
		Location:       r.Location,
		Exclude:        r.Exclude,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *checkConflicts.Response, loc *time.Location) *CheckConflictsResponse {
	return &CheckConflictsResponse{
		Conflict:               resp.Conflict,
		ConflictsWith:          resp.ConflictsWith,
		CandidateEnd:           resp.CandidateEnd.In(loc).Format(time.RFC3339),
		CandidateBufferMinutes: resp.CandidateBufferMinutes,
		KnownType:              resp.KnownType,
	}
}
