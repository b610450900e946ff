package models

import "time"

type ARRequestStatus string

const (
	ARRequestPending  ARRequestStatus = "Pending"
	ARRequestApproved ARRequestStatus = "Approved"
	ARRequestRejected ARRequestStatus = "Rejected"
)

type ARRequest struct {
	ID           int64           `json:"id"`
	Product      int64           `json:"product"`
	Shop         int64           `json:"shop"`
	Status       ARRequestStatus `json:"status"`
	RequestDate  time.Time       `json:"request_date"`
	ApprovedDate *time.Time      `json:"approved_date,omitempty"`
	RejectedDate *time.Time      `json:"rejected_date,omitempty"`
}

var arTransitions = map[ARRequestStatus][]ARRequestStatus{
	ARRequestPending: {ARRequestApproved, ARRequestRejected},
}

func (s ARRequestStatus) Valid() bool {
	switch s {
	case ARRequestPending, ARRequestApproved, ARRequestRejected:
		return true
	}
	return false
}

// Terminal reports whether no transition leaves s.
func (s ARRequestStatus) Terminal() bool {
	return len(arTransitions[s]) == 0
}

// CanTransition reports whether a request in status s may move to next.
func (s ARRequestStatus) CanTransition(next ARRequestStatus) bool {
	for _, allowed := range arTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}
