package model

// WorkflowState is a named stage in the procurement approval workflow.
// Stages are strictly ordered; comparisons go through StageIndex instead of
// string matching so that "at or past approval" checks live in exactly one
// place.
type WorkflowState string

const (
	StateDraft             WorkflowState = "draft"
	StatePendingReview     WorkflowState = "pending_review"
	StateVesselApproved    WorkflowState = "vessel_manager_approved"
	StateTechnicalApproved WorkflowState = "technical_manager_approved"
	StateProcurementReview WorkflowState = "procurement_review"
	// StateManagerApproved is the gate for purchase-order documents and for
	// switching from live items to the frozen approval snapshot.
	StateManagerApproved WorkflowState = "manager_approved"
	StatePOIssued        WorkflowState = "po_issued"
	StateDelivered       WorkflowState = "delivered"
	StateClosed          WorkflowState = "closed"
)

var stageOrder = []WorkflowState{
	StateDraft,
	StatePendingReview,
	StateVesselApproved,
	StateTechnicalApproved,
	StateProcurementReview,
	StateManagerApproved,
	StatePOIssued,
	StateDelivered,
	StateClosed,
}

// StageIndex returns the position of s in the workflow, or -1 when the
// backend sent a state this service does not know. Unknown states therefore
// sort before every known stage and never unlock stage-gated behavior.
func (s WorkflowState) StageIndex() int {
	for i, st := range stageOrder {
		if st == s {
			return i
		}
	}
	return -1
}

// AtOrPast reports whether s has reached stage t.
func (s WorkflowState) AtOrPast(t WorkflowState) bool {
	si := s.StageIndex()
	if si < 0 {
		return false
	}
	return si >= t.StageIndex()
}
