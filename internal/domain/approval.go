package domain

// ApprovalDecision is an admin's verdict on a pending submission.
type ApprovalDecision string

const (
	DecisionApprove ApprovalDecision = "approve"
	DecisionReject  ApprovalDecision = "reject"
)

// restaurantTransition describes one allowed approval state change.
type restaurantTransition struct {
	from     RestaurantApproval
	decision ApprovalDecision
}

// restaurantTransitions is the full approval state machine for restaurants.
// Approving an already approved restaurant is allowed and is a no-op, so
// repeated admin clicks do not error. Rejection removes the restaurant and
// its products, so there is no target state for it.
var restaurantTransitions = map[restaurantTransition]RestaurantApproval{
	{RestaurantPending, DecisionApprove}:             RestaurantApproved,
	{RestaurantCollaboratorPending, DecisionApprove}: RestaurantApproved,
	{RestaurantApproved, DecisionApprove}:            RestaurantApproved,
}

// NextRestaurantApproval resolves an admin decision against the current
// state. ok is false when the decision is not an approval transition;
// rejections are handled as deletions by the caller.
func NextRestaurantApproval(current RestaurantApproval, decision ApprovalDecision) (RestaurantApproval, bool) {
	next, ok := restaurantTransitions[restaurantTransition{current, decision}]
	return next, ok
}

// NextProductApproval resolves an admin decision for a product. Products
// have only two states, and approving twice is a no-op.
func NextProductApproval(current ProductApproval, decision ApprovalDecision) (ProductApproval, bool) {
	if decision != DecisionApprove {
		return current, false
	}
	return ProductApproved, true
}
