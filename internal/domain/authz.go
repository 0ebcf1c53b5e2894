package domain

// Actor identifies who is performing a request. A zero Actor is anonymous.
type Actor struct {
	UserID string
	Role   Role
}

// IsAnonymous reports whether no authenticated user is attached.
func (a Actor) IsAnonymous() bool {
	return a.UserID == ""
}

// IsAdmin reports whether the actor has the admin role.
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// CanMutate reports whether the actor may modify or delete a resource owned
// by ownerID. Admins may mutate anything; everyone else only their own.
func (a Actor) CanMutate(ownerID string) bool {
	if a.IsAnonymous() {
		return false
	}
	return a.IsAdmin() || a.UserID == ownerID
}

// CanSee reports whether the actor may view a restaurant in the given
// approval state. Unapproved restaurants are visible to their owner and to
// admins only.
func (a Actor) CanSee(r Restaurant) bool {
	if r.Approval == RestaurantApproved {
		return true
	}
	return a.CanMutate(r.OwnerID)
}
