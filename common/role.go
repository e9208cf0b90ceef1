package common

// Role is an enumeration for device node roles. A role records what kind of
// machine backs a node account; it carries no extra voting weight.
type Role int

const (
	_ Role = iota

	// RoleLaptop stands for the primary workstation the owner operates
	// directly.
	RoleLaptop

	// RolePhone stands for a mobile device enrolled as a voter.
	RolePhone

	// RolePi stands for an always-on single-board device, typically the
	// cheapest quorum member to keep online.
	RolePi

	// RoleCloud stands for a rented instance under the owner's control.
	RoleCloud

	// RoleFriend stands for an account operated by a trusted third party
	// outside the owner's own fleet.
	RoleFriend
)

// Valid checks if t is a valid node role.
func (t Role) Valid() bool {
	switch t {
	case RoleLaptop, RolePhone, RolePi, RoleCloud, RoleFriend:
		return true
	default:
		return false
	}
}

// String implements fmt.Stringer.
func (t Role) String() string {
	switch t {
	case RoleLaptop:
		return "laptop"
	case RolePhone:
		return "phone"
	case RolePi:
		return "pi"
	case RoleCloud:
		return "cloud"
	case RoleFriend:
		return "friend"
	default:
		return "unknown"
	}
}
