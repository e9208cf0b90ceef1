// Package policy decides how privileged operations are routed before any
// ballot is opened.
package policy

import "github.com/consentry-dev/consentry/common"

// Route is an enumeration for operation routing targets.
type Route int

const (
	_ Route = iota

	// RouteConsensus stands for a full quorum vote.
	RouteConsensus

	// RouteCached stands for reusing a recent matching verdict when one
	// exists, falling back to a full vote otherwise.
	RouteCached

	// RouteLocal stands for local execution without distributed agreement.
	RouteLocal
)

// String implements fmt.Stringer.
func (r Route) String() string {
	switch r {
	case RouteConsensus:
		return "consensus"
	case RouteCached:
		return "cached"
	case RouteLocal:
		return "local"
	default:
		return "unknown"
	}
}

// RequiresConsensus reports whether the operation category is dangerous
// enough to demand a full quorum vote regardless of criticality class.
func RequiresConsensus(t common.OpType) bool {
	switch t {
	case common.OpSudo, common.OpFileWrite, common.OpDevice:
		return true
	default:
		return false
	}
}

// RouteOf returns the routing target for an operation of the given category
// and criticality class. Security-critical classes and dangerous categories
// always take the consensus route.
func RouteOf(t common.OpType, c common.Class) Route {
	if c == common.ClassSecurity || RequiresConsensus(t) {
		return RouteConsensus
	}
	if c == common.ClassPerformance {
		return RouteCached
	}
	return RouteLocal
}
