package session

import "strings"

type State int

const (
	StateInitializing State = iota
	StateUnauthenticated
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateInitializing:
		return "initializing"
	case StateUnauthenticated:
		return "unauthenticated"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// RouteGroup partitions screens into the login flow and the signed-in area.
type RouteGroup string

const (
	GroupAuth RouteGroup = "(auth)"
	GroupTabs RouteGroup = "(tabs)"
)

type Route string

const (
	RouteEntry   Route = "/"
	RouteHome    Route = "/(tabs)/home"
	RouteSearch  Route = "/(tabs)/search"
	RouteProfile Route = "/(tabs)/profile"
)

// Group reports which route group r belongs to. Everything outside
// "/(tabs)" is part of the login flow.
func (r Route) Group() RouteGroup {
	if strings.HasPrefix(string(r), "/"+string(GroupTabs)) {
		return GroupTabs
	}
	return GroupAuth
}

// RouteGuard returns where to redirect, if anywhere, for a user in state
// looking at a screen of group. It never redirects while initializing.
func RouteGuard(state State, group RouteGroup) (Route, bool) {
	switch {
	case state == StateUnauthenticated && group == GroupTabs:
		return RouteEntry, true
	case state == StateAuthenticated && group == GroupAuth:
		return RouteHome, true
	default:
		return "", false
	}
}
