package events

// Route lifecycle kinds.
const (
	// RouteRegistered is dispatched when a route is added to a router.
	RouteRegistered Kind = "route:registered"

	// RouteUnregistered is dispatched when a route is removed.
	RouteUnregistered Kind = "route:unregistered"

	// RouteMatched is dispatched when a request resolves to a route.
	RouteMatched Kind = "route:matched"

	// RouteNotFound is dispatched when a request resolves to no route.
	RouteNotFound Kind = "route:notfound"
)
