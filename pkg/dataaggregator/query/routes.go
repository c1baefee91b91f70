package query

// Routes lists every route known to the upstream API
type Routes struct{}
