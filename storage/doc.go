// Package storage defines the durable key-value backends that let a session
// survive process restarts, the way browser localStorage carries a dashboard
// session across tab reloads.
//
// Three backends are provided: an in-memory map (tests, and the degraded
// mode the session store falls back to when durable writes start failing), a
// BoltDB file for single-machine clients, and Redis for deployments where
// several kiosk processes share one signed-in session. All backends expose
// the same five-key contract; none of them is a security boundary.
package storage
