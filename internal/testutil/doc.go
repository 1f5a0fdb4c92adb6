// Package testutil holds fluent builders used across tests to construct
// events and sessions without boilerplate. Not for production use.
package testutil
