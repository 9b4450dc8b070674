// Package options holds the process-wide settings consumed by the
// drawing collaborator. Rendering reads the store on every call; writes
// happen during program setup.
package options
