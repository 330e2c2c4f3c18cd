/*
Package session implements session management over the shared immutable story.

Every reader owns one Session: an independent clone of the story's initial
environment plus a current-scene pointer. The Manager serializes all mutation
of a single session behind a per-session lock while letting different sessions
proceed in parallel, and supports explicit bulk expiry of idle sessions.
*/
package session
