/*
Package session implements session management and persistence orchestration.

It serializes turns that target the same session identifier: a turn's
load-modify-save cycle runs under a per-session mutex and, when configured,
a distributed lock so replicas sharing a backend serialize as well.
*/
package session
