/*
Package observability provides lifecycle hooks for monitoring the agent.

It includes Prometheus collectors for turns, handoffs, lookups and confirmations,
structured-log hooks for auditing, and a combinator to attach several hook sets at once.
*/
package observability
