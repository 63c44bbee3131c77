/*
Package dialogue implements the airline agent's conversation logic.

A turn is routed in three steps: the global human-handoff check, the Intent
Router for sessions without an active intent, and otherwise the transition
table entry for the session's (intent, state) pair. Handlers are plain
functions of the session, the utterance and the injected airline systems;
they return the next session, a response and zero or more actions.

Keyword matching is substring based and driven by a Policy, so every trigger
word is configuration data rather than a literal in a handler.
*/
package dialogue
