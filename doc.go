/*
Package airdesk is a multi-turn airline self-service agent: flight booking, flight status and
booking cancellation, driven one utterance at a time.

Each call to Agent.Handle carries a session identifier and the user's text. The agent loads the
session, routes or advances it through an explicit per-intent state machine, persists the result
and returns the reply together with any side-effects (email, SMS) as Action descriptors. Delivery
of those actions belongs to the host, through an optional ports.ActionDispatcher.

# Usage

	agent, err := airdesk.New()
	if err != nil {
		log.Fatal(err)
	}

	reply, err := agent.Handle(ctx, "web-42", "I want to book a flight from Bengaluru to Delhi")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(reply.ResponseText)

Without options the agent keeps sessions in memory and serves the embedded demo airline data.
Use WithStore and WithLocker for Redis-backed, multi-instance deployments, and WithCatalog and
WithRepository to plug in real airline systems.

Turns of the same session are serialized: a second concurrent utterance waits for the first to
commit before it reads the session.
*/
package airdesk
