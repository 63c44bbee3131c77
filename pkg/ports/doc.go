/*
Package ports defines the driven ports (interfaces) of the airdesk agent.

These interfaces decouple the dialogue core from external implementations, allowing
the agent to work with various session backends, airline data sources and action sinks.

# Key Interfaces

  - SessionStore: persists and loads the conversational Session.
  - DistributedLocker: serializes turns for one session across replicas.
  - FlightCatalog / BookingRepository: the airline systems consulted by the flows.
  - LocationNormalizer: maps free-text city names to route codes.
  - ActionDispatcher: delivers the email/SMS actions the agent emits.
*/
package ports
