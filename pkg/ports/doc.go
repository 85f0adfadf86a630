/*
Package ports defines the driven ports (interfaces) of the turing module.

These interfaces decouple machines and sessions from concrete storage and
transport, so the same core works from files, loam repositories, memory or
redis.

# Key Interfaces

  - DefinitionLoader: retrieves machine definitions by name (file, loam, memory).
  - MachineProvider: hands out validated, ready to run machines (see pkg/registry).
  - SessionStore: persists step-by-step sessions.
  - DistributedLocker: serializes access to a session across instances.
  - Watchable: notifies about changes in a definition source.
*/
package ports
