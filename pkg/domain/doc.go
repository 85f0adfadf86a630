/*
Package domain contains the core domain models of the Turing engine.

It defines the fundamental entities of a deterministic Turing machine, such as
States, Symbols, Directions, the Transition table and the Execution snapshot
(Configuration). This package is kept pure and free of external dependencies
like I/O or persistence, following Hexagonal Architecture principles.

# Key Entities

  - Definition: The declarative description of a machine (alphabets, states, transitions).
  - Tape: An immutable, two-way extensible sequence of symbols with a read/write head.
  - Configuration: A snapshot of execution (current State + Tape).
  - Session: A persisted, step-by-step execution of a machine over one input.
*/
package domain
