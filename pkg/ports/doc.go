/*
Package ports defines the driven ports (interfaces) of the sweep driver.

These interfaces decouple the enumeration loop from the machinery that runs
solver processes, so the driver can be exercised against a fake solver.

# Key Interfaces

  - Invoker: runs one solver invocation and reports its exit status.
  - Locker: keeps two drivers from sweeping on the same machine at once.
*/
package ports
