/*
Package observability provides tools for monitoring a running sweep.

It includes Prometheus collectors and a progress snapshot, both fed through
domain.LifecycleHooks, and Combine to attach several hook sets to one driver.
The collectors count operational events (trials started, how they ended);
they do not measure the solver.
*/
package observability
