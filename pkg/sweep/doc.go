/*
Package sweep implements the benchmark sweep driver.

A Driver walks a domain.Grid in lexicographic (i, j) order, builds one
invocation per cell and hands it to a ports.Invoker, waiting for each solver
process to exit before starting the next. There is never more than one solver
running at a time.

	drv := sweep.New(process.NewInvoker(), sweep.WithSolver("./parallel"))
	if err := drv.Run(ctx); err != nil {
		log.Fatal(err)
	}
*/
package sweep
