// Package observable wraps command and query handlers with metrics, tracing, and logging,
// so that the handlers themselves only contain the Query -> Decide -> Append workflow.
//
// The wrappers are applied explicitly at wiring time:
//
//	coreHandler, err := issuebook.NewCommandHandler(store)
//
//	observableHandler, err := observable.NewCommandWrapper(
//		coreHandler,
//		observable.WithCommandMetrics[issuebook.Command, issuebook.Result](metricsCollector),
//		observable.WithCommandTracing[issuebook.Command, issuebook.Result](tracingCollector),
//		observable.WithCommandContextualLogging[issuebook.Command, issuebook.Result](contextualLogger),
//	)
//
//	result, err := observableHandler.Handle(ctx, command)
//
// Every option is optional. A wrapper without options only adds the timing overhead.
//
// A rejected command is a successful handler call with the business outcome "rejected",
// it is logged at info level and counted in commandhandler_rejected_operations_total.
// Errors are classified as canceled, timeout, concurrency_conflict, or error.
package observable
