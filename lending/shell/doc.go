// Package shell provides the infrastructure shared by all lending feature slices:
// the handler contracts, HandlerResult, retry on concurrency conflicts, and the
// metrics, tracing, and logging helpers used by the observable wrappers.
//
// In Domain-Driven Design or Hexagonal Architecture terminology, this would be
// called the 'infrastructure' layer.
package shell
