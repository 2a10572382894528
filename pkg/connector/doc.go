// Package connector holds the table connector factories and the pieces they
// share.
//
// # Architecture Overview
//
//   - core: The factory interfaces (TableFactory, SinkFactory, SourceFactory),
//     the host Context a factory resolves against, runtime mode mapping and the
//     sink and source descriptors a factory returns.
//
//   - registry: Factory discovery by identifier. Factories register a
//     constructor from an init function; the constructor receives the process
//     defaults once, when the factory is discovered.
//
//   - lakesoul: The LakeSoul factory. It requires the catalog_path and format
//     options, merges defaults, session and statement options in that order of
//     precedence and caches resolved descriptors by a fingerprint of their
//     inputs.
//
// # Error Handling
//
// Factories return errors from pkg/errors. Missing required options and bad
// session values are config errors, a malformed table or filter is a
// validation error and an AUTOMATIC runtime mode on a source is an
// execution_mode error:
//
//	desc, err := source.CreateSource(ctx, hostCtx)
//	if errors.IsModeAmbiguity(err) {
//		// ask the host to resolve the mode first
//	}
package connector
