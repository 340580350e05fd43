// Package pipeline fans a molecule library out to a bounded worker pool,
// categorizes every record and returns the results in library order.
//
// The only contract to implement is category.Categorizer. Per-record
// failures are data, not errors: they come back as an empty set plus a
// *category.Error and are logged as warnings, so one bad molecule never
// stalls the batch.
package pipeline
