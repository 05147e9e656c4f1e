/*
Package pipeline composes the feature engineer, the risk scorer and the
monitoring aggregator into the single entry point the request layer calls.

Processing one transaction runs transform -> score -> record. A validation or
model failure short-circuits before record, so failed attempts never touch the
monitoring counters, and the error reaches the caller unchanged. The bulk
variant scores each element independently; one malformed transaction never
aborts the rest of the batch.

The service optionally consults an assessment cache (idempotent re-scoring by
transaction id) and persists high-risk assessments to an audit store for the
review workflow. Both collaborators are interfaces; nil disables them.
*/
package pipeline
