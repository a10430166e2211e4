// Package service contains the message-processing pipeline and the
// orchestration around it. It coordinates the queue, the detection backend,
// and the document store through narrow interfaces defined at the point of
// use, so every component can be tested against fakes.
//
// The pipeline is a fold over a batch: each inbound message independently
// goes through parse, validate, detect, publish, and is classified into a
// tagged Outcome. Failures are data, not control flow; they are routed to
// the dead-letter queue and can never interrupt the rest of the batch.
package service
