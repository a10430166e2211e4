package domain

// FailureReason classifies why a message could not be processed.
type FailureReason string

// Possible failure reasons.
const (
	FailureMalformedMessage FailureReason = "malformed_message"
	FailureMissingField     FailureReason = "missing_field"
	FailureBackend          FailureReason = "backend_error"
	FailurePublish          FailureReason = "publish_error"
	FailureUnknown          FailureReason = "unknown_error"
)

// Success describes one message that made it through detection and publication.
type Success struct {
	DocumentID    string          `json:"docUid"`
	Labels        DetectionResult `json:"labels"`
	PublishStatus int             `json:"publishStatus"`
}

// Failure describes one message that could not be processed. Message carries
// the original envelope untouched so it can be dead-lettered verbatim.
type Failure struct {
	Reason  FailureReason
	Err     error
	Message InboundMessage
}

// Outcome is the classified result of processing a single inbound message.
// Exactly one of Success or Failure is set.
type Outcome struct {
	Success *Success
	Failure *Failure
}

// NewSuccessOutcome builds a success outcome for a processed message.
func NewSuccessOutcome(documentID string, labels DetectionResult, publishStatus int) Outcome {
	return Outcome{Success: &Success{
		DocumentID:    documentID,
		Labels:        labels,
		PublishStatus: publishStatus,
	}}
}

// NewFailureOutcome builds a failure outcome carrying the original message.
func NewFailureOutcome(msg InboundMessage, reason FailureReason, err error) Outcome {
	return Outcome{Failure: &Failure{
		Reason:  reason,
		Err:     err,
		Message: msg,
	}}
}

// IsSuccess reports whether the outcome represents a processed message.
func (o Outcome) IsSuccess() bool {
	return o.Success != nil
}

// BatchReport aggregates the outcomes of one consumer invocation.
// Processed + Failed always equals the size of the consumed batch, and
// Successes preserves per-message processing order.
type BatchReport struct {
	Status    string    `json:"status"`
	Processed int       `json:"processed"`
	Failed    int       `json:"failed"`
	Successes []Success `json:"results"`
}
