// Package rekognition integrates with the AWS Rekognition custom-labels
// backend. It contains the label detector used per message and the model
// lifecycle controller that starts and stops the pay-per-use model around
// a processing run. Both talk to the backend through a narrow client
// interface so they can be tested against fakes.
package rekognition
