// Package cloudadapter wraps the AWS SDK clients the orchestrator drives,
// one thin interface per service, mirroring the teacher's service-wrapper
// layout: an interface for the methods actually called, a struct embedding
// the real client, a constructor taking aws.Config, and passthrough
// methods. Keeping the interfaces narrow is what makes the orchestrator
// testable with hand-written fakes instead of a live AWS account.
package cloudadapter
