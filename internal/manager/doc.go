// Package manager coordinates one policy call end to end: adapt the
// observation, admit the request to the model runtime, infer, and decode.
// It is split into small files by concern:
//
//   - manager.go: core Manager type, constructor, simple getters.
//   - config.go: ManagerConfig and package defaults.
//   - types.go: lifecycle State and the Result of one call.
//   - errors.go: error types and helpers (IsTooBusy, IsDependencyUnavailable).
//   - admission.go: queueing in front of the single in-flight runtime slot.
//   - act.go: Act and Adapt entry points.
//   - drain.go: graceful drain on shutdown.
//   - status_report.go: Status reporting.
//   - events.go, eventpub_*.go: lifecycle event publishers.
//
// The adapter and decoder are pure; only the runtime call is serialized,
// since the runtime holds accelerator memory for one batch at a time.
package manager
