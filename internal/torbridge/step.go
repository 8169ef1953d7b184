package torbridge

import "fmt"

// Step is a step of the bridge state machine.
type Step int

const (
	// StepAllocate allocates the tor configuration.
	StepAllocate = Step(iota)

	// StepSetVerifyArgs sets the command line used to verify the configuration.
	StepSetVerifyArgs

	// StepVerify runs tor with --verify-config.
	StepVerify

	// StepSetRunArgs sets the command line used to run tor.
	StepSetRunArgs

	// StepRun runs tor until it exits.
	StepRun
)

// These diagnostics are part of the host contract: hosts may match on
// them, so they MUST NOT change.
const (
	DiagnosticConfigNull    = "TorConfig was null."
	DiagnosticSetVerifyArgs = "Failed to set args for verification."
	DiagnosticVerify        = "Failed to verify args. Tor does not like a setting."
	DiagnosticSetRunArgs    = "Failed to set args to run."
	DiagnosticRun           = "Failed to run args."
)

var stepNames = map[Step]string{
	StepAllocate:      "tor_main_configuration_new",
	StepSetVerifyArgs: "tor_main_configuration_set_command_line(verify)",
	StepVerify:        "tor_run_main(verify)",
	StepSetRunArgs:    "tor_main_configuration_set_command_line(run)",
	StepRun:           "tor_run_main(run)",
}

var stepDiagnostics = map[Step]string{
	StepAllocate:      DiagnosticConfigNull,
	StepSetVerifyArgs: DiagnosticSetVerifyArgs,
	StepVerify:        DiagnosticVerify,
	StepSetRunArgs:    DiagnosticSetRunArgs,
	StepRun:           DiagnosticRun,
}

// String implements fmt.Stringer.
func (s Step) String() string {
	if name, found := stepNames[s]; found {
		return name
	}
	return fmt.Sprintf("Step(%d)", int(s))
}

// Diagnostic returns the host-visible diagnostic for a failure of this step.
func (s Step) Diagnostic() string {
	return stepDiagnostics[s]
}

// StepError is the error returned when a native step fails.
type StepError struct {
	// Step is the step that failed.
	Step Step

	// Code is the nonzero code returned by tor. It is always
	// zero for [StepAllocate], which fails by returning NULL.
	Code int
}

var _ error = &StepError{}

// Error implements error. The returned string is the fixed diagnostic
// for the step and does not include the native code.
func (err *StepError) Error() string {
	return err.Step.Diagnostic()
}
