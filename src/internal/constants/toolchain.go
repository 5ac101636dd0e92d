package constants

// Managed toolchain
const (
	// EnvVerilatorRoot is the environment variable Verilator's build
	// integration reads to locate the active installation.
	EnvVerilatorRoot = "VERILATOR_ROOT"

	// InstallDirPrefix prefixes every managed install directory name.
	// A version built from tag v5.024 lives in verilator_v5.024.
	InstallDirPrefix = "verilator_"

	// DefaultRepoURL is the upstream Verilator repository.
	DefaultRepoURL = "https://github.com/verilator/verilator.git"
)
