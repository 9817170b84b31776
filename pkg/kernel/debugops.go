package kernel

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// artifactDirEnv is the environment variable naming the directory debug
// artifacts are written under; unset disables artifact storage entirely.
const artifactDirEnv = "FVM_STORE_ARTIFACT_DIR"

const maxArtifactNameLen = 256

// Log writes msg to the host's debug log, only meaningful when
// DebugEnabled reports true.
func (k *Kernel) Log(msg string) {
	vmlog.Info(msg)
}

// DebugEnabled reports whether this machine was built with actor
// debugging turned on.
func (k *Kernel) DebugEnabled() bool {
	return k.callManager.Context().Network.ActorDebugging
}

// StoreArtifact writes data to a debug artifact named name, under
// FVM_STORE_ARTIFACT_DIR/<machine>/<origin>/<nonce>/<actor>/<invocation>/name.
// It is best-effort: a write failure is logged, never returned as an
// error, since debug tooling must never perturb consensus-relevant
// execution.
func (k *Kernel) StoreArtifact(name string, data []byte) error {
	if err := validateArtifactName(name); err != nil {
		return err
	}

	dir, ok := os.LookupEnv(artifactDirEnv)
	if !ok {
		vmlog.Errorf("store_artifact was ignored, env var %s was not set", artifactDirEnv)
		return nil
	}

	path := filepath.Join(
		dir,
		k.Machine().MachineID(),
		fmt.Sprint(k.callManager.Origin()),
		fmt.Sprint(k.callManager.Nonce()),
		fmt.Sprint(k.receiver),
		fmt.Sprint(k.callManager.InvocationCount()),
	)
	if err := os.MkdirAll(path, 0o755); err != nil {
		vmlog.Errorf("failed to make directory to store debug artifacts: %s", err)
		return nil
	}
	if err := os.WriteFile(filepath.Join(path, name), data, 0o644); err != nil {
		vmlog.Errorf("failed to store debug artifact: %s", err)
		return nil
	}
	vmlog.Infow("wrote debug artifact", "name", name, "dir", path)
	return nil
}

func validateArtifactName(name string) *SyscallError {
	switch {
	case len(name) > maxArtifactNameLen:
		return illegalArgf("debug artifact name should not exceed %d bytes", maxArtifactNameLen)
	case strings.ContainsAny(name, "/\\"):
		return illegalArgf("debug artifact name should not include any path separators")
	case len(name) == 0:
		return illegalArgf("debug artifact name should be at least one character")
	case name[0] == '.':
		return illegalArgf("debug artifact name should not start with a decimal '.'")
	default:
		return nil
	}
}
