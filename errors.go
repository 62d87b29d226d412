package envcmd

import (
	"fmt"
	"strings"
)

// PathError reports that no file exists at the requested location.
// Path holds the path exactly as the caller supplied it, not the resolved form.
type PathError struct {
	Path string
}

// Error formats the failure with the original user-supplied path.
func (e *PathError) Error() string {
	return fmt.Sprintf("env-cmd: file does not exist at path: %s", e.Path)
}

// EnvironmentError reports that none of the requested rc-file environments
// exist in the loaded rc data.
type EnvironmentError struct {
	Path    string   // rc file the environments were looked up in
	Missing []string // requested names not present in the file
}

// Error lists the environment names that could not be found.
func (e *EnvironmentError) Error() string {
	return fmt.Sprintf("env-cmd: failed to find environments [%s] in %s",
		strings.Join(e.Missing, ", "), e.Path)
}
