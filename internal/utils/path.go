package utils

import (
	"strings"

	"github.com/nrjt/eduplatform/internal/types"
)

// JoinPath joins path parts using forward slashes regardless of host OS.
// Empty parts are skipped and each part is trimmed of leading/trailing slashes
// before the result is prefixed with "/".
func JoinPath(parts ...string) string {
	cleaned := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.Trim(part, "/")
		if part != "" {
			cleaned = append(cleaned, part)
		}
	}

	if len(cleaned) == 0 {
		return "/"
	}

	return "/" + strings.Join(cleaned, "/")
}

// ResourcePath builds <base>/<standard>/<board>/<folder>/<file> for a file
// that carries no link of its own. A scope without a board contributes only
// the standard segment.
func ResourcePath(base string, scope types.Scope, folderName, fileName string) string {
	return JoinPath(base, scope.Standard, scope.Board, folderName, fileName)
}
