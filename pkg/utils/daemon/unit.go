package daemon

import (
	_ "embed"
	"strings"
)

//go:embed hykpi.service
var unitTemplate string

var (
	unitName = "hykpi.service"
	unitPath = "/etc/systemd/system/" + unitName
)

// unitEscaper escapes a value for use inside a double-quoted ExecStart
// argument: C-style escapes for quotes and backslashes, doubled specifiers
// and variable references.
var unitEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"%", "%%",
	"$", "$$",
)

// renderUnit fills the paths into the unit template. The template quotes
// each path.
func renderUnit(exePath, configPath, socketPath string) string {
	return strings.NewReplacer(
		"/path/to/hykpi", unitEscaper.Replace(exePath),
		"/path/to/config", unitEscaper.Replace(configPath),
		"/path/to/socket", unitEscaper.Replace(socketPath),
	).Replace(unitTemplate)
}
