// Package ungram embeds the built-in reference grammar used when no
// external .ungram file is supplied on the command line.
package ungram

import _ "embed"

//go:embed sqlite.ungram
var Default string
