//go:build windows

package tray

import _ "embed"

//go:embed assets/icon.ico
var iconData []byte
