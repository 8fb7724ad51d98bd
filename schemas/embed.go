// Package schemas embeds the default MCU descriptor and peripheral schema
// documents into the binary, so boardlint works without schema files on
// the filesystem. A --schemas flag can point at an external directory with
// the same layout (mcu/*.json, peripherals/*.json) instead.
package schemas

import "embed"

//go:embed mcu/*.json peripherals/*.json
var FS embed.FS
