// seehuhn.de/go/glyphfont - build font files from glyph images
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package buildinfo describes the version of the running command.
package buildinfo

import (
	"runtime/debug"
)

// Info identifies the module a command was built from.
type Info struct {
	Module  string
	Version string // a release version or a shortened VCS revision
	Dirty   bool   // the working tree had local modifications
}

// Read returns the build information embedded by the Go toolchain.
// The second return value is false if no version is known.
func Read() (Info, bool) {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return Info{}, false
	}
	res := Info{Module: bi.Main.Path}
	if v := bi.Main.Version; v != "" && v != "(devel)" {
		res.Version = v
		return res, true
	}

	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			res.Version = s.Value
		case "vcs.modified":
			res.Dirty = s.Value == "true"
		}
	}
	if res.Version == "" {
		return res, false
	}
	if len(res.Version) > 8 {
		res.Version = res.Version[:8]
	}
	return res, true
}

// Short returns a one-line version string for a command, for example
// "generate-font (seehuhn.de/go/glyphfont v0.2.0)".
func Short(cmdName string) string {
	info, ok := Read()
	if !ok {
		return cmdName
	}
	v := info.Version
	if info.Dirty {
		v += "+dirty"
	}
	return cmdName + " (" + info.Module + " " + v + ")"
}
