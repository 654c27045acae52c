// Package compileinfo reports which build of gwasbetas produced a set of
// harmonized files, so outputs can be traced back to a commit.
package compileinfo

import (
	"fmt"
	"os"
	"runtime/debug"
)

type CompileInfo struct {
	Binary     string
	Version    string
	GoVersion  string
	Commit     string
	CommitTime string
	Modified   bool
}

func (c CompileInfo) String() string {
	if c.Binary == "" {
		return "Build information is unavailable for this binary."
	}

	version := ""
	if c.Version != "" && c.Version != "(devel)" {
		version = " " + c.Version
	}

	commit := ""
	if c.Commit != "" {
		commit = fmt.Sprintf(" at commit %s (%s)", c.Commit, c.CommitTime)
	}

	mod := ""
	if c.Modified {
		mod = " The working tree had uncommitted changes."
	}

	return fmt.Sprintf("%s%s, built with %s%s.%s", c.Binary, version, c.GoVersion, commit, mod)
}

// Get reads the build settings embedded by the go tool. Fields are empty when
// the binary carries none, as in tests.
func Get() CompileInfo {
	out := CompileInfo{}

	z, ok := debug.ReadBuildInfo()
	if !ok {
		return out
	}

	out.GoVersion = z.GoVersion
	out.Binary = z.Path
	out.Version = z.Main.Version
	for _, s := range z.Settings {
		switch s.Key {
		case "vcs.revision":
			out.Commit = s.Value
		case "vcs.time":
			out.CommitTime = s.Value
		case "vcs.modified":
			out.Modified = s.Value == "true"
		}
	}

	return out
}

func PrintToStdErr() {
	fmt.Fprintln(os.Stderr, Get())
}
