// compileinfoprint is imported by gwasbetas commands for the side effect of
// logging the build that is about to write results.
package compileinfoprint

import "github.com/carbocation/gwasbetas/compileinfo"

func init() {
	compileinfo.PrintToStdErr()
}
