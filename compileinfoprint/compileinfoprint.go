// compileinfoprint is imported for the side effect of printing the mapthin
// version and build details to os.Stderr
package compileinfoprint

import "github.com/carbocation/mapthin/compileinfo"

func init() {
	compileinfo.PrintToStdErr()
}
