package builder

import "log"

// logBuildError reports a failed file parse or merge. Per spec §7, an IO
// failure is logged and the affected unit of work is abandoned; other
// files proceed unaffected.
func logBuildError(path string, err error) {
	log.Printf("builder: failed to index %s: %v", path, err)
}
