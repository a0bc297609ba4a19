package dynarr

import (
	"fmt"
	"os"

	"go.uber.org/zap"
)

// exit is replaced in tests.
var exit = os.Exit

// Must returns val or panics with err. It turns any vector call into a
// fail-fast one:
//
//	x := dynarr.Must(v.At(i))
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// Abort reports err on stderr and terminates the process with status 1.
// It does nothing when err is nil.
//
//	dynarr.Abort(v.PushBack(x))
func Abort(err error) {
	if err == nil {
		return
	}
	Logger().Error("fatal vector error", zap.Error(err))
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	exit(1)
}
