// Package log provides the app's leveled loggers.
package log

import (
	stdlog "log"
	"os"

	"github.com/fatih/color"
)

var (
	Info  *stdlog.Logger
	Warn  *stdlog.Logger
	Error *stdlog.Logger
)

func init() {
	Info = stdlog.New(os.Stdout,
		color.GreenString("[INFO] "),
		stdlog.LstdFlags)
	Warn = stdlog.New(os.Stdout,
		color.YellowString("[WARN] "),
		stdlog.LstdFlags)

	Error = stdlog.New(os.Stderr,
		color.RedString("[ERROR] "),
		stdlog.LstdFlags)
}
