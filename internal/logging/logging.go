package logging

import (
	"os"

	"github.com/labstack/gommon/log"
)

const header = `{"time":"${time_rfc3339}","level":"${level}","prefix":"${prefix}","file":"${short_file}","line":"${line}"}`

// New はechoとusecaseで共有するロガー。prodはINFO以上、それ以外はDEBUG。
func New(service string, env string) *log.Logger {
	l := log.New(service)
	l.SetOutput(os.Stdout)
	l.SetHeader(header)
	if env == "prod" {
		l.SetLevel(log.INFO)
	} else {
		l.SetLevel(log.DEBUG)
	}
	return l
}
