package logging

import (
	"io"
	"io/ioutil"
	"log"
	"os"
	"sync"
)

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarning
	LevelError
	LevelNone
)

var (
	mx      sync.Mutex
	level   Level
	out     io.Writer = os.Stderr
	debug   *log.Logger
	info    *log.Logger
	warning *log.Logger
	errors  *log.Logger
)

func init() {
	flags := log.Ldate | log.Ltime | log.LUTC
	debug = log.New(ioutil.Discard, "D ", flags)
	info = log.New(ioutil.Discard, "I ", flags)
	warning = log.New(ioutil.Discard, "W ", flags)
	errors = log.New(ioutil.Discard, "E ", flags)

	SetLevel(LevelWarning)
}

// SetLevel enables all loggers at or above the given level.
func SetLevel(l Level) {
	mx.Lock()
	defer mx.Unlock()
	level = l
	apply()
}

// SetOutput redirects all enabled loggers to w.
func SetOutput(w io.Writer) {
	mx.Lock()
	defer mx.Unlock()
	out = w
	apply()
}

func apply() {
	for i, l := range []*log.Logger{debug, info, warning, errors} {
		if Level(i) >= level {
			l.SetOutput(out)
		} else {
			l.SetOutput(ioutil.Discard)
		}
	}
}

func Debug(msg string, v ...interface{}) {
	debug.Printf(msg, v...)
}

func Info(msg string, v ...interface{}) {
	info.Printf(msg, v...)
}

func Warning(msg string, v ...interface{}) {
	warning.Printf(msg, v...)
}

func Error(msg string, v ...interface{}) {
	errors.Printf(msg, v...)
}
