// Package logger wraps logrus with an object|message layout shared by
// all stage components. Messages are funneled through a channel so hot
// per-frame paths never block on terminal output.
package logger

import (
	"bytes"
	"fmt"
	"reflect"

	"github.com/sirupsen/logrus"
)

type stringer interface {
	String() string
}

type logPair struct {
	logFn func(...any)
	obj   string
	msg   string
}

const (
	logSize   = 1000
	objSize   = 20
	timestamp = "2006/02/01 15:04:05"
)

var logCh = make(chan logPair, logSize)

func objToString(obj any) (objStr string) {
	if obj == nil {
		objStr = "NIL"
	} else if stringerObj, ok := obj.(stringer); ok {
		objStr = stringerObj.String()
	} else if objStr, ok = obj.(string); ok {
	} else {
		objStr = reflect.TypeOf(obj).Name()
	}
	return
}

// Init sets the log level and starts the consumer goroutine. Call it
// once before any component logs.
func Init(lvl logrus.Level) {
	logrus.SetLevel(lvl)
	logrus.SetFormatter(&logrus.TextFormatter{
		ForceColors:     true,
		FullTimestamp:   true,
		PadLevelText:    true,
		TimestampFormat: timestamp,
	})

	go func() {
		sb := new(bytes.Buffer)
		for pair := range logCh {
			if len(pair.obj) > objSize {
				pair.obj = pair.obj[:objSize]
			}
			fmt.Fprintf(sb, "|%20s|%-100s", pair.obj, pair.msg)
			pair.logFn(sb.String())
			sb.Reset()
		}
	}()
}

func send(logFn func(...any), object any, message string) {
	logCh <- logPair{
		logFn: logFn,
		obj:   objToString(object),
		msg:   message,
	}
}

func Debug(object any, message string) {
	if logrus.GetLevel() < logrus.DebugLevel {
		return
	}
	send(logrus.Debug, object, message)
}

func Debugf(object any, message string, args ...any) {
	if logrus.GetLevel() < logrus.DebugLevel {
		return
	}
	send(logrus.Debug, object, fmt.Sprintf(message, args...))
}

func Info(object any, message string) {
	if logrus.GetLevel() < logrus.InfoLevel {
		return
	}
	send(logrus.Info, object, message)
}

func Infof(object any, message string, args ...any) {
	if logrus.GetLevel() < logrus.InfoLevel {
		return
	}
	send(logrus.Info, object, fmt.Sprintf(message, args...))
}

func Warning(object any, message string) {
	if logrus.GetLevel() < logrus.WarnLevel {
		return
	}
	send(logrus.Warning, object, message)
}

func Warningf(object any, message string, args ...any) {
	if logrus.GetLevel() < logrus.WarnLevel {
		return
	}
	send(logrus.Warning, object, fmt.Sprintf(message, args...))
}

func Error(object any, message string) {
	if logrus.GetLevel() < logrus.ErrorLevel {
		return
	}
	send(logrus.Error, object, message)
}

func Errorf(object any, message string, args ...any) {
	if logrus.GetLevel() < logrus.ErrorLevel {
		return
	}
	send(logrus.Error, object, fmt.Sprintf(message, args...))
}
