package binutil

import (
	"io"
	"os"

	"github.com/natefinch/lumberjack"

	"github.com/lee-vincent/spatialschema/engine/sglog"
)

// SetupSGLog setup the schemagen log system
func SetupSGLog(component string, logLevel string, logFile string, logStderr bool) {
	outputWriters := make([]io.Writer, 0, 2)
	if logFile != "" {
		var logFileWriter io.Writer
		logFileWriter = &lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    100, // megabytes
			MaxBackups: 100,
			MaxAge:     30, //days
			Compress:   true,
		}

		logFileWriter.(*lumberjack.Logger).Rotate() // rotate immediately
		outputWriters = append(outputWriters, logFileWriter)
	}

	if logStderr {
		outputWriters = append(outputWriters, os.Stderr)
	}

	if len(outputWriters) == 1 {
		sglog.SetOutput(outputWriters[0])
	} else if len(outputWriters) > 1 {
		sglog.SetOutput(io.MultiWriter(outputWriters...))
	}

	sglog.SetSource(component)
	sglog.Infof("Set log level to %s", logLevel)
	sglog.SetLevel(sglog.StringToLevel(logLevel))
}
