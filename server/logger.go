package server

import (
	log "github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// InitLogger configures the global logrus logger. With a file path the
// output goes to a rotating file instead of stderr.
func InitLogger(filePath, level string) error {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return err
	}
	log.SetLevel(lvl)
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if filePath != "" {
		log.SetOutput(&lumberjack.Logger{
			Filename:   filePath,
			MaxSize:    10, // MB
			MaxBackups: 3,
			MaxAge:     7, // days
		})
	}
	return nil
}
