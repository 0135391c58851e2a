package misc

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

var serviceInstance, _ = os.Hostname()

// SetupLogger configures the standard logrus logger from LOG_LEVEL and LOG_FORMAT.
func SetupLogger() {
	logger := logrus.StandardLogger()
	logger.Out = os.Stdout
	if strings.EqualFold(os.Getenv("LOG_FORMAT"), "json") {
		logger.Formatter = &logrus.JSONFormatter{}
	} else {
		logger.Formatter = &logrus.TextFormatter{FullTimestamp: true}
	}
	if level, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil {
		logger.SetLevel(level)
	}
	logger.AddHook(&DefaultFieldsHook{})
}

type DefaultFieldsHook struct {
}

func (hook *DefaultFieldsHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (hook *DefaultFieldsHook) Fire(e *logrus.Entry) error {
	e.Data["serviceName"] = GetServiceName()
	e.Data["serviceInstance"] = serviceInstance
	return nil
}

func GetServiceName() string {
	if name := os.Getenv("SERVICE_NAME"); name != "" {
		return name
	}
	return "iwadcs"
}
