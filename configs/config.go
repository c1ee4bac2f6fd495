package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/gofrs/uuid"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

const (
	envFileName   = ".env"
	defaultLogDir = ".l_g"
)

var InstanceId string

// LoadEnv loads the service env file into the process environment.
// Variables already set in the environment are left untouched. A missing
// or unreadable file is not fatal; the path that was loaded is returned,
// or "" when nothing was loaded.
func LoadEnv(service string) string {
	log.Infof("%s service configuration and env variables loading started ...", service)

	path := os.Getenv("ENV_FILE")
	if path == "" {
		wd, err := os.Getwd()
		if err != nil {
			log.Warnf("unable to resolve working directory: %s", err)
			return ""
		}

		found, ok := FindEnvFile(wd)
		if !ok {
			log.Debugf("no %s file found from %s upward, using process environment", envFileName, wd)
			return ""
		}
		path = found
	}

	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Debugf("env file %s does not exist, using process environment", path)
		} else {
			log.Warnf("unable to load env file %s: %s", path, err)
		}
		return ""
	}

	log.Infof("%s file loaded.", path)
	return path
}

// FindEnvFile walks from dir up to the filesystem root and returns the
// first .env file it meets.
func FindEnvFile(dir string) (string, bool) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", false
	}

	for {
		candidate := filepath.Join(dir, envFileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// Bootstrap prepares a service process. The env file goes first so that
// LOG_DIR and LOG_LEVEL set there reach Logging. Returns the instance id.
func Bootstrap(service string) string {
	LoadEnv(service)
	instanceId := CreateUniqueInstance(service)
	Logging(service + "_service_" + instanceId)
	return instanceId
}

// CreateUniqueInstance stores a fresh v4 id for this process.
func CreateUniqueInstance(service string) string {
	logger := log.WithField("service", service)

	id, err := uuid.NewV4()
	if err != nil {
		logger.Fatalf("unable to generate instance id: %s", err)
	}
	InstanceId = id.String()

	logger.WithField("instance_id", InstanceId).Info("instance id assigned")
	return InstanceId
}

func GetInstanceId() string {
	return InstanceId
}

// Logging sends the standard logger to <LOG_DIR>/<service>.log. When the
// folder or file cannot be opened the logger stays on stderr.
func Logging(service string) {
	logFolder := os.Getenv("LOG_DIR")
	if logFolder == "" {
		logFolder = defaultLogDir
	}

	log.SetFormatter(&log.TextFormatter{})
	log.SetLevel(logLevel())

	if err := os.MkdirAll(logFolder, 0755); err != nil {
		log.Warnf("unable to create folder for log %s", err)
		return
	}

	logFilePath := filepath.Join(logFolder, service+".log")

	file, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		log.Warnf("failed to open log file %s: %s", logFilePath, err)
		return
	}

	log.SetOutput(file)

	log.Infof("log to file started for service: %s", service)
}

func logLevel() log.Level {
	raw := os.Getenv("LOG_LEVEL")
	if raw == "" {
		return log.InfoLevel
	}

	level, err := log.ParseLevel(raw)
	if err != nil {
		log.Warnf("invalid LOG_LEVEL %q, falling back to info", raw)
		return log.InfoLevel
	}
	return level
}
