package commonGo

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	logger "github.com/multiversx/mx-chain-logger-go"
	"github.com/multiversx/mx-chain-logger-go/file"
)

// AttachFileLogger mirrors the console log into a rotating file when
// saveLogFile is set, returning nil otherwise
func AttachFileLogger(
	log logger.Logger,
	defaultLogsPath string,
	logFilePrefix string,
	saveLogFile bool,
	workingDir string) (FileLoggingHandler, error) {
	err := logger.SetDisplayByteSlice(logger.ToHex)
	log.LogIfError(err)

	if !saveLogFile {
		return nil, nil
	}

	logFile, err := file.NewFileLogging(file.ArgsFileLogging{
		WorkingDir:      workingDir,
		DefaultLogsPath: defaultLogsPath,
		LogFilePrefix:   logFilePrefix,
	})
	if err != nil {
		return nil, fmt.Errorf("%w creating a log file", err)
	}

	return logFile, nil
}

// ReadEnvFile loads the .env file and fills the provided map with the values
// of its keys. Every key is mandatory: secrets and backend locations must not
// fall back to empty strings silently.
func ReadEnvFile(envFile string, m map[string]string) error {
	err := godotenv.Load(envFile)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", envFile, err)
	}

	for key := range m {
		value := os.Getenv(key)
		if len(value) == 0 {
			return fmt.Errorf("%s is not set in the .env file", key)
		}

		m[key] = value
	}

	return nil
}

// CronJobStarter runs the handler once immediately and then on every tick of
// the provided interval, until the context is done. Used for the session
// retention sweep.
func CronJobStarter(ctx context.Context, handler func(ctx context.Context), timeToCall time.Duration) {
	go func() {
		handler(ctx)

		ticker := time.NewTicker(timeToCall)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				handler(ctx)
			case <-ctx.Done():
				return
			}
		}
	}()
}
