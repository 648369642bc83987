package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/google/shlex"
	"github.com/joho/godotenv"
	"github.com/mini-maxit/grader/internal/logger"
	"github.com/mini-maxit/grader/pkg/constants"
	"go.uber.org/zap"
)

type Config struct {
	RabbitMQEnabled  bool
	RabbitMQURL      string
	ConsumeQueueName string
	MaxWorkers       int
	HTTPEnabled      bool
	HTTPAddr         string
	Toolchain        ToolchainConfig
}

// ToolchainConfig holds the host toolchain settings shared by all language runners.
type ToolchainConfig struct {
	CompileTimeout time.Duration
	RunTimeout     time.Duration
	WorkspaceRoot  string
	MaxOutputBytes int64

	PythonBin string
	NodeBin   string
	GccBin    string
	GppBin    string
	JavacBin  string
	JavaBin   string

	CFlags     []string
	CppFlags   []string
	JavacFlags []string
}

func NewConfig() *Config {
	logger := logger.NewNamedLogger("config")

	_, err := os.Stat(".env")
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			logger.Fatalf("failed to stat .env file with error: %v", err)
		}
	} else {
		if os.Getenv("ENV") == "PROD" {
			logger.Warn(".env file detected in production environment. This is not recommended.")
		}
		err = godotenv.Load(".env")
		if err != nil {
			logger.Fatalf("failed to load .env file with error: %v", err)
		}
	}

	rabbitmqEnabled, rabbitmqURL := rabbitmqConfig(logger)
	workerQueueName, maxWorkers := workerConfig(logger)
	httpEnabled, httpAddr := httpConfig(logger)

	return &Config{
		RabbitMQEnabled:  rabbitmqEnabled,
		RabbitMQURL:      rabbitmqURL,
		ConsumeQueueName: workerQueueName,
		MaxWorkers:       maxWorkers,
		HTTPEnabled:      httpEnabled,
		HTTPAddr:         httpAddr,
		Toolchain:        toolchainConfig(logger),
	}
}

func rabbitmqConfig(logger *zap.SugaredLogger) (bool, string) {
	enabled := envBool(logger, "RABBITMQ_ENABLED", constants.DefaultRabbitmqEnabled)

	rabbitmqHost := envString(logger, "RABBITMQ_HOST", constants.DefaultRabbitmqHost)
	rabbitmqPortStr := envString(logger, "RABBITMQ_PORT", constants.DefaultRabbitmqPort)
	rabbitmqPort, err := strconv.ParseUint(rabbitmqPortStr, 10, 16)
	if err != nil {
		logger.Fatalf("failed to parse RABBITMQ_PORT with error: %v", err)
	}
	rabbitmqUser := envString(logger, "RABBITMQ_USER", constants.DefaultRabbitmqUser)
	rabbitmqPassword := envString(logger, "RABBITMQ_PASSWORD", constants.DefaultRabbitmqPassword)

	rabbitmqURL := fmt.Sprintf("amqp://%s:%s@%s:%d/", rabbitmqUser, rabbitmqPassword, rabbitmqHost, rabbitmqPort)

	return enabled, rabbitmqURL
}

func workerConfig(logger *zap.SugaredLogger) (string, int) {
	workerQueueName := envString(logger, "WORKER_QUEUE_NAME", constants.DefaultWorkerQueueName)

	maxWorkers := envInt(logger, "MAX_WORKERS", constants.DefaultMaxWorkers)
	if maxWorkers <= 0 {
		logger.Fatalf("MAX_WORKERS must be positive, got %d", maxWorkers)
	}

	return workerQueueName, maxWorkers
}

func httpConfig(logger *zap.SugaredLogger) (bool, string) {
	enabled := envBool(logger, "HTTP_ENABLED", constants.DefaultHTTPEnabled)
	addr := envString(logger, "HTTP_ADDR", constants.DefaultHTTPAddr)

	return enabled, addr
}

func toolchainConfig(logger *zap.SugaredLogger) ToolchainConfig {
	compileTimeoutSec := envInt(logger, "COMPILE_TIMEOUT_SEC", constants.DefaultCompileTimeoutSec)
	runTimeoutSec := envInt(logger, "RUN_TIMEOUT_SEC", constants.DefaultRunTimeoutSec)
	if compileTimeoutSec <= 0 || runTimeoutSec <= 0 {
		logger.Fatalf("COMPILE_TIMEOUT_SEC and RUN_TIMEOUT_SEC must be positive")
	}

	workspaceRoot := os.Getenv("WORKSPACE_ROOT")
	if workspaceRoot == "" {
		workspaceRoot = os.TempDir()
		logger.Warnf("WORKSPACE_ROOT is not set, using default value %s", workspaceRoot)
	}

	return ToolchainConfig{
		CompileTimeout: time.Duration(compileTimeoutSec) * time.Second,
		RunTimeout:     time.Duration(runTimeoutSec) * time.Second,
		WorkspaceRoot:  workspaceRoot,
		MaxOutputBytes: int64(envInt(logger, "MAX_OUTPUT_BYTES", constants.DefaultMaxOutputBytes)),

		PythonBin: envString(logger, "PYTHON_BIN", constants.DefaultPythonBin),
		NodeBin:   envString(logger, "NODE_BIN", constants.DefaultNodeBin),
		GccBin:    envString(logger, "GCC_BIN", constants.DefaultGccBin),
		GppBin:    envString(logger, "GPP_BIN", constants.DefaultGppBin),
		JavacBin:  envString(logger, "JAVAC_BIN", constants.DefaultJavacBin),
		JavaBin:   envString(logger, "JAVA_BIN", constants.DefaultJavaBin),

		CFlags:     envFlags(logger, "C_FLAGS"),
		CppFlags:   envFlags(logger, "CPP_FLAGS"),
		JavacFlags: envFlags(logger, "JAVAC_FLAGS"),
	}
}

func envString(logger *zap.SugaredLogger, key, def string) string {
	value := os.Getenv(key)
	if value == "" {
		logger.Warnf("%s is not set, using default value %s", key, def)
		return def
	}
	return value
}

func envInt(logger *zap.SugaredLogger, key string, def int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		logger.Warnf("%s is not set, using default value %d", key, def)
		return def
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		logger.Fatalf("failed to parse %s with error: %v", key, err)
	}
	return value
}

func envBool(logger *zap.SugaredLogger, key string, def bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		logger.Warnf("%s is not set, using default value %t", key, def)
		return def
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		logger.Fatalf("failed to parse %s with error: %v", key, err)
	}
	return value
}

// envFlags splits a flag list using shell quoting rules. Unset means no extra flags.
func envFlags(logger *zap.SugaredLogger, key string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return nil
	}
	flags, err := shlex.Split(valueStr)
	if err != nil {
		logger.Fatalf("failed to parse %s with error: %v", key, err)
	}
	return flags
}
