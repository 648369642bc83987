package compiler

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/mini-maxit/grader/internal/config"
	"github.com/mini-maxit/grader/internal/stages/executor"
	"github.com/mini-maxit/grader/internal/stages/packager"
	"github.com/mini-maxit/grader/pkg/constants"
	customErr "github.com/mini-maxit/grader/pkg/errors"
	"github.com/mini-maxit/grader/pkg/languages"
	"go.uber.org/zap"
)

type Compiler interface {
	// CompileSolutionIfNeeded builds the workspace source for compiled languages and is a no-op otherwise.
	CompileSolutionIfNeeded(
		ctx context.Context,
		langType languages.LanguageType,
		ws *packager.Workspace,
		messageID string,
	) error
}

// CompilationError carries the toolchain diagnostic of a failed build.
type CompilationError struct {
	Diagnostic string
	TimedOut   bool
}

func (e *CompilationError) Error() string {
	return fmt.Sprintf("%s: %s", customErr.ErrCompilationFailed, e.Diagnostic)
}

func (e *CompilationError) Unwrap() error {
	return customErr.ErrCompilationFailed
}

type compiler struct {
	executor  executor.Executor
	toolchain config.ToolchainConfig
}

func NewCompiler(executor executor.Executor, toolchain config.ToolchainConfig) Compiler {
	return &compiler{
		executor:  executor,
		toolchain: toolchain,
	}
}

// LanguageCompiler is a language-specific compiler invoked internally.
type LanguageCompiler interface {
	Compile(ctx context.Context, ws *packager.Workspace, messageID string) error
}

func (c *compiler) initializeSolutionCompiler(langType languages.LanguageType) (LanguageCompiler, error) {
	switch langType {
	case languages.C:
		return NewCCompiler(c.executor, c.toolchain), nil
	case languages.CPP:
		return NewCppCompiler(c.executor, c.toolchain), nil
	case languages.JAVA:
		return NewJavaCompiler(c.executor, c.toolchain), nil
	default:
		return nil, customErr.ErrInvalidLanguageType
	}
}

func (c *compiler) CompileSolutionIfNeeded(
	ctx context.Context,
	langType languages.LanguageType,
	ws *packager.Workspace,
	messageID string,
) error {
	if langType.IsScriptingLanguage() {
		return nil
	}

	compiler, err := c.initializeSolutionCompiler(langType)
	if err != nil {
		return err
	}

	return compiler.Compile(ctx, ws, messageID)
}

// runCompiler executes a toolchain command and translates its result. A failed build
// is reported as *CompilationError and its diagnostic is saved to the workspace compile.err.
func runCompiler(
	ctx context.Context,
	exec executor.Executor,
	logger *zap.SugaredLogger,
	ws *packager.Workspace,
	command executor.Command,
) error {
	logger.Infof("Compiling %s [MsgID: %s]", ws.SourceFilePath, command.MessageID)
	res := exec.Execute(ctx, command)

	switch {
	case res.Err == nil:
		logger.Infof("Compilation successful [MsgID: %s]", command.MessageID)
		return nil
	case errors.Is(res.Err, customErr.ErrToolchainMissing):
		return res.Err
	case res.TimedOut:
		compErr := &CompilationError{
			Diagnostic: fmt.Sprintf(constants.RunnerMessageCompileTimeout, int(command.Timeout.Seconds())),
			TimedOut:   true,
		}
		saveDiagnostic(logger, ws, compErr.Diagnostic, command.MessageID)
		return compErr
	case errors.Is(res.Err, customErr.ErrNonZeroExitCode):
		diagnostic := strings.TrimSpace(res.Stderr)
		if diagnostic == "" {
			diagnostic = strings.TrimSpace(res.Stdout)
		}
		logger.Infof("Compilation failed with exit code %d [MsgID: %s]", res.ExitCode, command.MessageID)
		saveDiagnostic(logger, ws, diagnostic, command.MessageID)
		return &CompilationError{Diagnostic: diagnostic}
	default:
		logger.Errorf("Error during compilation. %s [MsgID: %s]", res.Err, command.MessageID)
		return res.Err
	}
}

func saveDiagnostic(logger *zap.SugaredLogger, ws *packager.Workspace, diagnostic, messageID string) {
	if err := os.WriteFile(ws.CompileErrFilePath, []byte(diagnostic), 0o644); err != nil {
		logger.Errorf("Could not write compile.err. %s [MsgID: %s]", err, messageID)
		return
	}
	logger.Debugf("Compilation error saved to %s [MsgID: %s]", ws.CompileErrFilePath, messageID)
}
