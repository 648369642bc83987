// Package runner turns source text into a supervised process run for each supported language.
package runner

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mini-maxit/grader/internal/config"
	"github.com/mini-maxit/grader/internal/logger"
	"github.com/mini-maxit/grader/internal/stages/compiler"
	"github.com/mini-maxit/grader/internal/stages/executor"
	"github.com/mini-maxit/grader/internal/stages/packager"
	"github.com/mini-maxit/grader/pkg/constants"
	customErr "github.com/mini-maxit/grader/pkg/errors"
	"github.com/mini-maxit/grader/pkg/languages"
	"go.uber.org/zap"
)

type Runner interface {
	Language() languages.LanguageType
	// Run materializes source in a fresh workspace, compiles it when the language needs it and
	// runs it with stdin under the run timeout. The workspace is removed before Run returns.
	Run(ctx context.Context, source, stdin, messageID string) Outcome
}

// Options are the collaborators shared by every runner.
type Options struct {
	Packager  packager.Packager
	Compiler  compiler.Compiler
	Executor  executor.Executor
	Toolchain config.ToolchainConfig
}

// NewOptions builds the default collaborators for the given toolchain configuration.
func NewOptions(toolchain config.ToolchainConfig) Options {
	exec := executor.NewExecutor(toolchain.MaxOutputBytes)
	return Options{
		Packager:  packager.NewPackager(toolchain.WorkspaceRoot),
		Compiler:  compiler.NewCompiler(exec, toolchain),
		Executor:  exec,
		Toolchain: toolchain,
	}
}

func New(lang languages.LanguageType, opts Options) (Runner, error) {
	switch lang {
	case languages.PYTHON:
		return NewPythonRunner(opts), nil
	case languages.JAVASCRIPT:
		return NewJavaScriptRunner(opts), nil
	case languages.CPP:
		return NewCppRunner(opts), nil
	case languages.JAVA:
		return NewJavaRunner(opts), nil
	case languages.C:
		return NewCRunner(opts), nil
	default:
		return nil, customErr.ErrInvalidLanguageType
	}
}

// NewRunners returns a runner for every supported language.
func NewRunners(opts Options) map[languages.LanguageType]Runner {
	runners := make(map[languages.LanguageType]Runner, len(languages.LanguageExtensionMap))
	for lang := range languages.LanguageExtensionMap {
		r, err := New(lang, opts)
		if err != nil {
			continue
		}
		runners[lang] = r
	}
	return runners
}

// commandFunc returns the executable and arguments that run a prepared workspace.
type commandFunc func(ws *packager.Workspace) (string, []string)

type baseRunner struct {
	lang           languages.LanguageType
	opts           Options
	missingMessage string
	// syntaxSignatures mark stderr of an interpreter that rejected the source before running it.
	syntaxSignatures []string
	logger           *zap.SugaredLogger
}

func newBaseRunner(lang languages.LanguageType, opts Options, missingMessage string) baseRunner {
	return baseRunner{
		lang:           lang,
		opts:           opts,
		missingMessage: missingMessage,
		logger:         logger.NewNamedLogger("runner"),
	}
}

func (b *baseRunner) Language() languages.LanguageType {
	return b.lang
}

func (b *baseRunner) run(
	ctx context.Context,
	source, stdin, messageID, fileName string,
	command commandFunc,
) Outcome {
	start := time.Now()
	outcome := b.runInWorkspace(ctx, source, stdin, messageID, fileName, command)
	outcome.Elapsed = time.Since(start)
	return outcome
}

func (b *baseRunner) runInWorkspace(
	ctx context.Context,
	source, stdin, messageID, fileName string,
	command commandFunc,
) Outcome {
	ws, err := b.opts.Packager.PrepareWorkspace(source, fileName, messageID)
	if err != nil {
		b.logger.Errorf("Failed to prepare workspace [MsgID: %s]: %s", messageID, err)
		return failure(KindInternal, err.Error())
	}
	defer func() {
		if err := ws.Cleanup(); err != nil {
			b.logger.Errorf("Failed to remove workspace %s [MsgID: %s]: %s", ws.DirPath, messageID, err)
		}
	}()

	if err := b.opts.Compiler.CompileSolutionIfNeeded(ctx, b.lang, ws, messageID); err != nil {
		return b.compileFailure(err, messageID)
	}

	path, args := command(ws)
	res := b.opts.Executor.Execute(ctx, executor.Command{
		MessageID: messageID,
		Path:      path,
		Args:      args,
		Dir:       ws.DirPath,
		Stdin:     stdin,
		Timeout:   b.opts.Toolchain.RunTimeout,
	})

	return b.runResult(res, messageID)
}

func (b *baseRunner) compileFailure(err error, messageID string) Outcome {
	var compErr *compiler.CompilationError
	switch {
	case errors.Is(err, customErr.ErrToolchainMissing):
		b.logger.Warnf("Compiler for %s is missing [MsgID: %s]", b.lang, messageID)
		return failure(KindToolchainMissing, b.missingMessage)
	case errors.As(err, &compErr):
		if compErr.TimedOut {
			return failure(KindCompilation, compErr.Diagnostic)
		}
		return failure(KindCompilation, fmt.Sprintf(constants.RunnerMessageCompilation, compErr.Diagnostic))
	default:
		b.logger.Errorf("Unexpected compilation error [MsgID: %s]: %s", messageID, err)
		return failure(KindInternal, err.Error())
	}
}

func (b *baseRunner) runResult(res executor.Result, messageID string) Outcome {
	switch {
	case res.Err == nil:
		return Outcome{Stdout: res.Stdout}
	case errors.Is(res.Err, customErr.ErrToolchainMissing):
		b.logger.Warnf("Runtime for %s is missing [MsgID: %s]", b.lang, messageID)
		return failure(KindToolchainMissing, b.missingMessage)
	case res.TimedOut:
		seconds := int(b.opts.Toolchain.RunTimeout.Seconds())
		return failure(KindTimeout, fmt.Sprintf(constants.RunnerMessageTimeout, seconds))
	case errors.Is(res.Err, customErr.ErrNonZeroExitCode):
		stderr := strings.TrimSpace(res.Stderr)
		if stderr == "" {
			stderr = fmt.Sprintf(constants.RunnerMessageNonZeroExitCode, res.ExitCode)
		}
		if b.isSyntaxError(stderr) {
			return failure(KindCompilation, stderr)
		}
		return failure(KindRuntime, stderr)
	default:
		b.logger.Errorf("Unexpected execution error [MsgID: %s]: %s", messageID, res.Err)
		return failure(KindInternal, res.Err.Error())
	}
}

func (b *baseRunner) isSyntaxError(stderr string) bool {
	for _, signature := range b.syntaxSignatures {
		if strings.Contains(stderr, signature) {
			return true
		}
	}
	return false
}

func sourceFileName(lang languages.LanguageType) string {
	ext, err := lang.Extension()
	if err != nil {
		return constants.SolutionFileBaseName
	}
	return constants.SolutionFileBaseName + ext
}
