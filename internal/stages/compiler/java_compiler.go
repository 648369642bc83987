package compiler

import (
	"context"

	"github.com/mini-maxit/grader/internal/config"
	"github.com/mini-maxit/grader/internal/logger"
	"github.com/mini-maxit/grader/internal/stages/executor"
	"github.com/mini-maxit/grader/internal/stages/packager"
	"go.uber.org/zap"
)

// JavaCompiler writes class files next to the source, so the workspace doubles as the classpath.
type JavaCompiler struct {
	executor  executor.Executor
	toolchain config.ToolchainConfig
	logger    *zap.SugaredLogger
}

func (e *JavaCompiler) RequiresCompilation() bool {
	return true
}

func (e *JavaCompiler) Compile(ctx context.Context, ws *packager.Workspace, messageID string) error {
	args := append([]string{}, e.toolchain.JavacFlags...)
	args = append(args, "-d", ws.DirPath, ws.SourceFilePath)

	return runCompiler(ctx, e.executor, e.logger, ws, executor.Command{
		MessageID: messageID,
		Path:      e.toolchain.JavacBin,
		Args:      args,
		Dir:       ws.DirPath,
		Timeout:   e.toolchain.CompileTimeout,
	})
}

func NewJavaCompiler(executor executor.Executor, toolchain config.ToolchainConfig) *JavaCompiler {
	return &JavaCompiler{
		executor:  executor,
		toolchain: toolchain,
		logger:    logger.NewNamedLogger("java-compiler"),
	}
}
