package compiler

import (
	"context"

	"github.com/mini-maxit/grader/internal/config"
	"github.com/mini-maxit/grader/internal/logger"
	"github.com/mini-maxit/grader/internal/stages/executor"
	"github.com/mini-maxit/grader/internal/stages/packager"
	"go.uber.org/zap"
)

type CppCompiler struct {
	executor  executor.Executor
	toolchain config.ToolchainConfig
	logger    *zap.SugaredLogger
}

func (e *CppCompiler) RequiresCompilation() bool {
	return true
}

func (e *CppCompiler) Compile(ctx context.Context, ws *packager.Workspace, messageID string) error {
	args := append([]string{}, e.toolchain.CppFlags...)
	args = append(args, ws.SourceFilePath, "-o", ws.BinaryPath)

	return runCompiler(ctx, e.executor, e.logger, ws, executor.Command{
		MessageID: messageID,
		Path:      e.toolchain.GppBin,
		Args:      args,
		Dir:       ws.DirPath,
		Timeout:   e.toolchain.CompileTimeout,
	})
}

func NewCppCompiler(executor executor.Executor, toolchain config.ToolchainConfig) *CppCompiler {
	return &CppCompiler{
		executor:  executor,
		toolchain: toolchain,
		logger:    logger.NewNamedLogger("cpp-compiler"),
	}
}
