package compiler

import (
	"context"

	"github.com/mini-maxit/grader/internal/config"
	"github.com/mini-maxit/grader/internal/logger"
	"github.com/mini-maxit/grader/internal/stages/executor"
	"github.com/mini-maxit/grader/internal/stages/packager"
	"go.uber.org/zap"
)

type CCompiler struct {
	executor  executor.Executor
	toolchain config.ToolchainConfig
	logger    *zap.SugaredLogger
}

func (e *CCompiler) RequiresCompilation() bool {
	return true
}

func (e *CCompiler) Compile(ctx context.Context, ws *packager.Workspace, messageID string) error {
	args := append([]string{}, e.toolchain.CFlags...)
	args = append(args, ws.SourceFilePath, "-o", ws.BinaryPath)

	return runCompiler(ctx, e.executor, e.logger, ws, executor.Command{
		MessageID: messageID,
		Path:      e.toolchain.GccBin,
		Args:      args,
		Dir:       ws.DirPath,
		Timeout:   e.toolchain.CompileTimeout,
	})
}

func NewCCompiler(executor executor.Executor, toolchain config.ToolchainConfig) *CCompiler {
	return &CCompiler{
		executor:  executor,
		toolchain: toolchain,
		logger:    logger.NewNamedLogger("c-compiler"),
	}
}
