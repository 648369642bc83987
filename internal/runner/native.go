package runner

import (
	"context"

	"github.com/mini-maxit/grader/internal/stages/packager"
	"github.com/mini-maxit/grader/pkg/constants"
	"github.com/mini-maxit/grader/pkg/languages"
)

func runBinary(ws *packager.Workspace) (string, []string) {
	return ws.BinaryPath, nil
}

type CppRunner struct {
	baseRunner
}

func NewCppRunner(opts Options) *CppRunner {
	return &CppRunner{newBaseRunner(languages.CPP, opts, constants.ToolchainMissingCpp)}
}

func (r *CppRunner) Run(ctx context.Context, source, stdin, messageID string) Outcome {
	return r.run(ctx, source, stdin, messageID, sourceFileName(r.lang), runBinary)
}

type CRunner struct {
	baseRunner
}

func NewCRunner(opts Options) *CRunner {
	return &CRunner{newBaseRunner(languages.C, opts, constants.ToolchainMissingC)}
}

func (r *CRunner) Run(ctx context.Context, source, stdin, messageID string) Outcome {
	return r.run(ctx, source, stdin, messageID, sourceFileName(r.lang), runBinary)
}
