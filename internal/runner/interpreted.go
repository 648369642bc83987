package runner

import (
	"context"

	"github.com/mini-maxit/grader/internal/stages/packager"
	"github.com/mini-maxit/grader/pkg/constants"
	"github.com/mini-maxit/grader/pkg/languages"
)

type PythonRunner struct {
	baseRunner
}

func NewPythonRunner(opts Options) *PythonRunner {
	base := newBaseRunner(languages.PYTHON, opts, constants.ToolchainMissingPython)
	base.syntaxSignatures = []string{"SyntaxError", "IndentationError", "TabError"}
	return &PythonRunner{base}
}

func (r *PythonRunner) Run(ctx context.Context, source, stdin, messageID string) Outcome {
	return r.run(ctx, source, stdin, messageID, sourceFileName(r.lang), func(ws *packager.Workspace) (string, []string) {
		return r.opts.Toolchain.PythonBin, []string{ws.SourceFilePath}
	})
}

type JavaScriptRunner struct {
	baseRunner
}

func NewJavaScriptRunner(opts Options) *JavaScriptRunner {
	base := newBaseRunner(languages.JAVASCRIPT, opts, constants.ToolchainMissingJavaScript)
	base.syntaxSignatures = []string{"SyntaxError"}
	return &JavaScriptRunner{base}
}

func (r *JavaScriptRunner) Run(ctx context.Context, source, stdin, messageID string) Outcome {
	return r.run(ctx, source, stdin, messageID, sourceFileName(r.lang), func(ws *packager.Workspace) (string, []string) {
		return r.opts.Toolchain.NodeBin, []string{ws.SourceFilePath}
	})
}
