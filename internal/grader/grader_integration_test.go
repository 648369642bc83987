package grader_test

import (
	"context"
	"testing"
	"time"

	"github.com/mini-maxit/grader/internal/config"
	"github.com/mini-maxit/grader/internal/grader"
	"github.com/mini-maxit/grader/internal/runner"
	"github.com/mini-maxit/grader/internal/stages/verifier"
	"github.com/mini-maxit/grader/pkg/constants"
	"github.com/mini-maxit/grader/pkg/languages"
	"github.com/mini-maxit/grader/pkg/messages"
	"github.com/mini-maxit/grader/pkg/solution"
	"github.com/mini-maxit/grader/tests"
)

func TestSubmitIntegration_SyntaxErrorIsCompilationError(t *testing.T) {
	cases := []struct {
		lang   languages.LanguageType
		bin    string
		source string
	}{
		{languages.PYTHON, constants.DefaultPythonBin, "print(\n"},
		{languages.PYTHON, constants.DefaultPythonBin, "if True:\nprint(1)\n"},
		{languages.JAVASCRIPT, constants.DefaultNodeBin, "console.log((\n"},
	}

	for _, c := range cases {
		t.Run(c.lang.String(), func(t *testing.T) {
			tests.RequireBinaries(t, c.bin)
			opts := runner.NewOptions(config.ToolchainConfig{
				CompileTimeout: 10 * time.Second,
				RunTimeout:     5 * time.Second,
				WorkspaceRoot:  t.TempDir(),
				MaxOutputBytes: constants.DefaultMaxOutputBytes,
				PythonBin:      constants.DefaultPythonBin,
				NodeBin:        constants.DefaultNodeBin,
			})
			g := grader.NewGrader(runner.NewRunners(opts), verifier.NewVerifier())

			res, err := g.Submit(context.Background(), grader.Request{
				MessageID:  "grader-syntax",
				Language:   c.lang,
				SourceCode: c.source,
				TestCases:  []messages.TestCase{{Input: "1", ExpectedOutput: "1"}},
			})
			if err != nil {
				t.Fatalf("Submit returned error: %v", err)
			}
			if res.Status != solution.CompilationError || res.Message != "Compilation Error." {
				t.Fatalf("expected compilation error, got %s / %q", res.Status, res.Message)
			}
			if tr := res.TestResults[0]; tr.Error == nil || tr.ActualOutput != nil {
				t.Fatalf("expected the interpreter diagnostic as the error, got %+v", tr)
			}
		})
	}
}
