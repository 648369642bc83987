package runner_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/mini-maxit/grader/internal/config"
	"github.com/mini-maxit/grader/internal/runner"
	"github.com/mini-maxit/grader/internal/stages/compiler"
	"github.com/mini-maxit/grader/internal/stages/executor"
	"github.com/mini-maxit/grader/internal/stages/packager"
	"github.com/mini-maxit/grader/pkg/constants"
	pkgerrors "github.com/mini-maxit/grader/pkg/errors"
	"github.com/mini-maxit/grader/pkg/languages"
	"github.com/mini-maxit/grader/tests/mocks"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	root     string
	compiler *mocks.MockCompiler
	executor *mocks.MockExecutor
	opts     runner.Options
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	root := t.TempDir()
	f := &fixture{
		root:     root,
		compiler: mocks.NewMockCompiler(ctrl),
		executor: mocks.NewMockExecutor(ctrl),
	}
	f.opts = runner.Options{
		Packager: packager.NewPackager(root),
		Compiler: f.compiler,
		Executor: f.executor,
		Toolchain: config.ToolchainConfig{
			CompileTimeout: 10 * time.Second,
			RunTimeout:     5 * time.Second,
			WorkspaceRoot:  root,
			PythonBin:      constants.DefaultPythonBin,
			NodeBin:        constants.DefaultNodeBin,
			JavaBin:        constants.DefaultJavaBin,
		},
	}
	return f
}

func (f *fixture) assertNoArtifacts(t *testing.T) {
	t.Helper()
	entries, err := os.ReadDir(f.root)
	if err != nil {
		t.Fatalf("failed to read workspace root: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected no leftover artifacts, found %d", len(entries))
	}
}

func (f *fixture) newRunner(t *testing.T, lang languages.LanguageType) runner.Runner {
	t.Helper()
	r, err := runner.New(lang, f.opts)
	if err != nil {
		t.Fatalf("runner.New failed: %v", err)
	}
	if r.Language() != lang {
		t.Fatalf("expected runner for %s, got %s", lang, r.Language())
	}
	return r
}

func TestNew_InvalidLanguage(t *testing.T) {
	_, err := runner.New(languages.LanguageType(0), runner.Options{})
	if !errors.Is(err, pkgerrors.ErrInvalidLanguageType) {
		t.Fatalf("expected ErrInvalidLanguageType, got %v", err)
	}
}

func TestNewRunners_CoversAllLanguages(t *testing.T) {
	runners := runner.NewRunners(newFixture(t).opts)
	if len(runners) != len(languages.LanguageTypeMap) {
		t.Fatalf("expected %d runners, got %d", len(languages.LanguageTypeMap), len(runners))
	}
	for lang, r := range runners {
		if r.Language() != lang {
			t.Fatalf("runner registered for %s reports %s", lang, r.Language())
		}
	}
}

func TestRun_Success(t *testing.T) {
	f := newFixture(t)
	r := f.newRunner(t, languages.PYTHON)

	f.compiler.EXPECT().CompileSolutionIfNeeded(gomock.Any(), languages.PYTHON, gomock.Any(), "msg-1").Return(nil)
	f.executor.EXPECT().Execute(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, cmd executor.Command) executor.Result {
			if cmd.Path != constants.DefaultPythonBin {
				t.Fatalf("expected python binary, got %s", cmd.Path)
			}
			if len(cmd.Args) != 1 || filepath.Base(cmd.Args[0]) != "solution.py" {
				t.Fatalf("unexpected args %v", cmd.Args)
			}
			if cmd.Stdin != "2 7 11 15\n9" || cmd.Timeout != 5*time.Second {
				t.Fatalf("unexpected command %+v", cmd)
			}
			return executor.Result{Stdout: "[0, 1]\n", Stderr: "warning\n"}
		})

	outcome := r.Run(context.Background(), "print([0, 1])", "2 7 11 15\n9", "msg-1")
	if outcome.Failed() {
		t.Fatalf("expected success, got %v", outcome.Err)
	}
	if outcome.Stdout != "[0, 1]\n" {
		t.Fatalf("unexpected stdout %q", outcome.Stdout)
	}
	f.assertNoArtifacts(t)
}

func TestRun_EmptyStdoutIsSuccess(t *testing.T) {
	f := newFixture(t)
	r := f.newRunner(t, languages.JAVASCRIPT)

	f.compiler.EXPECT().CompileSolutionIfNeeded(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	f.executor.EXPECT().Execute(gomock.Any(), gomock.Any()).Return(executor.Result{})

	outcome := r.Run(context.Background(), "", "", "msg-empty")
	if outcome.Failed() || outcome.Stdout != "" {
		t.Fatalf("expected empty successful outcome, got %+v", outcome)
	}
}

func TestRun_Failures(t *testing.T) {
	cases := []struct {
		name    string
		lang    languages.LanguageType
		compile error
		result  *executor.Result
		kind    runner.Kind
		message string
		target  error
	}{
		{
			name:    "timeout wins over partial output",
			lang:    languages.PYTHON,
			result:  &executor.Result{Stdout: "partial", TimedOut: true, Err: pkgerrors.ErrTimeLimitExceeded},
			kind:    runner.KindTimeout,
			message: "Execution timed out (5 seconds limit)",
			target:  pkgerrors.ErrTimeLimitExceeded,
		},
		{
			name:    "runtime error carries stderr",
			lang:    languages.JAVASCRIPT,
			result:  &executor.Result{Stderr: "ReferenceError: x is not defined\n", ExitCode: 1, Err: pkgerrors.ErrNonZeroExitCode},
			kind:    runner.KindRuntime,
			message: "ReferenceError: x is not defined",
			target:  pkgerrors.ErrNonZeroExitCode,
		},
		{
			name:    "python syntax error is a compilation failure",
			lang:    languages.PYTHON,
			result:  &executor.Result{Stderr: "  File \"solution.py\", line 1\n    print(\n         ^\nSyntaxError: '(' was never closed\n", ExitCode: 1, Err: pkgerrors.ErrNonZeroExitCode},
			kind:    runner.KindCompilation,
			message: "File \"solution.py\", line 1\n    print(\n         ^\nSyntaxError: '(' was never closed",
			target:  pkgerrors.ErrCompilationFailed,
		},
		{
			name:    "python indentation error is a compilation failure",
			lang:    languages.PYTHON,
			result:  &executor.Result{Stderr: "IndentationError: expected an indented block\n", ExitCode: 1, Err: pkgerrors.ErrNonZeroExitCode},
			kind:    runner.KindCompilation,
			message: "IndentationError: expected an indented block",
			target:  pkgerrors.ErrCompilationFailed,
		},
		{
			name:    "javascript syntax error is a compilation failure",
			lang:    languages.JAVASCRIPT,
			result:  &executor.Result{Stderr: "SyntaxError: missing ) after argument list\n", ExitCode: 1, Err: pkgerrors.ErrNonZeroExitCode},
			kind:    runner.KindCompilation,
			message: "SyntaxError: missing ) after argument list",
			target:  pkgerrors.ErrCompilationFailed,
		},
		{
			name:    "native stderr mentioning SyntaxError stays a runtime error",
			lang:    languages.CPP,
			result:  &executor.Result{Stderr: "SyntaxError\n", ExitCode: 2, Err: pkgerrors.ErrNonZeroExitCode},
			kind:    runner.KindRuntime,
			message: "SyntaxError",
			target:  pkgerrors.ErrNonZeroExitCode,
		},
		{
			name:    "runtime error without stderr",
			lang:    languages.CPP,
			result:  &executor.Result{ExitCode: 139, Err: pkgerrors.ErrNonZeroExitCode},
			kind:    runner.KindRuntime,
			message: "Process exited with code 139",
			target:  pkgerrors.ErrNonZeroExitCode,
		},
		{
			name:    "missing interpreter",
			lang:    languages.PYTHON,
			result:  &executor.Result{ExitCode: -1, Err: pkgerrors.ErrToolchainMissing},
			kind:    runner.KindToolchainMissing,
			message: constants.ToolchainMissingPython,
			target:  pkgerrors.ErrToolchainMissing,
		},
		{
			name:    "missing compiler",
			lang:    languages.C,
			compile: pkgerrors.ErrToolchainMissing,
			kind:    runner.KindToolchainMissing,
			message: constants.ToolchainMissingC,
			target:  pkgerrors.ErrToolchainMissing,
		},
		{
			name:    "compilation error",
			lang:    languages.CPP,
			compile: &compiler.CompilationError{Diagnostic: "solution.cpp:1: error: expected ';'"},
			kind:    runner.KindCompilation,
			message: "Compilation error: solution.cpp:1: error: expected ';'",
			target:  pkgerrors.ErrCompilationFailed,
		},
		{
			name:    "compilation timeout",
			lang:    languages.C,
			compile: &compiler.CompilationError{Diagnostic: "Compilation timed out (10 seconds limit)", TimedOut: true},
			kind:    runner.KindCompilation,
			message: "Compilation timed out (10 seconds limit)",
			target:  pkgerrors.ErrCompilationFailed,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			r := f.newRunner(t, tc.lang)

			f.compiler.EXPECT().CompileSolutionIfNeeded(gomock.Any(), tc.lang, gomock.Any(), "msg-fail").Return(tc.compile)
			if tc.result != nil {
				f.executor.EXPECT().Execute(gomock.Any(), gomock.Any()).Return(*tc.result)
			}

			outcome := r.Run(context.Background(), "source", "", "msg-fail")
			if !outcome.Failed() {
				t.Fatalf("expected failure, got %+v", outcome)
			}
			if outcome.Err.Kind != tc.kind {
				t.Fatalf("expected kind %s, got %s", tc.kind, outcome.Err.Kind)
			}
			if outcome.Err.Message != tc.message {
				t.Fatalf("expected message %q, got %q", tc.message, outcome.Err.Message)
			}
			if !errors.Is(outcome.Err, tc.target) {
				t.Fatalf("expected error to wrap %v", tc.target)
			}
			if outcome.Stdout != "" {
				t.Fatalf("failed outcome must not carry stdout, got %q", outcome.Stdout)
			}
			f.assertNoArtifacts(t)
		})
	}
}

func TestJavaRunner_UsesPublicClassName(t *testing.T) {
	f := newFixture(t)
	r := f.newRunner(t, languages.JAVA)

	f.compiler.EXPECT().CompileSolutionIfNeeded(gomock.Any(), languages.JAVA, gomock.Any(), "msg-java").DoAndReturn(
		func(_ context.Context, _ languages.LanguageType, ws *packager.Workspace, _ string) error {
			if filepath.Base(ws.SourceFilePath) != "Solution.java" {
				t.Fatalf("expected Solution.java, got %s", ws.SourceFilePath)
			}
			return nil
		})
	f.executor.EXPECT().Execute(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, cmd executor.Command) executor.Result {
			expected := []string{"-cp", cmd.Dir, "Solution"}
			if cmd.Path != constants.DefaultJavaBin || !reflect.DeepEqual(cmd.Args, expected) {
				t.Fatalf("unexpected java command %s %v", cmd.Path, cmd.Args)
			}
			return executor.Result{Stdout: "42\n"}
		})

	outcome := r.Run(context.Background(), "public class Solution { }", "", "msg-java")
	if outcome.Failed() || outcome.Stdout != "42\n" {
		t.Fatalf("unexpected outcome %+v", outcome)
	}
	f.assertNoArtifacts(t)
}

func TestJavaRunner_NoPublicClass(t *testing.T) {
	f := newFixture(t)
	r := f.newRunner(t, languages.JAVA)

	outcome := r.Run(context.Background(), "class Hidden {}", "", "msg-java")
	if !outcome.Failed() || outcome.Err.Kind != runner.KindMalformed {
		t.Fatalf("expected malformed outcome, got %+v", outcome)
	}
	if outcome.Err.Message != constants.RunnerMessageNoPublicClass {
		t.Fatalf("unexpected message %q", outcome.Err.Message)
	}
	if !errors.Is(outcome.Err, pkgerrors.ErrNoPublicClass) {
		t.Fatalf("expected ErrNoPublicClass")
	}
	f.assertNoArtifacts(t)
}
