package utils_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mini-maxit/grader/tests"
	"github.com/mini-maxit/grader/utils"
)

func TestValidateFilename(t *testing.T) {
	valid := []string{"solution.py", "Main.java", "my_solution.cpp", "two-sum.js", "solution.test.c"}
	invalid := []string{
		"",
		".",
		"..",
		"solution.py; rm -rf /",
		"solution.py | cat /etc/passwd",
		"solution`whoami`.py",
		"solution$PATH.py",
		"../../../etc/passwd",
		"..\\..\\windows\\system32",
		"solution .py",
		"solution'.py",
		"solution*.py",
		"solution>output.txt",
		"~/.bashrc",
	}

	for _, name := range valid {
		if err := utils.ValidateFilename(name); err != nil {
			t.Fatalf("ValidateFilename(%q) returned error: %v", name, err)
		}
	}
	for _, name := range invalid {
		if err := utils.ValidateFilename(name); err == nil {
			t.Fatalf("ValidateFilename(%q) expected error", name)
		}
	}
}

func TestRemoveIO(t *testing.T) {
	dir := t.TempDir()
	nested := filepath.Join(dir, "nested")
	tests.WriteFile(t, nested, "inner/solution.py", "print(1)")

	if err := utils.RemoveIO(nested, false, false); err == nil {
		t.Fatalf("expected error removing non-empty dir without recursion")
	}
	if err := utils.RemoveIO(nested, true, false); err != nil {
		t.Fatalf("recursive remove failed: %v", err)
	}
	if _, err := os.Stat(nested); !os.IsNotExist(err) {
		t.Fatalf("expected dir to be removed, stat err: %v", err)
	}
	if err := utils.RemoveIO(nested, false, true); err != nil {
		t.Fatalf("expected error to be ignored, got %v", err)
	}
}
