package packager

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/google/uuid"
	"github.com/mini-maxit/grader/internal/logger"
	"github.com/mini-maxit/grader/pkg/constants"
	"github.com/mini-maxit/grader/pkg/errors"
	"github.com/mini-maxit/grader/utils"
	"go.uber.org/zap"
)

var javaPublicClassRegex = regexp.MustCompile(`public\s+class\s+(\w+)`)

type Packager interface {
	// PrepareWorkspace creates a fresh workspace directory and writes the source into fileName inside it.
	PrepareWorkspace(sourceCode, fileName, messageID string) (*Workspace, error)
}

type packager struct {
	logger        *zap.SugaredLogger
	workspaceRoot string
}

// Workspace is the transient directory holding one submission's artifacts.
type Workspace struct {
	DirPath            string
	SourceFilePath     string
	BinaryPath         string
	CompileErrFilePath string
}

func NewPackager(workspaceRoot string) Packager {
	logger := logger.NewNamedLogger("packager")
	return &packager{
		logger:        logger,
		workspaceRoot: workspaceRoot,
	}
}

func (p *packager) PrepareWorkspace(sourceCode, fileName, messageID string) (*Workspace, error) {
	if err := utils.ValidateFilename(fileName); err != nil {
		return nil, fmt.Errorf("invalid source file name %q: %w", fileName, err)
	}

	if err := os.MkdirAll(p.workspaceRoot, 0o755); err != nil {
		p.logger.Errorf("Failed to create workspace root %s [MsgID: %s]: %s", p.workspaceRoot, messageID, err)
		return nil, err
	}

	pattern := fmt.Sprintf("%s%s-", constants.WorkspaceDirPrefix, uuid.New().String())
	dirPath, err := os.MkdirTemp(p.workspaceRoot, pattern)
	if err != nil {
		p.logger.Errorf("Failed to create workspace [MsgID: %s]: %s", messageID, err)
		return nil, err
	}

	ws := &Workspace{
		DirPath:            dirPath,
		SourceFilePath:     filepath.Join(dirPath, fileName),
		BinaryPath:         filepath.Join(dirPath, constants.SolutionFileBaseName),
		CompileErrFilePath: filepath.Join(dirPath, constants.CompileErrFileName),
	}

	if err := os.WriteFile(ws.SourceFilePath, []byte(sourceCode), 0o644); err != nil {
		p.logger.Errorf("Failed to write source file %s [MsgID: %s]: %s", ws.SourceFilePath, messageID, err)
		_ = ws.Cleanup()
		return nil, err
	}

	p.logger.Debugf("Prepared workspace at %s [MsgID: %s]", dirPath, messageID)
	return ws, nil
}

// Cleanup removes the workspace and everything in it. Safe to call more than once.
func (w *Workspace) Cleanup() error {
	return utils.RemoveIO(w.DirPath, true, false)
}

// JavaClassName returns the name of the first public class declared in source.
func JavaClassName(source string) (string, error) {
	match := javaPublicClassRegex.FindStringSubmatch(source)
	if match == nil {
		return "", errors.ErrNoPublicClass
	}
	return match[1], nil
}
