package utils

import (
	"errors"
	"os"
	"regexp"
)

var safeFilenameRegex = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

// attempts to remove dir and optionaly its content. Can ignore error, for example if folder does not exist.
func RemoveIO(dir string, recursive, ignoreError bool) error {
	var err error
	if recursive {
		err = os.RemoveAll(dir)
	} else {
		err = os.Remove(dir)
	}

	if ignoreError {
		return nil
	}
	return err
}

// ValidateFilename rejects names that could escape the workspace or be interpreted by a shell.
func ValidateFilename(filename string) error {
	if filename == "" {
		return errors.New("filename is empty")
	}
	if filename == "." || filename == ".." {
		return errors.New("filename cannot be a directory reference")
	}
	if !safeFilenameRegex.MatchString(filename) {
		return errors.New("filename contains unsafe characters")
	}
	return nil
}
