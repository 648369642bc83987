package languages

import (
	"sort"
	"strings"

	"github.com/mini-maxit/grader/pkg/errors"
)

type LanguageType int

const (
	PYTHON LanguageType = iota + 1
	JAVASCRIPT
	CPP
	JAVA
	C
)

// LanguageSpec describes a supported language in handshake and /languages responses.
type LanguageSpec struct {
	LanguageName string `json:"name"`
	Extension    string `json:"extension"`
	Compiled     bool   `json:"compiled"`
}

var LanguageTypeMap = map[string]LanguageType{
	"python":     PYTHON,
	"javascript": JAVASCRIPT,
	"cpp":        CPP,
	"java":       JAVA,
	"c":          C,
}

// Aliases commonly sent by editors.
var languageAliases = map[string]LanguageType{
	"py":      PYTHON,
	"python3": PYTHON,
	"js":      JAVASCRIPT,
	"node":    JAVASCRIPT,
	"c++":     CPP,
}

var LanguageExtensionMap = map[LanguageType]string{
	PYTHON:     ".py",
	JAVASCRIPT: ".js",
	CPP:        ".cpp",
	JAVA:       ".java",
	C:          ".c",
}

func (lt LanguageType) String() string {
	for key, value := range LanguageTypeMap {
		if value == lt {
			return key
		}
	}
	return ""
}

// IsValid reports whether lt is one of the supported languages.
func (lt LanguageType) IsValid() bool {
	_, ok := LanguageExtensionMap[lt]
	return ok
}

// IsScriptingLanguage reports whether the language runs without a compile step.
func (lt LanguageType) IsScriptingLanguage() bool {
	switch lt {
	case PYTHON, JAVASCRIPT:
		return true
	default:
		return false
	}
}

// Extension returns the source file extension including the leading dot.
func (lt LanguageType) Extension() (string, error) {
	if ext, ok := LanguageExtensionMap[lt]; ok {
		return ext, nil
	}
	return "", errors.ErrInvalidLanguageType
}

func ParseLanguageType(s string) (LanguageType, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if lt, ok := LanguageTypeMap[key]; ok {
		return lt, nil
	}
	if lt, ok := languageAliases[key]; ok {
		return lt, nil
	}
	return 0, errors.ErrInvalidLanguageType
}

// GetSupportedLanguages returns the language specs sorted by name.
func GetSupportedLanguages() []LanguageSpec {
	specs := make([]LanguageSpec, 0, len(LanguageTypeMap))
	for name, lt := range LanguageTypeMap {
		specs = append(specs, LanguageSpec{
			LanguageName: name,
			Extension:    LanguageExtensionMap[lt],
			Compiled:     !lt.IsScriptingLanguage(),
		})
	}
	sort.Slice(specs, func(i, j int) bool {
		return specs[i].LanguageName < specs[j].LanguageName
	})
	return specs
}
