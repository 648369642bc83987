package runner

import (
	"context"

	"github.com/mini-maxit/grader/internal/stages/packager"
	"github.com/mini-maxit/grader/pkg/constants"
	"github.com/mini-maxit/grader/pkg/languages"
)

// JavaRunner names the source file after its public class, as javac requires.
type JavaRunner struct {
	baseRunner
}

func NewJavaRunner(opts Options) *JavaRunner {
	return &JavaRunner{newBaseRunner(languages.JAVA, opts, constants.ToolchainMissingJava)}
}

func (r *JavaRunner) Run(ctx context.Context, source, stdin, messageID string) Outcome {
	className, err := packager.JavaClassName(source)
	if err != nil {
		r.logger.Infof("Rejected Java source without public class [MsgID: %s]", messageID)
		return failure(KindMalformed, constants.RunnerMessageNoPublicClass)
	}

	ext, _ := r.lang.Extension()
	return r.run(ctx, source, stdin, messageID, className+ext, func(ws *packager.Workspace) (string, []string) {
		return r.opts.Toolchain.JavaBin, []string{"-cp", ws.DirPath, className}
	})
}
