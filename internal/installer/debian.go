package installer

import (
	"context"
	"os/exec"

	"go.uber.org/zap"
)

// installDebian installs a .deb with the system package manager. The
// destination and executable name are decided by the package itself.
func (i *Installer) installDebian(ctx context.Context, file ClassifiedFile) error {
	i.logger.Debug("running package manager",
		zap.String("program", i.packageManager),
		zap.String("package", file.Path),
	)

	cmd := exec.CommandContext(ctx, i.packageManager, "--install", file.Path)
	return RunCommand(i.packageManager, cmd)
}
