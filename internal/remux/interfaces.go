package remux

import "context"

// ContainerFixer defines the interface for the container-fix step.
type ContainerFixer interface {
	FixContainer(ctx context.Context, inputPath string) (string, error)
}
