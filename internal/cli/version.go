package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// CheckVersion verifies that the running tool satisfies constraint, e.g.
// ">= 0.3, < 1.0". An empty constraint always passes.
func CheckVersion(constraint string) error {
	return checkVersion(Version, constraint)
}

func checkVersion(current, constraint string) error {
	if strings.TrimSpace(constraint) == "" {
		return nil
	}

	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return fmt.Errorf("invalid version constraint %q: %w", constraint, err)
	}
	v, err := semver.NewVersion(current)
	if err != nil {
		return fmt.Errorf("invalid tool version %q: %w", current, err)
	}

	if ok, reasons := c.Validate(v); !ok {
		return fmt.Errorf("lpp %s does not satisfy %q: %w", v, constraint, errors.Join(reasons...))
	}
	return nil
}
