package deps

import (
	"fmt"
	"os/exec"
	"strings"

	"snip/internal/config"
	"snip/internal/services"
)

// Requirement defines an external tool snip relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Description string
	Available   bool
	Detail      string
}

// Requirements builds the collaborator requirements from configuration.
func Requirements(cfg *config.Config) []Requirement {
	if cfg == nil {
		return nil
	}
	return []Requirement{
		{Name: "Fetcher", Command: cfg.Tools.Fetcher, Description: "Downloads the source video"},
		{Name: "Clipper", Command: cfg.Tools.Clipper, Description: "Cuts the requested interval"},
		{Name: "Player", Command: cfg.Tools.Player, Description: "Plays the finished clip"},
	}
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
		}
		if cmd == "" {
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		if _, err := exec.LookPath(cmd); err != nil {
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Available = true
		results = append(results, status)
	}
	return results
}

// Verify checks every requirement and returns an ErrMissingDependency
// tagged error naming each unavailable tool, or nil when all are present.
func Verify(cfg *config.Config) error {
	statuses := CheckBinaries(Requirements(cfg))
	var missing []string
	for _, status := range statuses {
		if status.Available {
			continue
		}
		missing = append(missing, fmt.Sprintf("%s (%s)", status.Name, status.Detail))
	}
	if len(missing) == 0 {
		return nil
	}
	return services.Wrap(services.ErrMissingDependency, "deps", "verify", strings.Join(missing, "; "), nil)
}
