// Package wizard provides the interactive project setup form behind
// oee init --interactive.
package wizard

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/template"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"

	"github.com/fabmetrics/oee/internal/oee"
	"github.com/fabmetrics/oee/internal/projectconfig"
	"github.com/fabmetrics/oee/internal/scaffold"
)

// ProjectSpec holds the answers collected during the interactive setup.
type ProjectSpec struct {
	DatasetPath string
	HoursPerDay float64
	ServerPort  int
}

// DefaultProjectSpec returns the answers used when the wizard is skipped.
func DefaultProjectSpec() ProjectSpec {
	return ProjectSpec{
		DatasetPath: projectconfig.DefaultDatasetPath,
		HoursPerDay: oee.DefaultHoursPerDay,
		ServerPort:  projectconfig.DefaultServerPort,
	}
}

const configTemplate = `# OEE project configuration. Commands look this file up from the working
# directory upward; command-line flags override anything set here.
dataset: {{ .DatasetPath }}
hours_per_day: {{ .HoursPerDay }}

report:
  views:
    - kind: overall
    - kind: groups
      by: machine
    - kind: groups
      by: product
    - kind: trend

server:
  port: {{ .ServerPort }}

cache:
  enabled: false
`

// RunProjectWizard runs an interactive huh form to collect project settings.
// Defaults pre-populate the fields.
func RunProjectWizard(in io.Reader, out io.Writer, defaults ProjectSpec) (*ProjectSpec, error) {
	var (
		path  = defaults.DatasetPath
		hours = strconv.FormatFloat(defaults.HoursPerDay, 'f', -1, 64)
		port  = strconv.Itoa(defaults.ServerPort)
	)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Dataset path").
				Description("CSV file with production records, relative to .oee.yaml").
				Placeholder(projectconfig.DefaultDatasetPath).
				Value(&path).
				Validate(scaffold.ValidateDatasetPath),
			huh.NewInput().
				Title("Planned hours per day").
				Description("Production hours scheduled per working day").
				Placeholder("24").
				Value(&hours).
				Validate(validateHours),
			huh.NewInput().
				Title("Dashboard port").
				Description("Local port used by oee serve").
				Placeholder(strconv.Itoa(projectconfig.DefaultServerPort)).
				Value(&port).
				Validate(validatePort),
		),
	).
		WithInput(in).
		WithOutput(out)

	// Use accessible mode for non-TTY input (e.g., tests, piped input).
	if f, ok := in.(*os.File); !ok || !term.IsTerminal(int(f.Fd())) {
		form = form.WithAccessible(true)
	}

	if err := form.Run(); err != nil {
		return nil, fmt.Errorf("wizard failed: %w", err)
	}

	h, err := strconv.ParseFloat(strings.TrimSpace(hours), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid hours per day %q", hours)
	}
	p, err := strconv.Atoi(strings.TrimSpace(port))
	if err != nil {
		return nil, fmt.Errorf("invalid port %q", port)
	}

	return &ProjectSpec{
		DatasetPath: strings.TrimSpace(path),
		HoursPerDay: h,
		ServerPort:  p,
	}, nil
}

// GenerateConfig renders a .oee.yaml from the given spec.
func GenerateConfig(spec *ProjectSpec) (string, error) {
	tmpl, err := template.New("config").Parse(configTemplate)
	if err != nil {
		return "", fmt.Errorf("failed to parse template: %w", err)
	}

	var buf strings.Builder
	if err := tmpl.Execute(&buf, spec); err != nil {
		return "", fmt.Errorf("failed to render template: %w", err)
	}
	return buf.String(), nil
}

func validateHours(s string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return fmt.Errorf("enter a number of hours")
	}
	if v < oee.MinHoursPerDay || v > oee.MaxHoursPerDay {
		return fmt.Errorf("hours per day must be between %v and %v", oee.MinHoursPerDay, oee.MaxHoursPerDay)
	}
	return nil
}

func validatePort(s string) error {
	p, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("enter a port number")
	}
	if p < 1 || p > 65535 {
		return fmt.Errorf("port must be between 1 and 65535")
	}
	return nil
}
