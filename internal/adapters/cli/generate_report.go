package cli

import (
	"fmt"
	"io"
	"time"
)

type GenerateStep struct {
	Name      string
	StartTime time.Time
	EndTime   time.Time
	Success   bool
	Error     string
}

type colorizer interface {
	Green(text string) string
	Yellow(text string) string
	Red(text string) string
	Gray(text string) string
}

type Issue struct {
	Subject string
	Message string
	Details []string
}

type GeneratedFile struct {
	Path    string
	Bytes   int
	Virtual bool
}

// GenerateReport collects the outcome of one generation run and prints it
// in one go at the end.
type GenerateReport struct {
	colors      colorizer
	out         io.Writer
	steps       []GenerateStep
	warnings    []Issue
	errors      []Issue
	files       []GeneratedFile
	startTime   time.Time
	components  int
	outputDir   string
	hasFailures bool
}

func NewGenerateReport(colors colorizer, out io.Writer, outputDir string) *GenerateReport {
	return &GenerateReport{
		colors:    colors,
		out:       out,
		startTime: time.Now(),
		outputDir: outputDir,
	}
}

func (r *GenerateReport) SetComponentCount(count int) {
	r.components = count
}

func (r *GenerateReport) StartStep(name string) int {
	r.steps = append(r.steps, GenerateStep{
		Name:      name,
		StartTime: time.Now(),
	})
	return len(r.steps) - 1
}

func (r *GenerateReport) EndStep(step int, success bool, err string) {
	s := &r.steps[step]
	s.EndTime = time.Now()
	s.Success = success
	s.Error = err
	if !success {
		r.hasFailures = true
	}
}

func (r *GenerateReport) AddFile(path string, size int, virtual bool) {
	r.files = append(r.files, GeneratedFile{Path: path, Bytes: size, Virtual: virtual})
}

func (r *GenerateReport) AddWarning(subject, message string, details []string) {
	r.warnings = append(r.warnings, Issue{Subject: subject, Message: message, Details: details})
}

func (r *GenerateReport) AddError(subject, message string, details []string) {
	r.errors = append(r.errors, Issue{Subject: subject, Message: message, Details: details})
	r.hasFailures = true
}

func (r *GenerateReport) HasFailures() bool {
	return r.hasFailures
}

func (r *GenerateReport) Render() {
	duration := time.Since(r.startTime)

	fmt.Fprintf(r.out, "  %d components found\n", r.components)

	for _, step := range r.steps {
		if step.Success {
			continue
		}
		line := "  " + r.colors.Red("✗ ") + step.Name
		if step.Error != "" {
			line += ": " + step.Error
		}
		fmt.Fprintln(r.out, line)
	}

	for _, f := range r.files {
		kind := "written"
		if f.Virtual {
			kind = "virtual"
		}
		fmt.Fprintf(r.out, "    %s %s\n", f.Path, r.colors.Gray(fmt.Sprintf("(%s, %d B)", kind, f.Bytes)))
	}

	if len(r.errors) > 0 {
		fmt.Fprintln(r.out)
		fmt.Fprintf(r.out, "  "+r.colors.Red("✗ ")+"Errors (%d):\n", len(r.errors))
		r.renderIssues(r.errors)
	}

	if len(r.warnings) > 0 {
		fmt.Fprintln(r.out)
		fmt.Fprintf(r.out, "  "+r.colors.Yellow("⚠ ")+"Warnings (%d):\n", len(r.warnings))
		r.renderIssues(r.warnings)
	}

	fmt.Fprintln(r.out)
	if r.hasFailures {
		fmt.Fprintf(r.out, "  %s\n", r.colors.Red("Generation failed after "+formatDuration(duration)))
	} else {
		fmt.Fprintf(r.out, "  "+r.colors.Green("✓ ")+"Generated %d files in %s\n", len(r.files), formatDuration(duration))
	}

	if r.outputDir != "" {
		fmt.Fprintf(r.out, "\n  %s\n", r.colors.Gray("Output: "+r.outputDir))
	}
}

func (r *GenerateReport) renderIssues(issues []Issue) {
	for _, issue := range issues {
		fmt.Fprintf(r.out, "  %s %s\n", r.colors.Red("✗"), issue.Subject)
		fmt.Fprintf(r.out, "    %s\n", issue.Message)
		for _, detail := range deduplicateStrings(issue.Details) {
			fmt.Fprintf(r.out, "      • %s\n", detail)
		}
	}
}

func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%.0fms", float64(d)/float64(time.Millisecond))
	}
	return fmt.Sprintf("%.1fs", float64(d)/float64(time.Second))
}

func deduplicateStrings(items []string) []string {
	if len(items) <= 1 {
		return items
	}

	seen := make(map[string]int)
	var order []string
	for _, item := range items {
		if seen[item] == 0 {
			order = append(order, item)
		}
		seen[item]++
	}

	result := make([]string, 0, len(order))
	for _, item := range order {
		if count := seen[item]; count > 1 {
			result = append(result, fmt.Sprintf("%s (%d occurrences)", item, count))
		} else {
			result = append(result, item)
		}
	}
	return result
}
