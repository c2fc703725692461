// Package watch re-runs conversion jobs automatically when their input
// files change on disk.
package watch

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// JobKind selects which converter a job runs.
type JobKind string

const (
	// JobCourses converts a course catalog PSV file.
	JobCourses JobKind = "courses"

	// JobLessons converts a lesson schedule PSV file.
	JobLessons JobKind = "lessons"

	// JobExams converts a final exam PSV file.
	JobExams JobKind = "exams"

	// JobPlan converts a flat curriculum plan file.
	JobPlan JobKind = "plan"

	// JobPlans converts a multi-faculty plan document.
	JobPlans JobKind = "plans"
)

// JobConfig describes one conversion job.
type JobConfig struct {
	// Name is the unique identifier for this job.
	Name string `yaml:"name" json:"name"`

	// Kind selects the converter (courses, lessons, exams, plan, plans).
	Kind JobKind `yaml:"kind" json:"kind"`

	// Input is the source file whose directory is watched.
	Input string `yaml:"input" json:"input"`

	// Output is the JSON file the converter writes.
	Output string `yaml:"output" json:"output"`
}

// LoggingConfig selects the log level and format for a watch run.
type LoggingConfig struct {
	// Level is the minimum level to emit (debug, info, warn, error).
	Level string `yaml:"level,omitempty" json:"level,omitempty"`

	// Pretty switches on human-readable console output (default true).
	Pretty *bool `yaml:"pretty,omitempty" json:"pretty,omitempty"`
}

// Config holds the complete watch configuration.
type Config struct {
	// Jobs is the list of configured conversion jobs.
	Jobs []JobConfig `yaml:"jobs" json:"jobs"`

	// Logging configures log output for the watch run.
	Logging LoggingConfig `yaml:"logging,omitempty" json:"logging,omitempty"`
}

// LoadConfig loads and validates watch configuration from a YAML file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read watch config: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse watch config: %w", err)
	}

	seen := make(map[string]bool)
	for i, job := range config.Jobs {
		if job.Name == "" {
			return nil, fmt.Errorf("job %d: name is required", i)
		}
		if seen[job.Name] {
			return nil, fmt.Errorf("job %s: name is already used", job.Name)
		}
		seen[job.Name] = true

		if job.Kind == "" {
			return nil, fmt.Errorf("job %s: kind is required", job.Name)
		}
		switch job.Kind {
		case JobCourses, JobLessons, JobExams, JobPlan, JobPlans:
		default:
			return nil, fmt.Errorf("job %s: unknown kind %q", job.Name, job.Kind)
		}

		if job.Input == "" {
			return nil, fmt.Errorf("job %s: input is required", job.Name)
		}
		if job.Output == "" {
			return nil, fmt.Errorf("job %s: output is required", job.Name)
		}
	}

	return &config, nil
}
