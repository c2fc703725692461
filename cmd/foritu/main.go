package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/selimdilsadercan/foritu-data/pkg/catalog"
	"github.com/selimdilsadercan/foritu-data/pkg/gradecalc"
	"github.com/selimdilsadercan/foritu-data/pkg/logging"
	"github.com/selimdilsadercan/foritu-data/pkg/plan"
	"github.com/selimdilsadercan/foritu-data/pkg/requirement"
	"github.com/selimdilsadercan/foritu-data/pkg/watch"
)

var version = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:   "foritu",
		Short: "Course catalog data tools",
		Long: `Foritu converts the university's pipe-separated catalog exports into
JSON and parses the catalog's requirement expressions.

It covers:
  - Course, lesson, and final exam catalog conversion
  - Curriculum plan and multi-faculty plan document parsing
  - Prerequisite and elective slot expression parsing
  - Final grade calculation from exam statistics`,
		Version: version,
	}

	rootCmd.PersistentFlags().Bool("verbose", false, "Enable debug logging")
	rootCmd.PersistentFlags().Bool("quiet", false, "Only log errors")
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		configureLogging(cmd)
	}

	rootCmd.AddCommand(convertCmd())
	rootCmd.AddCommand(gradeCmd())
	rootCmd.AddCommand(parseCmd())
	rootCmd.AddCommand(watchCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func configureLogging(cmd *cobra.Command) {
	verbose, _ := cmd.Flags().GetBool("verbose")
	quiet, _ := cmd.Flags().GetBool("quiet")

	level := logging.InfoLevel
	if verbose {
		level = logging.DebugLevel
	}
	if quiet {
		level = logging.ErrorLevel
	}
	logging.Configure(logging.Config{Level: level, Pretty: true})
}

// lineObserver routes converter diagnostics to a component logger.
func lineObserver(logger zerolog.Logger) catalog.Observer {
	return func(line int, message string) {
		logger.Warn().Int("line", line).Msg(message)
	}
}

func convertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert catalog exports to JSON",
	}
	cmd.AddCommand(convertCoursesCmd())
	cmd.AddCommand(convertLessonsCmd())
	cmd.AddCommand(convertExamsCmd())
	cmd.AddCommand(convertPlanCmd())
	cmd.AddCommand(convertPlansCmd())
	return cmd
}

func convertCoursesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "courses",
		Short: "Convert a course catalog PSV file",
		Long: `Convert a pipe-separated course catalog export into JSON.

Each row carries the course code, name, language, credits, the prerequisite
expression, corequisites, and description. Prerequisite fields are parsed
into grouped requirements.

Example:
  foritu convert courses --input courses.psv --output courses.json
  foritu convert courses -i courses.psv -o simple.json --simple --report report.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			input, _ := cmd.Flags().GetString("input")
			output, _ := cmd.Flags().GetString("output")
			reportPath, _ := cmd.Flags().GetString("report")
			simple, _ := cmd.Flags().GetBool("simple")

			if input == "" {
				return fmt.Errorf("--input flag is required")
			}
			if output == "" {
				return fmt.Errorf("--output flag is required")
			}

			converter := catalog.NewCourseConverter(nil, lineObserver(logging.Component("convert")))
			courses, report, err := converter.ConvertFile(input)
			if err != nil {
				return err
			}

			var payload any = courses
			if simple {
				payload = catalog.SimpleCourses(courses)
			}
			if err := writeJSON(output, payload); err != nil {
				return err
			}
			fmt.Printf("Converted %d courses to %s (%d lines skipped)\n", report.Converted, output, len(report.Skipped))

			if reportPath != "" {
				if err := report.SaveJSON(reportPath); err != nil {
					return err
				}
				fmt.Printf("Report written to %s\n", reportPath)
			}
			return nil
		},
	}
	cmd.Flags().StringP("input", "i", "", "Course catalog PSV file")
	cmd.Flags().StringP("output", "o", "", "Output JSON file")
	cmd.Flags().String("report", "", "Write a conversion report JSON file")
	cmd.Flags().Bool("simple", false, "Emit the reduced course shape")
	return cmd
}

func convertLessonsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lessons",
		Short: "Convert a lesson schedule PSV file",
		Long: `Convert a pipe-separated lesson schedule export into JSON.

Location, day, time, and room columns are zipped into one session entry per
meeting.

Example:
  foritu convert lessons --input dersler.psv --output lessons.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			input, _ := cmd.Flags().GetString("input")
			output, _ := cmd.Flags().GetString("output")
			reportPath, _ := cmd.Flags().GetString("report")

			if input == "" {
				return fmt.Errorf("--input flag is required")
			}
			if output == "" {
				return fmt.Errorf("--output flag is required")
			}

			converter := catalog.NewLessonConverter(lineObserver(logging.Component("convert")))
			document, report, err := converter.ConvertFile(input)
			if err != nil {
				return err
			}

			if err := writeJSON(output, document); err != nil {
				return err
			}
			fmt.Printf("Converted %d lessons to %s (%d lines skipped)\n", report.Converted, output, len(report.Skipped))

			if reportPath != "" {
				if err := report.SaveJSON(reportPath); err != nil {
					return err
				}
				fmt.Printf("Report written to %s\n", reportPath)
			}
			return nil
		},
	}
	cmd.Flags().StringP("input", "i", "", "Lesson schedule PSV file")
	cmd.Flags().StringP("output", "o", "", "Output JSON file")
	cmd.Flags().String("report", "", "Write a conversion report JSON file")
	return cmd
}

func convertExamsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exams",
		Short: "Convert a final exam PSV file",
		Long: `Convert a pipe-separated final exam export into JSON.

The first row names the columns; every later row becomes an object keyed by
those names, in file order.

Example:
  foritu convert exams --input final_exams.psv --output final_exams.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			input, _ := cmd.Flags().GetString("input")
			output, _ := cmd.Flags().GetString("output")

			if input == "" {
				return fmt.Errorf("--input flag is required")
			}
			if output == "" {
				return fmt.Errorf("--output flag is required")
			}

			converter := catalog.NewExamConverter(lineObserver(logging.Component("convert")))
			table, report, err := converter.ConvertFile(input)
			if err != nil {
				return err
			}

			if err := writeJSON(output, table.Rows); err != nil {
				return err
			}
			fmt.Printf("Converted %d exam rows to %s\n", report.Converted, output)
			return nil
		},
	}
	cmd.Flags().StringP("input", "i", "", "Final exam PSV file")
	cmd.Flags().StringP("output", "o", "", "Output JSON file")
	return cmd
}

func convertPlanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Convert a flat curriculum plan file",
		Long: `Convert a curriculum plan, one semester of "=" separated entries per
line, into JSON. Bracketed entries are parsed as elective slots.

Example:
  foritu convert plan --input plan.txt --output plan.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			input, _ := cmd.Flags().GetString("input")
			output, _ := cmd.Flags().GetString("output")

			if input == "" {
				return fmt.Errorf("--input flag is required")
			}
			if output == "" {
				return fmt.Errorf("--output flag is required")
			}

			data, err := os.ReadFile(input)
			if err != nil {
				return fmt.Errorf("failed to read plan file: %w", err)
			}
			semesters := plan.ParsePlan(string(data))

			if err := writeJSON(output, semesters); err != nil {
				return err
			}
			fmt.Printf("Converted %d semesters to %s\n", len(semesters), output)
			return nil
		},
	}
	cmd.Flags().StringP("input", "i", "", "Plan text file")
	cmd.Flags().StringP("output", "o", "", "Output JSON file")
	return cmd
}

func convertPlansCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plans",
		Short: "Convert a multi-faculty plan document",
		Long: `Convert a plan document with "# " faculty, "## " program and "### "
period headings into nested JSON.

Example:
  foritu convert plans --input course_plans.txt --output all_plans.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			input, _ := cmd.Flags().GetString("input")
			output, _ := cmd.Flags().GetString("output")

			if input == "" {
				return fmt.Errorf("--input flag is required")
			}
			if output == "" {
				return fmt.Errorf("--output flag is required")
			}

			data, err := os.ReadFile(input)
			if err != nil {
				return fmt.Errorf("failed to read plan document: %w", err)
			}
			document := plan.ParseDocument(string(data))

			if err := writeJSON(output, document); err != nil {
				return err
			}
			summary := document.Summary()
			fmt.Printf("Converted %d faculties, %d programs, %d periods, %d semesters to %s\n",
				summary.Faculties, summary.Programs, summary.Periods, summary.Semesters, output)
			return nil
		},
	}
	cmd.Flags().StringP("input", "i", "", "Plan document text file")
	cmd.Flags().StringP("output", "o", "", "Output JSON file")
	return cmd
}

func gradeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "grade",
		Short: "Calculate a final grade from exam results",
		Long: `Calculate the weighted final grade and letter grade from a JSON exam
data file.

Two input shapes are accepted: a bare score list ([{"Ad": "Quiz", "Not":
40}, ...]) and a document with per-component class statistics. Components
without a percentage share the total equally.

Example:
  foritu grade --input exam_data.json
  foritu grade -i exam_data.json -o grade_report.json --total-percentage 90
  foritu grade -i exam_data.json --markdown grade_report.md`,
		RunE: func(cmd *cobra.Command, args []string) error {
			input, _ := cmd.Flags().GetString("input")
			output, _ := cmd.Flags().GetString("output")
			markdownPath, _ := cmd.Flags().GetString("markdown")
			totalPercentage, _ := cmd.Flags().GetFloat64("total-percentage")

			if input == "" {
				return fmt.Errorf("--input flag is required")
			}

			calc, err := gradecalc.LoadFile(input)
			if err != nil {
				return err
			}
			calc.DistributePercentages(totalPercentage)

			fmt.Print(calc.Summary())

			if output == "" && markdownPath == "" {
				return nil
			}
			report, err := calc.Report()
			if err != nil {
				return err
			}
			if output != "" {
				if err := writeJSON(output, report); err != nil {
					return err
				}
				fmt.Printf("\nDetailed report saved to %s\n", output)
			}
			if markdownPath != "" {
				if err := os.WriteFile(markdownPath, []byte(report.Markdown()), 0644); err != nil {
					return fmt.Errorf("failed to write %s: %w", markdownPath, err)
				}
				fmt.Printf("\nMarkdown report saved to %s\n", markdownPath)
			}
			return nil
		},
	}
	cmd.Flags().StringP("input", "i", "", "Exam data JSON file")
	cmd.Flags().StringP("output", "o", "", "Write the detailed report JSON file")
	cmd.Flags().String("markdown", "", "Write the report as a markdown file")
	cmd.Flags().Float64("total-percentage", 100, "Total percentage shared by components without one")
	return cmd
}

func parseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse [expression]",
		Short: "Parse one requirement expression and print JSON",
		Long: `Parse a single catalog expression and print the result as JSON.

Bracketed input is parsed as an elective slot; anything else as a
prerequisite expression.

Example:
  foritu parse "MAT 102 MIN DD veya MAT 102E MIN DD"
  foritu parse --parser split "(FIZ 101 MIN DD) ve (KIM 101 MIN DD)"
  foritu parse "[7th Semester Elective (TM)*(BLG 411E|BLG 413E)]"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parserName, _ := cmd.Flags().GetString("parser")
			text := strings.TrimSpace(args[0])

			if strings.HasPrefix(text, "[") && strings.HasSuffix(text, "]") {
				slot, err := requirement.ParseElective(text)
				if err != nil {
					return err
				}
				return printJSON(slot)
			}

			registry := requirement.NewDefaultRegistry()
			parser, ok := registry.Get(parserName)
			if !ok {
				return fmt.Errorf("unknown parser %q (available: %s)", parserName, strings.Join(registry.List(), ", "))
			}

			result := parser.Parse(text)
			payload := struct {
				Parser     string                             `json:"parser"`
				Expression requirement.PrerequisiteExpression `json:"expression"`
				Rendered   string                             `json:"rendered,omitempty"`
				Skipped    []string                           `json:"skipped,omitempty"`
			}{parser.Name(), result.Expression, result.Expression.String(), result.Skipped}
			return printJSON(payload)
		},
	}
	cmd.Flags().String("parser", requirement.DefaultParserName, "Expression parser to use (grammar, split)")
	return cmd
}

func watchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-run conversion jobs when inputs change",
		Long: `Watch the input files named by a YAML job config and re-run each
conversion when its input changes. Every job runs once on startup.

Example:
  foritu watch --config watch.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			if configPath == "" {
				return fmt.Errorf("--config flag is required")
			}

			config, err := watch.LoadConfig(configPath)
			if err != nil {
				return err
			}
			if config.Logging.Level != "" {
				pretty := config.Logging.Pretty == nil || *config.Logging.Pretty
				logging.Configure(logging.Config{Level: logging.Level(config.Logging.Level), Pretty: pretty})
			}

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			osSignals := make(chan os.Signal, 1)
			signal.Notify(osSignals, syscall.SIGINT, syscall.SIGTERM)

			watcher := watch.NewWatcher(config, runWatchJob)
			if err := watcher.Start(ctx); err != nil {
				return err
			}
			fmt.Printf("Watching %d jobs. Press Ctrl+C to stop.\n", len(config.Jobs))

			<-osSignals
			return watcher.Stop()
		},
	}
	cmd.Flags().StringP("config", "c", "", "Watch job config (YAML)")
	return cmd
}

// runWatchJob converts one watched input to its output file.
func runWatchJob(job watch.JobConfig) error {
	logger := logging.Component("watch")
	observe := func(line int, message string) {
		logger.Warn().Str("job", job.Name).Int("line", line).Msg(message)
	}

	switch job.Kind {
	case watch.JobCourses:
		converter := catalog.NewCourseConverter(nil, observe)
		courses, _, err := converter.ConvertFile(job.Input)
		if err != nil {
			return err
		}
		return writeJSON(job.Output, courses)

	case watch.JobLessons:
		converter := catalog.NewLessonConverter(observe)
		document, _, err := converter.ConvertFile(job.Input)
		if err != nil {
			return err
		}
		return writeJSON(job.Output, document)

	case watch.JobExams:
		converter := catalog.NewExamConverter(observe)
		table, _, err := converter.ConvertFile(job.Input)
		if err != nil {
			return err
		}
		return writeJSON(job.Output, table.Rows)

	case watch.JobPlan:
		data, err := os.ReadFile(job.Input)
		if err != nil {
			return fmt.Errorf("failed to read plan file: %w", err)
		}
		return writeJSON(job.Output, plan.ParsePlan(string(data)))

	case watch.JobPlans:
		data, err := os.ReadFile(job.Input)
		if err != nil {
			return fmt.Errorf("failed to read plan document: %w", err)
		}
		return writeJSON(job.Output, plan.ParseDocument(string(data)))
	}
	return fmt.Errorf("unknown job kind: %s", job.Kind)
}

func writeJSON(path string, payload any) error {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func printJSON(payload any) error {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
