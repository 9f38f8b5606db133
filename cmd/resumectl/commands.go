package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"resume-builder/internal/bootstrap"
	"resume-builder/internal/builder"
	"resume-builder/internal/extract"
	"resume-builder/internal/shared/config"
	"resume-builder/internal/shared/telemetry"
	"resume-builder/resume/model"
	"resume-builder/resume/render"
)

const cliUserID = "cli"

type rootOptions struct {
	logLevel string
	asJSON   bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "resumectl",
		Short:         "Build, optimize and tailor plain-text resumes",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return telemetry.Configure(telemetry.Options{Level: opts.logLevel})
		},
	}
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	root.PersistentFlags().BoolVar(&opts.asJSON, "json", false, "print JSON instead of plain text")

	root.AddCommand(
		newRenderCmd(opts),
		newExtractCmd(),
		newGenerateCmd(opts),
		newOptimizeCmd(),
		newTailorCmd(opts, builder.ActionTailor),
		newTailorCmd(opts, builder.ActionReview),
	)
	return root
}

func newRenderCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "render <resume.json|resume.yaml>",
		Short: "Render a structured resume as plain text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := loadRecord(args[0])
			if err != nil {
				return err
			}
			if opts.asJSON {
				return writeJSON(cmd.OutOrStdout(), map[string]any{
					"text":     render.Text(rec),
					"sections": render.Sections(rec),
				})
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), render.Text(rec))
			return err
		},
	}
}

func newExtractCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "extract <file>",
		Short: "Print the text of a PDF, DOCX or TXT resume",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			text, err := extract.TextFromBytes(cmd.Context(), data, "", filepath.Base(args[0]))
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), text)
			return err
		},
	}
}

func newGenerateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "generate <resume.json|resume.yaml>",
		Short: "Generate a polished resume from structured data",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := loadRecord(args[0])
			if err != nil {
				return err
			}
			svc, err := newBuilderService(cmd.Context())
			if err != nil {
				return err
			}
			text, err := svc.Generate(cmd.Context(), cliUserID, rec)
			if err != nil {
				return err
			}
			if opts.asJSON {
				return writeJSON(cmd.OutOrStdout(), map[string]string{"resume": text})
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), text)
			return err
		},
	}
}

func newOptimizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "optimize <resume.txt>",
		Short: "Rewrite pasted resume text for clarity and impact",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readText(args[0])
			if err != nil {
				return err
			}
			svc, err := newBuilderService(cmd.Context())
			if err != nil {
				return err
			}
			out, err := svc.Optimize(cmd.Context(), cliUserID, text)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), out.OptimizedResume)
			return err
		},
	}
}

func newTailorCmd(opts *rootOptions, action string) *cobra.Command {
	var resumePath, jdPath, title string
	short := "Tailor a resume to a job description and review it"
	if action == builder.ActionReview {
		short = "Review a resume against a job description"
	}
	cmd := &cobra.Command{
		Use:   action,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			resumeText, err := readText(resumePath)
			if err != nil {
				return err
			}
			jd, err := readText(jdPath)
			if err != nil {
				return err
			}
			svc, err := newBuilderService(cmd.Context())
			if err != nil {
				return err
			}
			in := builder.TailorInput{ResumeText: resumeText, JobDescription: jd, JobTitle: title}

			var (
				tailored string
				review   builder.Review
			)
			if action == builder.ActionReview {
				review, err = svc.Review(cmd.Context(), cliUserID, in)
			} else {
				var res builder.TailorResult
				res, err = svc.Tailor(cmd.Context(), cliUserID, in)
				tailored, review = res.TailoredResume, res.Review
			}
			if err != nil {
				return err
			}
			if opts.asJSON {
				payload := map[string]any{"review": builder.NewReviewResponse(review)}
				if action != builder.ActionReview {
					payload["tailoredResume"] = tailored
				}
				return writeJSON(cmd.OutOrStdout(), payload)
			}
			return printReview(cmd.OutOrStdout(), tailored, review)
		},
	}
	cmd.Flags().StringVar(&resumePath, "resume", "", "resume text file, or - for stdin")
	cmd.Flags().StringVar(&jdPath, "jd", "", "job description file (text or HTML)")
	cmd.Flags().StringVar(&title, "title", "", "target job title")
	_ = cmd.MarkFlagRequired("resume")
	_ = cmd.MarkFlagRequired("jd")
	return cmd
}

func newBuilderService(ctx context.Context) (*builder.Service, error) {
	cfg := config.Load()
	client, err := bootstrap.BuildLLM(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return builder.NewService(client, nil, cfg.LLMMaxInputTokens, cfg.LLMTimeout), nil
}

// loadRecord reads a resume record from JSON or YAML. YAML keys use the
// same camelCase names as the JSON API.
func loadRecord(path string) (model.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Record{}, err
	}
	var rec model.Record
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		var doc any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return model.Record{}, fmt.Errorf("parse %s: %w", path, err)
		}
		data, err = json.Marshal(doc)
		if err != nil {
			return model.Record{}, fmt.Errorf("parse %s: %w", path, err)
		}
	}
	if err := json.Unmarshal(data, &rec); err != nil {
		return model.Record{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return rec, nil
}

func readText(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		return string(data), err
	}
	data, err := os.ReadFile(path)
	return string(data), err
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printReview(w io.Writer, tailored string, review builder.Review) error {
	var b strings.Builder
	if tailored != "" {
		b.WriteString(tailored)
		b.WriteString("\n\n")
	}
	fmt.Fprintf(&b, "ATS score: %d\nKeyword match: %d%%\n\n", review.ATSScore, review.KeywordMatchRate)
	fmt.Fprintf(&b, "Strengths:\n%s\n\nWeaknesses:\n%s\n\nReadability: %s\n\nSuggestions:\n%s\n",
		review.Strengths, review.Weaknesses, review.Readability, review.Suggestions)
	_, err := io.WriteString(w, b.String())
	return err
}
