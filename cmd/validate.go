package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/nikogura/portfolio-cv/pkg/config"
	"github.com/nikogura/portfolio-cv/pkg/content"
	"github.com/nikogura/portfolio-cv/pkg/cv"
	"github.com/nikogura/portfolio-cv/pkg/scorer"
)

//nolint:gochecknoglobals // Cobra boilerplate
var validateCmd = &cobra.Command{
	Use:   "validate [content-file-or-url]",
	Short: "Check site content against the content schema",
	Long: `Load site content, check it against the content schema and print what
each language's CV would contain, followed by a readiness score that flags
missing translations and content the CV would drop.

Content is read from content_location in the config unless given as an
argument; no config file is needed when the argument is present.

Example:
  portfolio-cv validate content.json
  portfolio-cv validate https://example.com/content.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidate,
}

//nolint:gochecknoglobals // Cobra boilerplate
var minScore int

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().IntVar(&minScore, "min-score", 0, "Fail when the readiness score is below this value")
}

func runValidate(cmd *cobra.Command, args []string) (err error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	var location string
	if len(args) > 0 {
		location = args[0]
	} else {
		var cfg config.Config
		cfg, err = config.Load(getConfigFile())
		if err != nil {
			err = errors.Wrap(err, "failed to load config")
			return err
		}
		location = cfg.ContentLocation
	}

	var site content.SiteContent
	site, err = loadAndLogContent(ctx, location)
	if err != nil {
		return err
	}

	fmt.Printf("✓ %s is valid\n", location)

	for _, lang := range content.Languages() {
		var model cv.DocumentModel
		model, err = cv.Project(site, lang, cv.ImageSource{}, time.Now())
		if err != nil {
			err = errors.Wrapf(err, "content does not project to a %s CV", lang)
			return err
		}

		blocks := 0
		for _, block := range model.SkillBlocks {
			blocks += len(block.Skills)
		}

		fmt.Printf("  %s: %d experiences, %d further projects, %d skills in %d categories, %d languages, %d projects\n",
			lang, len(model.Major), len(model.Small), blocks, len(model.SkillBlocks), len(model.Languages.Entries), len(model.Projects))

		if getVerbose() {
			for _, e := range model.Major {
				fmt.Printf("    %s, %s (%s)\n", e.Title, e.Company, e.Period)
			}
		}
	}

	s := scorer.NewScorer()
	scores := s.Score(site)
	printScores(scores, s.ExtractLessons(scores))

	if scores.Overall < minScore {
		err = errors.Errorf("readiness score %d is below --min-score %d", scores.Overall, minScore)
		return err
	}

	return err
}

func printScores(scores scorer.Scores, lessons []string) {
	fmt.Printf("\nReadiness: %d/100 (translation %d, consistency %d, completeness %d)\n",
		scores.Overall, scores.Translation, scores.Consistency, scores.Completeness)

	for _, lesson := range lessons {
		fmt.Printf("  - %s\n", lesson)
	}

	if getVerbose() {
		for _, v := range scores.Violations {
			fmt.Printf("    [%s] %s at %s %s\n", v.Severity, v.Rule, v.Location, v.Detail)
		}
	}
}
