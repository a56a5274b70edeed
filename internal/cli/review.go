package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/avandres/prreview/internal/types"
)

var reviewFlags struct {
	owner           string
	repo            string
	pr              int
	query           string
	naturalLanguage bool
	inline          bool
}

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Review a pull request once and print the report as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, cleanup, err := buildAgent()
		if err != nil {
			return err
		}
		defer cleanup()

		req := types.ReviewRequest{
			RepoOwner:       reviewFlags.owner,
			RepoName:        reviewFlags.repo,
			PRNumber:        reviewFlags.pr,
			Query:           reviewFlags.query,
			NaturalLanguage: reviewFlags.naturalLanguage,
			Inline:          &reviewFlags.inline,
		}

		rep, err := a.Review(cmd.Context(), req)
		if err != nil {
			return err
		}

		out, err := json.MarshalIndent(rep, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode report: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	},
}

func init() {
	reviewCmd.Flags().StringVar(&reviewFlags.owner, "owner", "", "repository owner")
	reviewCmd.Flags().StringVar(&reviewFlags.repo, "repo", "", "repository name")
	reviewCmd.Flags().IntVar(&reviewFlags.pr, "pr", 0, "pull request number")
	reviewCmd.Flags().StringVar(&reviewFlags.query, "query", "", "free-form reviewer query")
	reviewCmd.Flags().BoolVar(&reviewFlags.naturalLanguage, "natural-language", false, "paraphrase the summary in plain english")
	reviewCmd.Flags().BoolVar(&reviewFlags.inline, "inline", true, "include inline comment suggestions")

	if err := reviewCmd.MarkFlagRequired("owner"); err != nil {
		panic(err)
	}
	if err := reviewCmd.MarkFlagRequired("repo"); err != nil {
		panic(err)
	}
	if err := reviewCmd.MarkFlagRequired("pr"); err != nil {
		panic(err)
	}

	rootCmd.AddCommand(reviewCmd)
}
