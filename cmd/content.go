package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Zachkp/folio/internal/content"
)

var contentDir string

var contentCmd = &cobra.Command{
	Use:   "content",
	Short: "Inspect content bundles",
}

var contentCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the content bundles and print a summary",
	Long: `Loads every bundle the server would load, validates it and renders its
Markdown. Use --dir to check bundles before deploying them.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := contentDir
		if dir == "" {
			dir = cfg.Content.Dir
		}
		provider, err := content.Load(dir, cfg.UI.DefaultLocale)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, loc := range provider.Locales() {
			b := provider.Bundle(loc)
			fmt.Fprintf(out, "%s: %d experiences, %d skills, %d services, %d projects, %d testimonials, %d posts, %d faq, %d highlights\n",
				loc, len(b.Experiences), len(b.Skills), len(b.Services), len(b.Projects),
				len(b.Testimonials), len(b.Posts), len(b.FAQ), len(b.Highlights))
		}
		fmt.Fprintln(out, "ok")
		return nil
	},
}

func init() {
	contentCheckCmd.Flags().StringVar(&contentDir, "dir", "", "bundle directory (default: content.dir or the built-in bundles)")
	contentCmd.AddCommand(contentCheckCmd)
	rootCmd.AddCommand(contentCmd)
}
