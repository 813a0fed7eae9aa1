package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/pokeprice/engine/internal/domain"
	"github.com/pokeprice/engine/internal/domain/search"
)

var (
	keywordsCard    string
	keywordsInclude []string
	keywordsExclude []string
	keywordsFile    string
)

var keywordsCMD = &cobra.Command{
	Use:   "keywords",
	Short: "manage the search keywords of cards",
}

var keywordsSetCMD = &cobra.Command{
	Use:   "set",
	Short: "replace the active search keywords of a card",
	Example: `  pokeprice keywords set --card base1-4 --include charizard --include "(1st edition,shadowless)" --exclude psa`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		e, err := newEngine(ctx, cfg)
		if err != nil {
			return err
		}
		defer e.Close()

		c, err := e.lifecycle.CreateOrUpdate(ctx, keywordsCard, keywordsInclude, keywordsExclude)
		if c != nil {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\tinclude=%s\texclude=%s\t%s\n", c.ID,
				strings.Join(search.KeywordStrings(c.Include), " "),
				strings.Join(search.KeywordStrings(c.Exclude), " "),
				c.SearchURL)
		}
		return describe(err, keywordsCard)
	},
}

var keywordsRemoveCMD = &cobra.Command{
	Use:   "remove",
	Short: "deactivate the search keywords of a card",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		e, err := newEngine(ctx, cfg)
		if err != nil {
			return err
		}
		defer e.Close()

		removed, err := e.lifecycle.Remove(ctx, keywordsCard)
		fmt.Fprintf(cmd.OutOrStdout(), "deactivated %d criteria for %s\n", removed, keywordsCard)
		return describe(err, keywordsCard)
	},
}

// keywordFile is the TOML layout read by "keywords import".
type keywordFile struct {
	Cards []struct {
		ID      string   `toml:"id"`
		Include []string `toml:"include"`
		Exclude []string `toml:"exclude"`
	} `toml:"cards"`
}

var keywordsImportCMD = &cobra.Command{
	Use:   "import",
	Short: "apply keyword sets for many cards from a TOML file",
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(keywordsFile)
		if err != nil {
			return fmt.Errorf("failed to read keyword file: %w", err)
		}
		var file keywordFile
		if err := toml.Unmarshal(data, &file); err != nil {
			return fmt.Errorf("failed to decode keyword file: %w", err)
		}

		reqs := make([]search.Request, 0, len(file.Cards))
		for _, c := range file.Cards {
			reqs = append(reqs, search.Request{CardID: c.ID, Include: c.Include, Exclude: c.Exclude})
		}

		ctx := cmd.Context()
		e, err := newEngine(ctx, cfg)
		if err != nil {
			return err
		}
		defer e.Close()

		failed := 0
		out := cmd.OutOrStdout()
		for _, res := range e.lifecycle.BulkCreateOrUpdate(ctx, e.pool, reqs) {
			switch {
			case res.Err != nil:
				failed++
				fmt.Fprintf(out, "%s\tFAILED\t%v\n", res.Request.CardID, describe(res.Err, res.Request.CardID))
			default:
				fmt.Fprintf(out, "%s\t%s\n", res.Request.CardID, res.Criteria.ID)
			}
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d keyword updates failed", failed, len(reqs))
		}
		return nil
	},
}

func describe(err error, cardID string) error {
	switch {
	case err == nil:
		return nil
	case search.IsValidationError(err):
		return err
	case errors.Is(err, domain.ErrNotFound):
		return fmt.Errorf("card %s does not exist: %w", cardID, err)
	}
	return err
}

func init() {
	for _, c := range []*cobra.Command{keywordsSetCMD, keywordsRemoveCMD} {
		c.Flags().StringVar(&keywordsCard, "card", "", "card id")
		_ = c.MarkFlagRequired("card")
	}
	keywordsSetCMD.Flags().StringArrayVar(&keywordsInclude, "include", nil, `keyword every title must contain, "(a,b)" for either`)
	keywordsSetCMD.Flags().StringArrayVar(&keywordsExclude, "exclude", nil, "keyword no title may contain")
	keywordsImportCMD.Flags().StringVar(&keywordsFile, "file", "keywords.toml", "TOML file with [[cards]] entries")

	keywordsCMD.AddCommand(keywordsSetCMD, keywordsRemoveCMD, keywordsImportCMD)
	rootCmd.AddCommand(keywordsCMD)
}
