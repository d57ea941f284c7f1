package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pbaille/sbsolver/internal/api"
	"github.com/pbaille/sbsolver/internal/domain"
	"github.com/pbaille/sbsolver/internal/show"
)

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show corpus and definition cache statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, done, err := openCorpus()
			if err != nil {
				return err
			}
			defer done()

			if err := c.Bootstrap(cmd.Context(), newFetcher()); err != nil {
				return fmt.Errorf("bootstrap corpus: %w", err)
			}
			return printStats(c)
		},
	}
}

func newWordsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "new-words",
		Short: "List words added since the corpus was created",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := getSQLite("new-words")
			if err != nil {
				return err
			}
			defer s.Close()

			adds, err := s.NewWords()
			if err != nil {
				return err
			}

			words := make([]domain.Word, len(adds))
			for i, a := range adds {
				words[i] = domain.NewWord(a.Word)
			}

			d, err := newDefiner(s)
			if err != nil {
				return err
			}
			if err := d.Define(cmd.Context(), words); err != nil {
				return err
			}

			fmt.Println(show.Additions(adds, words, cfg.Define.MaxEntries, cfg.Display.Width))
			return nil
		},
	}
}

func refreshDefsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "refresh-defs",
		Short: "Re-fetch cached definitions and update those that changed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := getSQLite("refresh-defs")
			if err != nil {
				return err
			}
			defer s.Close()

			d, err := newDefiner(s)
			if err != nil {
				return err
			}

			fmt.Print("Refreshing definitions... ")
			updated, err := d.Refresh(cmd.Context(), s)
			if err != nil {
				fmt.Println("failed")
				return err
			}
			fmt.Println("done")

			fmt.Printf("%d definitions updated\n", len(updated))
			if len(updated) > 0 {
				fmt.Println(show.Wrap(strings.Join(updated, " "), cfg.Display.Width, "  ", "  "))
			}
			return nil
		},
	}
}

func undefinedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "undefined",
		Short: "List words whose definition lookup found nothing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := getSQLite("undefined")
			if err != nil {
				return err
			}
			defer s.Close()

			words, err := s.UndefinedWords()
			if err != nil {
				return err
			}

			fmt.Printf("%d undefined words\n", len(words))
			if len(words) > 0 {
				fmt.Println(show.Wrap(strings.Join(words, " "), cfg.Display.Width, "  ", "  "))
			}
			return nil
		},
	}
}

func serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the JSON API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, done, err := openCorpus()
			if err != nil {
				return err
			}
			// Note: the server runs until the process exits
			defer done()

			client := newFetcher()
			if err := c.Bootstrap(cmd.Context(), client); err != nil {
				return fmt.Errorf("bootstrap corpus: %w", err)
			}

			if addr == "" {
				addr = cfg.Serve.Addr
			}
			fmt.Printf("Starting server on %s\n", addr)
			return api.New(client, c, addr).Run()
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "server address (default $SERVE_ADDR or :8080)")
	return cmd
}
