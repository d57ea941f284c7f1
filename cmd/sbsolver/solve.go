package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/pbaille/sbsolver/internal/corpus"
	"github.com/pbaille/sbsolver/internal/domain"
	"github.com/pbaille/sbsolver/internal/show"
	"github.com/pbaille/sbsolver/internal/solver"
	"github.com/pbaille/sbsolver/internal/store"
)

// listRounds is the --past value meaning "show the available rounds".
const listRounds = -1

type solveOptions struct {
	answers bool
	define  bool
	hints   bool
	stats   bool
	past    int
	letters string
}

func solveCmd() *cobra.Command {
	var opts solveOptions

	cmd := &cobra.Command{
		Use:   "sbsolver",
		Short: "Spelling Bee solver",
		Long: "Solves the published Spelling Bee puzzle against a local word corpus,\n" +
			"compares the result with the official answers and adds any missing\n" +
			"words to the corpus.",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			past, err := pastIndex(opts.past, args)
			if err != nil {
				return err
			}
			opts.past = past
			return runSolve(cmd.Context(), opts)
		},
	}

	f := cmd.Flags()
	f.BoolVarP(&opts.answers, "answers", "a", false, "show the puzzle answers")
	f.BoolVarP(&opts.define, "define", "d", false, "show answer definitions")
	f.BoolVar(&opts.hints, "hints", false, "show list of hints")
	f.IntVarP(&opts.past, "past", "p", 0, "load puzzle from [n] days ago - show available days if [n] is omitted")
	f.Lookup("past").NoOptDefVal = strconv.Itoa(listRounds)
	f.StringVar(&opts.letters, "letters", "", "solve these letters instead of a published puzzle, center letter first")
	f.BoolVarP(&opts.stats, "stats", "s", false, "show database stats")

	return cmd
}

// pastIndex resolves the round index. "--past 3" leaves 3 as a positional
// argument because the flag value is optional.
func pastIndex(past int, args []string) (int, error) {
	if len(args) == 0 {
		return past, nil
	}
	if past != listRounds {
		return 0, fmt.Errorf("unexpected argument %q", args[0])
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid --past value %q", args[0])
	}
	return n, nil
}

func runSolve(ctx context.Context, opts solveOptions) error {
	c, st, done, err := openCorpus()
	if err != nil {
		return err
	}
	defer done()

	client := newFetcher()
	if err := c.Bootstrap(ctx, client); err != nil {
		return fmt.Errorf("bootstrap corpus: %w", err)
	}

	manual := opts.letters != ""
	var round domain.GameRound
	if manual {
		p, err := domain.ParsePuzzle(opts.letters)
		if err != nil {
			return err
		}
		round = domain.GameRound{Date: time.Now().Format("January 2, 2006"), Puzzle: p}
	} else {
		rounds, err := client.FetchRounds(ctx)
		if err != nil {
			return fmt.Errorf("fetch rounds: %w", err)
		}
		if opts.past == listRounds {
			fmt.Println(show.Rounds(rounds))
			return nil
		}
		round, err = solver.SelectRound(rounds, opts.past)
		if err != nil {
			return err
		}
	}
	log.Info().Str("round", round.Date).Str("letters", round.Puzzle.Letters).Msg("solving")

	width := cfg.Display.Width
	fmt.Println("\n" + show.Header(round))

	found, err := solver.Solve(c, round.Puzzle)
	if err != nil {
		return err
	}
	log.Debug().Strs("found", domain.Texts(found)).Msg("solved")

	// Hints and definitions are about the answers; without a published
	// round the found words stand in for them.
	words := round.Answers
	if manual {
		words = found
	}

	if opts.hints {
		fmt.Println("\n" + show.Hints(words, round.Puzzle))
	} else {
		fmt.Println("\n" + show.Words("possible words found", found, width))
		if opts.answers && !manual {
			fmt.Println("\n" + show.Words("official answers", round.Answers, width))
		}
	}

	if !manual {
		added, rejected, err := solver.Maintain(c, found, round.Answers)
		if err != nil {
			return err
		}
		if len(added) > 0 {
			fmt.Println("\n" + show.Missing(added))
		}
		if len(rejected) > 0 {
			fmt.Println("\n" + show.Rejected(rejected))
		}
	}

	if opts.define {
		d, err := newDefiner(st)
		if err != nil {
			return err
		}
		if err := d.Define(ctx, words); err != nil {
			return err
		}
		if opts.hints {
			rng := rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
			fmt.Println("\n" + show.DefinitionHints(words, width, rng))
		} else {
			fmt.Println("\n" + show.Definitions(words, cfg.Define.MaxEntries, width))
		}
	}

	if opts.stats {
		return printStats(c)
	}
	return nil
}

// printStats reports on either backend. Only sqlite tracks definitions.
func printStats(c corpus.Corpus) error {
	switch c := c.(type) {
	case *store.Store:
		stats, err := c.Stats()
		if err != nil {
			return err
		}
		fmt.Println("\n" + show.Stats(cfg.Corpus.DBPath, stats, cfg.Display.Width))
	case *corpus.FileCorpus:
		fmt.Println("\n" + show.FileStats(cfg.Corpus.WordListFile, c.BaseCount(), c.Len()))
	default:
		return fmt.Errorf("no stats for corpus backend %q", cfg.Corpus.Backend)
	}
	return nil
}
