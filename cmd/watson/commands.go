package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cognicore/watson/pkg/watson"
	"github.com/cognicore/watson/pkg/watson/internalerr"
)

func newAskCmd(a *app) *cobra.Command {
	var (
		character string
		all       bool
	)
	cmd := &cobra.Command{
		Use:   "ask [question]",
		Short: "Ask a character a question, or start an interactive session",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			w, err := a.open(ctx)
			if err != nil {
				return err
			}
			defer w.Close()

			out := cmd.OutOrStdout()
			if all {
				if len(args) == 0 {
					return internalerr.Wrap(internalerr.ErrInvalidInput, "--all needs a question")
				}
				answers, err := w.AskAll(ctx, strings.Join(args, " "))
				if err != nil {
					return err
				}
				for _, ans := range answers {
					fmt.Fprintf(out, "%s: %s\n", ans.Character, ans.Response)
				}
				return nil
			}
			if len(args) > 0 {
				ans, err := w.Ask(ctx, character, strings.Join(args, " "))
				if err != nil {
					return err
				}
				fmt.Fprintln(out, ans.Response)
				return nil
			}
			return repl(cmd, w, character, cmd.InOrStdin(), out)
		},
	}
	cmd.Flags().StringVarP(&character, "character", "c", "policeman", "Character to question")
	cmd.Flags().BoolVar(&all, "all", false, "Ask every character")
	return cmd
}

// repl reads one question per line. A line of the form "/talk <name>"
// switches to another character.
func repl(cmd *cobra.Command, w *watson.Watson, character string, in io.Reader, out io.Writer) error {
	ctx := cmd.Context()

	fmt.Fprintf(out, "Characters: %s\n", strings.Join(w.Characters(), ", "))
	fmt.Fprintf(out, "Talking to the %s. Type /talk <name> to switch, Ctrl+D to exit.\n\n", character)

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprintf(out, "%s> ", character)
		if !scanner.Scan() {
			break
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if name, ok := strings.CutPrefix(line, "/talk "); ok {
			name = strings.ToLower(strings.TrimSpace(name))
			if _, err := w.Memory(ctx, name); err != nil {
				fmt.Fprintln(out, "Error:", err)
				continue
			}
			character = name
			continue
		}

		ans, err := w.Ask(ctx, character, line)
		if err != nil {
			fmt.Fprintln(out, "Error:", err)
			continue
		}
		fmt.Fprintln(out, ans.Response)
	}

	fmt.Fprintln(out, "\nGoodbye!")
	return scanner.Err()
}

func newFactsCmd(a *app) *cobra.Command {
	var character string
	cmd := &cobra.Command{
		Use:   "facts",
		Short: "List the facts a character knows, or the whole story",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, err := a.openStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()
			_, world, err := a.load(ctx, st)
			if err != nil {
				return err
			}

			g := world.Main()
			if character != "" {
				if g, err = world.View(character); err != nil {
					return err
				}
			}
			for _, line := range world.FactStrings(g) {
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&character, "character", "c", "", "Character whose knowledge to list")
	return cmd
}

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate the story, lexicon and parses",
		Long: `check compiles the story: every name must be in the vocabulary and
every character's knowledge must agree with the main facts.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, err := a.openStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()
			comp, world, err := a.load(ctx, st)
			if err != nil {
				return err
			}

			stats := comp.Lexicon.Stats()
			fmt.Fprintf(cmd.OutOrStdout(), "ok: %d entities, %d predicates, %d facts, %d characters, %d synonym groups, %d parses\n",
				world.Assoc.EntityCount(),
				world.Assoc.PredicateCount(),
				world.Main().Len(),
				len(world.Story.Characters),
				stats.SynonymGroups,
				comp.Parser.Len(),
			)
			return nil
		},
	}
}

func newImportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import <name>",
		Short: "Check the configured story and save it in the database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if a.cfg.DB == "" {
				return internalerr.Wrap(internalerr.ErrInvalidInput, "import needs --db")
			}
			st, err := a.openStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()
			_, world, err := a.load(ctx, st)
			if err != nil {
				return err
			}
			if err := st.SaveStory(ctx, args[0], world.Story); err != nil {
				return err
			}
			a.logger.Infow("Imported story", "name", args[0], "title", world.Story.Title)
			fmt.Fprintf(cmd.OutOrStdout(), "imported %s\n", args[0])
			return nil
		},
	}
}

func newStoriesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stories",
		Short: "List stories saved in the database",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, err := a.openStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()
			names, err := st.ListStories(ctx)
			if err != nil {
				return err
			}
			for _, name := range names {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}

func newTranscriptCmd(a *app) *cobra.Command {
	var character string
	cmd := &cobra.Command{
		Use:   "transcript",
		Short: "Show what a character was recently asked",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			w, err := a.open(ctx)
			if err != nil {
				return err
			}
			defer w.Close()

			entries, err := w.Memory(ctx, character)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, e := range entries {
				fmt.Fprintf(out, "[%s] Q: %s\n", e.At.Local().Format("2006-01-02 15:04:05"), e.Input)
				fmt.Fprintf(out, "    A: %s\n", e.Response)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&character, "character", "c", "policeman", "Character whose memory to show")
	return cmd
}
