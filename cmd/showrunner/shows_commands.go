package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"showrunner/internal/roster"
)

func newShowsCommand(ctx *commandContext) *cobra.Command {
	showsCmd := &cobra.Command{
		Use:   "shows",
		Short: "Manage the show catalog",
	}

	showsCmd.AddCommand(newShowsListCommand(ctx))
	showsCmd.AddCommand(newShowsAddCommand(ctx))
	showsCmd.AddCommand(newShowsAddEpisodeCommand(ctx))
	showsCmd.AddCommand(newShowsRemoveCommand(ctx))

	return showsCmd
}

func newShowsListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List shows and their episodes",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.rosterStore()
			if err != nil {
				return err
			}
			shows, err := store.Shows()
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(shows))
			for _, id := range shows.IDs() {
				show := shows[id]
				rows = append(rows, []string{
					id,
					show.Title,
					show.Format,
					show.Narrator,
					strconv.Itoa(len(show.Episodes)),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"SHOW ID", "TITLE", "FORMAT", "NARRATOR", "EPISODES"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight},
			))
			return nil
		},
	}
}

func newShowsAddCommand(ctx *commandContext) *cobra.Command {
	var (
		title       string
		format      string
		description string
		visualStyle string
		narrator    string
		characters  []string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a show",
		RunE: func(cmd *cobra.Command, args []string) error {
			if title == "" {
				return fmt.Errorf("--title is required")
			}
			store, err := ctx.rosterStore()
			if err != nil {
				return err
			}
			id, err := store.CreateShow(roster.Show{
				Title:       title,
				Format:      format,
				Description: description,
				VisualStyle: visualStyle,
				Narrator:    narrator,
				Characters:  characters,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created show %s (%s)\n", id, title)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Show title")
	cmd.Flags().StringVar(&format, "format", "Sitcom", "Show format")
	cmd.Flags().StringVar(&description, "description", "", "Show description")
	cmd.Flags().StringVar(&visualStyle, "visual-style", "", "Visual style notes")
	cmd.Flags().StringVar(&narrator, "narrator", "", "Narrator character id")
	cmd.Flags().StringSliceVar(&characters, "characters", nil, "Cast character ids")
	return cmd
}

func newShowsAddEpisodeCommand(ctx *commandContext) *cobra.Command {
	var (
		title string
		topic string
		tone  string
		notes string
	)

	cmd := &cobra.Command{
		Use:   "add-episode <show-id>",
		Short: "Append an episode to a show",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if title == "" {
				return fmt.Errorf("--title is required")
			}
			store, err := ctx.rosterStore()
			if err != nil {
				return err
			}
			if err := store.AddEpisode(args[0], roster.Episode{
				Title:    title,
				Topic:    topic,
				Tone:     tone,
				RefNotes: notes,
			}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added episode %q to %s\n", title, args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Episode title")
	cmd.Flags().StringVar(&topic, "topic", "", "Episode topic")
	cmd.Flags().StringVar(&tone, "tone", "", "Episode tone")
	cmd.Flags().StringVar(&notes, "notes", "", "Reference notes")
	return cmd
}

func newShowsRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <show-id>",
		Short: "Remove a show",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.rosterStore()
			if err != nil {
				return err
			}
			if err := store.RemoveShow(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed show %s\n", args[0])
			return nil
		},
	}
}
