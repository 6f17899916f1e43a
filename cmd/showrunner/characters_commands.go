package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"showrunner/internal/roster"
)

var titleCaser = cases.Title(language.English)

func newCharactersCommand(ctx *commandContext) *cobra.Command {
	charactersCmd := &cobra.Command{
		Use:   "characters",
		Short: "Manage the talent roster",
	}

	charactersCmd.AddCommand(newCharactersListCommand(ctx))
	charactersCmd.AddCommand(newCharactersAddCommand(ctx))
	charactersCmd.AddCommand(newCharactersSetVoiceCommand(ctx))
	charactersCmd.AddCommand(newCharactersRemoveCommand(ctx))

	return charactersCmd
}

func newCharactersListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List roster characters",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.rosterStore()
			if err != nil {
				return err
			}
			chars, err := store.Characters()
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(chars))
			for _, id := range chars.IDs() {
				char := chars[id]
				_, _, voiced := char.VoiceRef()
				rows = append(rows, []string{
					id,
					char.Name,
					char.Role,
					titleCaser.String(string(char.VoiceProvider)),
					yesNo(voiced),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"ID", "NAME", "ROLE", "PROVIDER", "VOICED"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignLeft},
			))
			return nil
		},
	}
}

func newCharactersAddCommand(ctx *commandContext) *cobra.Command {
	var (
		name        string
		role        string
		description string
		provider    string
		voiceID     string
	)

	cmd := &cobra.Command{
		Use:   "add <id>",
		Short: "Add a character to the roster",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.rosterStore()
			if err != nil {
				return err
			}
			if err := store.AddCharacter(args[0], roster.Character{
				Name:          name,
				Role:          role,
				Description:   description,
				VoiceProvider: roster.Provider(provider),
				VoiceID:       voiceID,
			}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added character %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Display name")
	cmd.Flags().StringVar(&role, "role", "", "Role label")
	cmd.Flags().StringVar(&description, "description", "", "Free-text description")
	cmd.Flags().StringVar(&provider, "provider", "none", "Voice provider (hume, elevenlabs, none)")
	cmd.Flags().StringVar(&voiceID, "voice-id", "", "Provider voice identifier")
	return cmd
}

func newCharactersSetVoiceCommand(ctx *commandContext) *cobra.Command {
	var (
		provider string
		voiceID  string
	)

	cmd := &cobra.Command{
		Use:   "set-voice <id>",
		Short: "Update a character's voice assignment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.rosterStore()
			if err != nil {
				return err
			}
			chars, err := store.Characters()
			if err != nil {
				return err
			}
			char, ok := chars[args[0]]
			if !ok {
				return fmt.Errorf("character not found: %s", args[0])
			}
			char.VoiceProvider = roster.Provider(provider)
			char.VoiceID = voiceID
			if err := store.UpdateCharacter(args[0], char); err != nil {
				return err
			}
			if _, _, voiced := char.VoiceRef(); voiced {
				fmt.Fprintf(cmd.OutOrStdout(), "Voice for %s set to %s/%s\n", args[0], provider, voiceID)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Voice for %s cleared\n", args[0])
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&provider, "provider", "none", "Voice provider (hume, elevenlabs, none)")
	cmd.Flags().StringVar(&voiceID, "voice-id", "", "Provider voice identifier")
	return cmd
}

func newCharactersRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a character from the roster",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.rosterStore()
			if err != nil {
				return err
			}
			if err := store.RemoveCharacter(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed character %s\n", args[0])
			return nil
		},
	}
}
