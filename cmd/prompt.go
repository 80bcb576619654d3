package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/tohu/internal/prompt"
)

var promptCmd = &cobra.Command{
	Use:   "prompt",
	Short: "Print the text or image instruction for a theme without calling any model",
	Example: `  tohu prompt --theme Birds
  tohu prompt --theme Birds --role verb --label Fly --gloss FLY`,
	RunE: func(cmd *cobra.Command, args []string) error {
		in := inputFromFlags(cmd).Normalize()
		if err := in.Validate(); err != nil {
			return err
		}

		role, _ := cmd.Flags().GetString("role")
		if role == "" {
			fmt.Fprintln(cmd.OutOrStdout(), prompt.Text(in.Params()))
			return nil
		}

		label, _ := cmd.Flags().GetString("label")
		gloss, _ := cmd.Flags().GetString("gloss")
		if label == "" {
			label = in.Theme
		}
		if gloss == "" {
			gloss = strings.ToUpper(label)
		}
		fmt.Fprintln(cmd.OutOrStdout(), prompt.Image(in.Theme, role, label, gloss, prompt.SceneSeed(in.Theme)))
		return nil
	},
}

func init() {
	addInputFlags(promptCmd)
	promptCmd.Flags().String("role", "", "Image role (noun, verb, location, number, object, setting, scene); empty prints the text instruction")
	promptCmd.Flags().String("label", "", "Component label for an image instruction (default: the theme)")
	promptCmd.Flags().String("gloss", "", "NZSL gloss for an image instruction (default: the upper-cased label)")
}
