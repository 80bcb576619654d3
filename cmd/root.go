package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tohu",
	Short: "Bilingual NZSL/English learning packs for early childhood",
	Long: "Tohu builds Whole-Part-Whole learning packs for tamariki: a short NZSL/English\n" +
		"sentence, a picture for each part of it, teaching prompts and a printable handout.",
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML config file (overrides TOHU_CONFIG env var)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(promptCmd)
	rootCmd.AddCommand(versionCmd)
}
