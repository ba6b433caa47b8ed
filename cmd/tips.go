package cmd

import (
	"fmt"

	"github.com/longkey1/mahjong-chat/internal/simulated"
	"github.com/spf13/cobra"
)

// tipsCmd represents the tips command
var tipsCmd = &cobra.Command{
	Use:   "tips",
	Short: "List the tips the simulated provider can reply with",
	Long: `List every tip the simulated provider picks its replies from.
Each simulated reply is one of these, chosen at random.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		width := len(fmt.Sprint(len(simulated.Tips)))
		for i, tip := range simulated.Tips {
			fmt.Printf("%*d. %s\n", width, i+1, tip)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tipsCmd)
}
