package cmd

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"agoranet.io/agora/lib/org"

	"agoranet.io/agora/cmd/agora/common"
)

var (
	membershipCmd *cobra.Command

	flagFormat string = "json"
)

func init() {
	membershipCmd = &cobra.Command{
		Use:   "membership <file>",
		Short: "Validate a membership file and print the parsed organizations",
		Args:  cobra.ExactArgs(1),
		Run: func(c *cobra.Command, args []string) {
			membership, err := org.NewMembershipFromFile(args[0])
			if err != nil {
				common.PrintError(c, err)
			}

			encode, found := common.DefaultEncodes[flagFormat]
			if !found {
				common.PrintFlagsError(c, "--format", errors.New("unknown format"))
			}

			if err := encode(membership, os.Stdout); err != nil {
				common.PrintError(c, err)
			}
		},
	}
	membershipCmd.Flags().StringVar(&flagFormat, "format", flagFormat, "output format, {json, prettyjson, yaml}")

	rootCmd.AddCommand(membershipCmd)
}
