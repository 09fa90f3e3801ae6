package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/statutree/statutree/pkg/profile"
)

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "List built-in jurisdiction profiles",
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, code := range profile.Codes() {
			p, err := profile.Get(code)
			if err != nil {
				return err
			}
			levels := make([]string, len(p.Levels))
			for i, l := range p.Levels {
				levels[i] = string(l)
			}
			fmt.Printf("%-8s %-28s levels: %s\n", p.Code, p.Name, strings.Join(levels, " > "))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(profilesCmd)
}
