package main

import (
	"fmt"
	"sort"

	"github.com/danielholmes839/storefront-ui/internal/locator"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

func newLocatorsCommand(fs afero.Fs) *cobra.Command {
	var overridesFile string

	cmd := &cobra.Command{
		Use:   "locators",
		Short: "Inspect the locator registries",
	}
	cmd.PersistentFlags().StringVar(&overridesFile, "overrides", "", "YAML file with locator overrides")

	list := &cobra.Command{
		Use:   "list [page]",
		Short: "Print the locators of every page, or of one page",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			registries, err := locator.Load(fs, overridesFile)
			if err != nil {
				return err
			}

			pageNames := []string{}
			for page := range registries {
				pageNames = append(pageNames, page)
			}
			sort.Strings(pageNames)
			if len(args) == 1 {
				if _, ok := registries[args[0]]; !ok {
					return fmt.Errorf("unknown page %q", args[0])
				}
				pageNames = args
			}

			out := cmd.OutOrStdout()
			for _, page := range pageNames {
				reg := registries[page]
				for _, name := range reg.Names() {
					fmt.Fprintf(out, "%s\t%s\t%s\n", page, name, reg.MustLookup(name))
				}
			}
			return nil
		},
	}

	var page string
	check := &cobra.Command{
		Use:   "check <snapshot.html>",
		Short: "Count how many elements of a saved page each locator matches",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			registries, err := locator.Load(fs, overridesFile)
			if err != nil {
				return err
			}
			reg, ok := registries[page]
			if !ok {
				return fmt.Errorf("unknown page %q", page)
			}

			f, err := fs.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			results, err := locator.Check(reg, f)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			broken := 0
			for _, r := range results {
				status := "ok"
				switch {
				case r.Skipped:
					status = "skipped"
				case !r.OK():
					status = "BROKEN"
					broken++
				}
				fmt.Fprintf(out, "%-8s %-15s %-50s %d\n", status, r.Name, r.Locator, r.Matches)
			}

			if broken > 0 {
				return fmt.Errorf("%d locator(s) do not match exactly one element", broken)
			}
			return nil
		},
	}
	check.Flags().StringVar(&page, "page", locator.LoginPage, "page registry to check")

	cmd.AddCommand(list, check)
	return cmd
}
