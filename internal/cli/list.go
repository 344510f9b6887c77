package cli

import (
	"fmt"
	"io"

	"letsstretch/internal/core/model"

	"github.com/spf13/cobra"
)

var listFlags struct {
	categories []string
	area       string
	verbose    bool
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the stretches in the catalog",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	flags := listCmd.Flags()
	flags.StringSliceVarP(&listFlags.categories, "category", "c", nil, "only list these categories")
	flags.StringVarP(&listFlags.area, "area", "a", "", "only list stretches for this body area")
	flags.BoolVarP(&listFlags.verbose, "long", "l", false, "include descriptions and instructions")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	repository, err := loadCatalog()
	if err != nil {
		return err
	}

	categories, err := parseCategories(listFlags.categories)
	if err != nil {
		return fmt.Errorf("parse categories: %w", err)
	}

	var stretches []model.Stretch
	if len(categories) == 0 {
		stretches = repository.All()
	} else {
		for _, category := range categories {
			stretches = append(stretches, repository.ByCategory(category)...)
		}
	}
	if listFlags.area != "" {
		stretches = filterArea(stretches, listFlags.area)
	}

	return writeList(cmd.OutOrStdout(), stretches, listFlags.verbose)
}

func filterArea(stretches []model.Stretch, area string) []model.Stretch {
	var matched []model.Stretch
	for _, stretch := range stretches {
		if stretch.TargetArea == area {
			matched = append(matched, stretch)
		}
	}
	return matched
}

func writeList(out io.Writer, stretches []model.Stretch, long bool) error {
	if len(stretches) == 0 {
		fmt.Fprintln(out, "No stretches found.")
		return nil
	}

	idWidth := len("ID")
	nameWidth := len("NAME")
	for _, stretch := range stretches {
		if len(stretch.ID) > idWidth {
			idWidth = len(stretch.ID)
		}
		if len(stretch.Name) > nameWidth {
			nameWidth = len(stretch.Name)
		}
	}

	fmt.Fprintf(out, "%-*s  %-*s  %-13s  %-9s  %s\n", idWidth, "ID", nameWidth, "NAME", "CATEGORY", "AREA", "SECONDS")
	for _, stretch := range stretches {
		fmt.Fprintf(out, "%-*s  %-*s  %-13s  %-9s  %d\n",
			idWidth, stretch.ID, nameWidth, stretch.Name, stretch.Category.DisplayName(), stretch.TargetArea, stretch.DurationSeconds)
		if long {
			printStretchBody(out, stretch)
		}
	}
	return nil
}
