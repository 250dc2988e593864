package cli

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"staybook/internal/model"
	"staybook/internal/service"
	"staybook/internal/utils"
)

// Shorthand accepted by --house-type and --place-type
var (
	houseTypeAliases = map[string]string{
		"b&b":   string(model.HouseTypeBedAndBreakfast),
		"bnb":   string(model.HouseTypeBedAndBreakfast),
		"flat":  string(model.HouseTypeApartment),
		"condo": string(model.HouseTypeApartment),
	}
	placeTypeAliases = map[string]string{
		"entire": string(model.PlaceTypeEntirePlace),
		"whole":  string(model.PlaceTypeEntirePlace),
		"room":   string(model.PlaceTypePrivateRoom),
		"shared": string(model.PlaceTypeSharedRoom),
	}
)

type propertiesOptions struct {
	location   string
	rateMin    float64
	rateMax    float64
	starsMin   float64
	starsMax   float64
	houseTypes []string
	placeTypes []string
	superHost  bool
	page       int
	pageSize   int
	maxLabels  int
}

func newPropertiesCmd(root *rootOptions) *cobra.Command {
	opts := &propertiesOptions{}

	cmd := &cobra.Command{
		Use:     "properties",
		Aliases: []string{"ls"},
		Short:   "List properties matching the given filters",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.run(cmd, root)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.location, "location", "", "country code, e.g. CA, CR or US")
	flags.Float64Var(&opts.rateMin, "rate-min", model.RateFilterMin, "minimum nightly rate")
	flags.Float64Var(&opts.rateMax, "rate-max", model.RateFilterMax, "maximum nightly rate")
	flags.Float64Var(&opts.starsMin, "stars-min", model.StarsFilterMin, "minimum star rating")
	flags.Float64Var(&opts.starsMax, "stars-max", model.StarsFilterMax, "maximum star rating")
	flags.StringSliceVar(&opts.houseTypes, "house-type", nil, "house types to include (repeatable)")
	flags.StringSliceVar(&opts.placeTypes, "place-type", nil, "place types to include (repeatable)")
	flags.BoolVar(&opts.superHost, "super-host", false, "only properties of super hosts")
	flags.IntVar(&opts.page, "page", 1, "page to show")
	flags.IntVar(&opts.pageSize, "page-size", 0, "properties per page (overrides PROPERTIES_PER_PAGE)")
	flags.IntVar(&opts.maxLabels, "max-labels", 0, "page labels to show (overrides MAX_PAGE_LABELS)")

	return cmd
}

func (o *propertiesOptions) run(cmd *cobra.Command, root *rootOptions) error {
	filters, err := o.filterSpec(cmd.Flags().Changed)
	if err != nil {
		return err
	}
	if o.page < 1 {
		return fmt.Errorf("page must be 1 or more, got %d", o.page)
	}

	pageSize := root.cfg.Listing.PageSize
	if o.pageSize > 0 {
		pageSize = o.pageSize
	}
	maxLabels := root.cfg.Listing.MaxPageLabels
	if o.maxLabels > 0 {
		maxLabels = o.maxLabels
	}

	ctx := cmd.Context()
	listing := service.NewListingService(root.backend(), pageSize, maxLabels)
	page, err := listing.List(ctx, &model.ListRequest{Filters: filters, Page: o.page})
	if err != nil {
		return err
	}

	zerolog.Ctx(ctx).Debug().
		Int("matched", page.Total).
		Int64("took_ms", page.Took).
		Msg("properties listed")

	return renderPropertyPage(cmd.OutOrStdout(), page)
}

// filterSpec turns the flags the user set into filters; untouched flags filter nothing
func (o *propertiesOptions) filterSpec(changed func(string) bool) (model.FilterSpec, error) {
	filters := model.FilterSpec{
		LocationFilter:  strings.ToUpper(strings.TrimSpace(o.location)),
		SuperHostFilter: o.superHost,
	}

	var err error
	if filters.RateFilter, err = flagRange(changed, "rate", o.rateMin, o.rateMax); err != nil {
		return filters, err
	}
	if filters.StarsFilter, err = flagRange(changed, "stars", o.starsMin, o.starsMax); err != nil {
		return filters, err
	}

	for _, raw := range o.houseTypes {
		houseType, ok := model.ParseHouseType(resolveType(raw, model.HouseTypes, houseTypeAliases))
		if !ok {
			return filters, fmt.Errorf("unknown house type %q (choose from %s)", raw, joinTypes(model.HouseTypes))
		}
		filters.HouseTypeFilter = append(filters.HouseTypeFilter, houseType)
	}
	for _, raw := range o.placeTypes {
		placeType, ok := model.ParsePlaceType(resolveType(raw, model.PlaceTypes, placeTypeAliases))
		if !ok {
			return filters, fmt.Errorf("unknown place type %q (choose from %s)", raw, joinTypes(model.PlaceTypes))
		}
		filters.PlaceTypeFilter = append(filters.PlaceTypeFilter, placeType)
	}

	return filters, nil
}

func flagRange(changed func(string) bool, name string, lo, hi float64) (*model.Range, error) {
	var loPtr, hiPtr *float64
	if changed(name + "-min") {
		loPtr = &lo
	}
	if changed(name + "-max") {
		hiPtr = &hi
	}
	r, err := model.OpenRange(loPtr, hiPtr)
	if err != nil {
		return nil, fmt.Errorf("--%s-min must not exceed --%s-max", name, name)
	}
	return r, nil
}

// resolveType maps loose input onto a type name, returning raw unchanged when nothing matches
func resolveType[T ~string](raw string, types []T, aliases map[string]string) string {
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = string(t)
	}
	if name, ok := utils.FuzzyMatch(raw, names, aliases); ok {
		return name
	}
	return raw
}

func joinTypes[T ~string](types []T) string {
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = fmt.Sprintf("%q", string(t))
	}
	return strings.Join(names, ", ")
}
