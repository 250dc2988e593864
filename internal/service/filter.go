package service

import (
	"staybook/internal/model"
)

// FilterProperties returns the properties matching every active filter in
// filters, in their original order. The input slice is not modified.
//
// The super host criterion is evaluated against host averages over the
// full properties list, not the filtered subset.
func FilterProperties(properties []model.Property, filters model.FilterSpec) []model.Property {
	if len(properties) == 0 {
		return []model.Property{}
	}

	houseTypes := make(map[model.HouseType]struct{}, len(filters.HouseTypeFilter))
	for _, ht := range filters.HouseTypeFilter {
		houseTypes[ht] = struct{}{}
	}
	placeTypes := make(map[model.PlaceType]struct{}, len(filters.PlaceTypeFilter))
	for _, pt := range filters.PlaceTypeFilter {
		placeTypes[pt] = struct{}{}
	}

	var hostAverages map[string]float64
	if filters.SuperHostFilter {
		hostAverages = averageStarsByHost(properties)
	}

	results := make([]model.Property, 0, len(properties))
	for _, property := range properties {
		if filters.LocationFilter != "" && filters.LocationFilter != property.Country {
			continue
		}

		if filters.SuperHostFilter && hostAverages[property.HostID] < model.SuperHostMinAverage {
			continue
		}

		if failsRange(filters.RateFilter, property.Rate) || failsRange(filters.StarsFilter, property.Stars) {
			continue
		}

		if failsSet(houseTypes, property.HouseType) || failsSet(placeTypes, property.PlaceType) {
			continue
		}

		results = append(results, property)
	}

	return results
}

// IsSuperHost reports whether hostID averages at least SuperHostMinAverage
// stars across its properties in the given list
func IsSuperHost(hostID string, properties []model.Property) bool {
	avg, ok := averageStarsByHost(properties)[hostID]
	return ok && avg >= model.SuperHostMinAverage
}

// averageStarsByHost computes the mean star rating for every host in one pass
func averageStarsByHost(properties []model.Property) map[string]float64 {
	type tally struct {
		sum   float64
		count int
	}

	tallies := make(map[string]*tally)
	for _, p := range properties {
		t, ok := tallies[p.HostID]
		if !ok {
			t = &tally{}
			tallies[p.HostID] = t
		}
		t.sum += p.Stars
		t.count++
	}

	averages := make(map[string]float64, len(tallies))
	for hostID, t := range tallies {
		averages[hostID] = t.sum / float64(t.count)
	}
	return averages
}

func failsRange(r *model.Range, v float64) bool {
	return r != nil && !r.Contains(v)
}

func failsSet[T comparable](set map[T]struct{}, v T) bool {
	if len(set) == 0 {
		return false
	}
	_, ok := set[v]
	return !ok
}
