package app

import "cityguide/internal/domain"

// Category names, used for logs and metrics.
const (
	CategoryWeather      = "weather"
	CategoryScenery      = "scenery"
	CategoryArchitecture = "architecture"
	CategoryFoodPhotos   = "foodPhotos"
	CategoryDress        = "dress"
	CategoryMusic        = "music"
)

type photoCategory struct {
	name  string
	query string // suffix appended to the place name
	count int
	field func(*domain.CompositeResponse) *[]domain.PhotoRecord
}

// photoCategories is the closed set of photo-backed fields of a CompositeResponse.
var photoCategories = []photoCategory{
	{
		name: CategoryScenery, query: " images", count: 6,
		field: func(r *domain.CompositeResponse) *[]domain.PhotoRecord { return &r.Scenery },
	},
	{
		name: CategoryArchitecture, query: " architecture monuments buildings", count: 4,
		field: func(r *domain.CompositeResponse) *[]domain.PhotoRecord { return &r.Architecture },
	},
	{
		name: CategoryFoodPhotos, query: " food", count: 4,
		field: func(r *domain.CompositeResponse) *[]domain.PhotoRecord { return &r.FoodPhotos },
	},
	{
		name: CategoryDress, query: " traditional dress costume", count: 4,
		field: func(r *domain.CompositeResponse) *[]domain.PhotoRecord { return &r.Dress },
	},
}

// musicQuery searches folk music of the country when known, else of the place.
func musicQuery(q domain.PlaceQuery) string {
	if q.Country != "" {
		return "traditional folk " + q.Country
	}
	return "traditional folk " + q.Name
}
