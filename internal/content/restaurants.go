package content

import "time"

// restaurants is the dining catalog.
var restaurants = []Restaurant{
	{
		ID: "mk-cosmic-rays", ParkID: "magic-kingdom", Land: "Tomorrowland",
		Name: "Cosmic Ray's Starlight Cafe", Cuisine: "american", Service: ServiceQuick,
		PriceTier: 1, DiningPlanCredits: 1,
		DietaryTags: []string{"vegetarian"},
		Tags:        []string{"burgers", "indoor-seating"},
		Coordinates: Coordinates{28.4186, -81.5786},
	},
	{
		ID: "mk-be-our-guest", ParkID: "magic-kingdom", Land: "Fantasyland",
		Name: "Be Our Guest Restaurant", Cuisine: "french", Service: ServiceTable,
		PriceTier: 3, DiningPlanCredits: 2,
		DietaryTags: []string{"vegetarian", "gluten-free"},
		Tags:        []string{"themed", "reservation"},
		Coordinates: Coordinates{28.4212, -81.5812},
	},
	{
		ID: "mk-crystal-palace", ParkID: "magic-kingdom", Land: "Main Street",
		Name: "The Crystal Palace", Cuisine: "buffet", Service: ServiceTable,
		PriceTier: 3, DiningPlanCredits: 1,
		DietaryTags: []string{"vegetarian", "vegan", "gluten-free"},
		Tags:        []string{"character-dining", "buffet"},
		Coordinates: Coordinates{28.4168, -81.5830},
	},
	{
		ID: "ep-les-halles", ParkID: "epcot", Land: "France Pavilion",
		Name: "Les Halles Boulangerie", Cuisine: "french", Service: ServiceQuick,
		PriceTier: 1, DiningPlanCredits: 1,
		DietaryTags: []string{"vegetarian"},
		Tags:        []string{"bakery", "grab-and-go"},
		Coordinates: Coordinates{28.3679, -81.5534},
	},
	{
		ID: "ep-garden-grill", ParkID: "epcot", Land: "World Nature",
		Name: "Garden Grill Restaurant", Cuisine: "american", Service: ServiceTable,
		PriceTier: 3, DiningPlanCredits: 1,
		DietaryTags: []string{"vegetarian", "vegan", "gluten-free"},
		Tags:        []string{"character-dining", "rotating"},
		Coordinates: Coordinates{28.3731, -81.5526},
	},
	{
		ID: "ep-monsieur-paul", ParkID: "epcot", Land: "France Pavilion",
		Name: "Monsieur Paul", Cuisine: "french", Service: ServiceSignature,
		PriceTier: 4, DiningPlanCredits: 2,
		DietaryTags: []string{"vegetarian", "gluten-free"},
		Tags:        []string{"fine-dining", "reservation"},
		Coordinates: Coordinates{28.3677, -81.5536},
	},
	{
		ID: "hs-docking-bay-7", ParkID: "hollywood-studios", Land: "Galaxy's Edge",
		Name: "Docking Bay 7 Food and Cargo", Cuisine: "fusion", Service: ServiceQuick,
		PriceTier: 2, DiningPlanCredits: 1,
		DietaryTags: []string{"vegetarian", "vegan"},
		Tags:        []string{"themed", "indoor-seating"},
		Coordinates: Coordinates{28.3551, -81.5615},
	},
	{
		ID: "hs-sci-fi-dine-in", ParkID: "hollywood-studios", Land: "Commissary Lane",
		Name: "Sci-Fi Dine-In Theater", Cuisine: "american", Service: ServiceTable,
		PriceTier: 2, DiningPlanCredits: 1,
		DietaryTags: []string{"vegetarian", "gluten-free"},
		Tags:        []string{"themed", "reservation", "dark"},
		Coordinates: Coordinates{28.3581, -81.5594},
	},
}

// resorts is the on-property hotel catalog.
var resorts = []Resort{
	{ID: "rs-pop-century", Name: "Pop Century Resort", Tier: "value", Transport: []string{"bus", "skyliner"}},
	{ID: "rs-caribbean-beach", Name: "Caribbean Beach Resort", Tier: "moderate", Transport: []string{"bus", "skyliner"}},
	{ID: "rs-contemporary", Name: "Contemporary Resort", Tier: "deluxe", Transport: []string{"monorail", "bus", "walk"}},
	{ID: "rs-grand-floridian", Name: "Grand Floridian Resort", Tier: "deluxe", Transport: []string{"monorail", "boat", "bus"}},
}

// events is the seasonal event catalog.
var events = []Event{
	{
		ID: "ev-food-wine", Name: "International Food & Wine Festival",
		ParkIDs:   []string{"epcot"},
		StartDate: time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 11, 21, 0, 0, 0, 0, time.UTC),
	},
	{
		ID: "ev-halloween-party", Name: "Not-So-Scary Halloween Party",
		ParkIDs:   []string{"magic-kingdom"},
		StartDate: time.Date(2026, 8, 11, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 10, 31, 0, 0, 0, 0, time.UTC),
	},
	{
		ID: "ev-holiday-spectacular", Name: "Jingle Bell Jamboree",
		ParkIDs:   []string{"magic-kingdom", "hollywood-studios"},
		StartDate: time.Date(2026, 11, 6, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 12, 30, 0, 0, 0, 0, time.UTC),
	},
}
