package content

// parks is the gated-park catalog.
var parks = []Park{
	{ID: "magic-kingdom", Name: "Magic Kingdom", Timezone: "America/New_York", Coordinates: Coordinates{28.4177, -81.5812}},
	{ID: "epcot", Name: "EPCOT", Timezone: "America/New_York", Coordinates: Coordinates{28.3747, -81.5494}},
	{ID: "hollywood-studios", Name: "Hollywood Studios", Timezone: "America/New_York", Coordinates: Coordinates{28.3575, -81.5583}},
}

// attractions is the attraction catalog. IDs are stable slugs referenced by
// trip items, wait samples, and the recommendation engine.
var attractions = []Attraction{
	{
		ID: "mk-space-mountain", ParkID: "magic-kingdom", Land: "Tomorrowland",
		Name: "Space Mountain", Category: CategoryThrill, ThrillLevel: 4,
		HeightMinCM: 112, LightningLane: true, Headliner: true, DurationMin: 10,
		Tags:        []string{"coaster", "dark", "classic"},
		Coordinates: Coordinates{28.4190, -81.5774},
	},
	{
		ID: "mk-big-thunder", ParkID: "magic-kingdom", Land: "Frontierland",
		Name: "Big Thunder Mountain Railroad", Category: CategoryThrill, ThrillLevel: 3,
		HeightMinCM: 102, LightningLane: true, Headliner: true, DurationMin: 10,
		Tags:        []string{"coaster", "outdoor", "classic"},
		Coordinates: Coordinates{28.4200, -81.5846},
	},
	{
		ID: "mk-haunted-mansion", ParkID: "magic-kingdom", Land: "Liberty Square",
		Name: "Haunted Mansion", Category: CategoryDark, ThrillLevel: 2,
		HeightMinCM: 0, LightningLane: true, Headliner: false, DurationMin: 15,
		Tags:        []string{"dark", "classic", "indoor"},
		Coordinates: Coordinates{28.4205, -81.5832},
	},
	{
		ID: "mk-pirates", ParkID: "magic-kingdom", Land: "Adventureland",
		Name: "Pirates of the Caribbean", Category: CategoryDark, ThrillLevel: 2,
		HeightMinCM: 0, LightningLane: true, Headliner: false, DurationMin: 15,
		Tags:        []string{"dark", "boat", "classic", "indoor"},
		Coordinates: Coordinates{28.4181, -81.5846},
	},
	{
		ID: "mk-dumbo", ParkID: "magic-kingdom", Land: "Fantasyland",
		Name: "Dumbo the Flying Elephant", Category: CategoryKids, ThrillLevel: 1,
		HeightMinCM: 0, LightningLane: false, Headliner: false, DurationMin: 5,
		Tags:        []string{"spinner", "outdoor", "toddler"},
		Coordinates: Coordinates{28.4206, -81.5790},
	},
	{
		ID: "mk-seven-dwarfs", ParkID: "magic-kingdom", Land: "Fantasyland",
		Name: "Seven Dwarfs Mine Train", Category: CategoryFamily, ThrillLevel: 3,
		HeightMinCM: 97, LightningLane: true, Headliner: true, DurationMin: 8,
		Tags:        []string{"coaster", "family", "outdoor"},
		Coordinates: Coordinates{28.4210, -81.5801},
	},
	{
		ID: "ep-test-track", ParkID: "epcot", Land: "World Discovery",
		Name: "Test Track", Category: CategoryThrill, ThrillLevel: 4,
		HeightMinCM: 102, LightningLane: true, Headliner: true, DurationMin: 12,
		Tags:        []string{"cars", "fast", "outdoor"},
		Coordinates: Coordinates{28.3734, -81.5467},
	},
	{
		ID: "ep-soarin", ParkID: "epcot", Land: "World Nature",
		Name: "Soarin' Around the World", Category: CategoryFamily, ThrillLevel: 2,
		HeightMinCM: 102, LightningLane: true, Headliner: true, DurationMin: 15,
		Tags:        []string{"flight", "indoor", "scenic"},
		Coordinates: Coordinates{28.3729, -81.5524},
	},
	{
		ID: "ep-spaceship-earth", ParkID: "epcot", Land: "World Celebration",
		Name: "Spaceship Earth", Category: CategoryDark, ThrillLevel: 1,
		HeightMinCM: 0, LightningLane: false, Headliner: false, DurationMin: 16,
		Tags:        []string{"dark", "classic", "indoor", "slow"},
		Coordinates: Coordinates{28.3753, -81.5494},
	},
	{
		ID: "hs-tower-of-terror", ParkID: "hollywood-studios", Land: "Sunset Boulevard",
		Name: "The Twilight Zone Tower of Terror", Category: CategoryThrill, ThrillLevel: 5,
		HeightMinCM: 102, LightningLane: true, Headliner: true, DurationMin: 10,
		Tags:        []string{"drop", "dark", "indoor"},
		Coordinates: Coordinates{28.3598, -81.5605},
	},
	{
		ID: "hs-rise-resistance", ParkID: "hollywood-studios", Land: "Galaxy's Edge",
		Name: "Rise of the Resistance", Category: CategoryDark, ThrillLevel: 3,
		HeightMinCM: 102, LightningLane: true, Headliner: true, DurationMin: 20,
		Tags:        []string{"dark", "immersive", "indoor"},
		Coordinates: Coordinates{28.3553, -81.5608},
	},
	{
		ID: "hs-frozen-singalong", ParkID: "hollywood-studios", Land: "Echo Lake",
		Name: "Frozen Sing-Along Celebration", Category: CategoryShow, ThrillLevel: 1,
		HeightMinCM: 0, LightningLane: false, Headliner: false, DurationMin: 30,
		Tags:        []string{"show", "indoor", "toddler"},
		Coordinates: Coordinates{28.3585, -81.5586},
	},
}
