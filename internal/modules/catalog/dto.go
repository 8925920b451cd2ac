package catalog

type RoomFilter struct {
	Search        string `form:"q"`
	Category      string `form:"categoria"`
	IncludeBooked bool   `form:"include_booked"`
}

type DishFilter struct {
	Category      string `form:"categoria"`
	OnlyAvailable bool   `form:"available"`
}
