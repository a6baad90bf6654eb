package models

import "time"

// EventCategory represents the category of a convention event
type EventCategory string

const (
	CategoryFestival  EventCategory = "festival"
	CategoryCosplay   EventCategory = "cosplay"
	CategoryConcert   EventCategory = "concert"
	CategoryWorkshop  EventCategory = "workshop"
	CategoryScreening EventCategory = "screening"
)

// EventStatus represents the lifecycle status of an event
type EventStatus string

const (
	EventUpcoming  EventStatus = "upcoming"
	EventOngoing   EventStatus = "ongoing"
	EventCompleted EventStatus = "completed"
	EventCancelled EventStatus = "cancelled"
)

// EventSummary is the catalog list record returned by the backend
type EventSummary struct {
	ID                string        `json:"id"`
	Title             string        `json:"title"`
	Category          EventCategory `json:"category"`
	Status            EventStatus   `json:"status"`
	StartDate         time.Time     `json:"start_date"`
	EndDate           time.Time     `json:"end_date"`
	Venue             string        `json:"venue"`
	Location          string        `json:"location"`
	Price             int           `json:"price"`
	CurrentPrice      int           `json:"current_price"`
	IsEarlyBirdActive bool          `json:"is_early_bird_active"`
	FeaturedImage     string        `json:"featured_image"`
	IsFeatured        bool          `json:"is_featured"`
	Slug              string        `json:"slug"`
}

// Event is the full detail record for a single event
type Event struct {
	ID                string        `json:"id"`
	Title             string        `json:"title"`
	Description       string        `json:"description"`
	Category          EventCategory `json:"category"`
	Status            EventStatus   `json:"status"`
	StartDate         time.Time     `json:"start_date"`
	EndDate           time.Time     `json:"end_date"`
	Venue             string        `json:"venue"`
	Location          string        `json:"location"`
	Capacity          int           `json:"capacity"`
	Price             int           `json:"price"`
	CurrentPrice      int           `json:"current_price"`
	IsEarlyBirdActive bool          `json:"is_early_bird_active"`
	FeaturedImage     string        `json:"featured_image"`
	BannerImage       string        `json:"banner_image"`
	Slug              string        `json:"slug"`
	Tags              []string      `json:"tags"`
	Requirements      string        `json:"requirements"`
	AgeRestriction    string        `json:"age_restriction"`
	CreatedAt         time.Time     `json:"created_at"`
	AverageRating     float64       `json:"average_rating"`
	Reviews           []EventReview `json:"reviews"`

	// Category-specific detail blocks; at most one is non-nil,
	// matching the event's category.
	CosplayCompetition *CosplayCompetition `json:"cosplay_competition,omitempty"`
	AnisongConcert     *AnisongConcert     `json:"anisong_concert,omitempty"`
}

// EventDetails is a category-specific detail block
type EventDetails interface {
	DetailCategory() EventCategory
}

// CosplayCompetition holds competition details for cosplay events
type CosplayCompetition struct {
	Theme                string    `json:"theme"`
	PrizePool            int       `json:"prize_pool"`
	FirstPrize           int       `json:"first_prize"`
	SecondPrize          int       `json:"second_prize"`
	ThirdPrize           int       `json:"third_prize"`
	RegistrationDeadline time.Time `json:"registration_deadline"`
	MaxParticipants      int       `json:"max_participants"`
	Rules                string    `json:"rules"`
}

// DetailCategory returns the event category this block belongs to
func (c *CosplayCompetition) DetailCategory() EventCategory { return CategoryCosplay }

// AnisongConcert holds concert details for anisong concert events
type AnisongConcert struct {
	ArtistName           string   `json:"artist_name"`
	ArtistBio            string   `json:"artist_bio"`
	Setlist              []string `json:"setlist"`
	DurationMinutes      int      `json:"duration_minutes"`
	MeetAndGreet         bool     `json:"meet_and_greet"`
	MerchandiseAvailable bool     `json:"merchandise_available"`
	LiveStreaming        bool     `json:"live_streaming"`
}

// DetailCategory returns the event category this block belongs to
func (a *AnisongConcert) DetailCategory() EventCategory { return CategoryConcert }

// EventReview is a user review attached to an event detail record
type EventReview struct {
	ID        string    `json:"id"`
	UserName  string    `json:"user_name"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

// Details returns the detail block matching the event's category, or
// nil when the event carries none. A block whose category does not
// match the event's own category is ignored.
func (e *Event) Details() EventDetails {
	switch e.Category {
	case CategoryCosplay:
		if e.CosplayCompetition != nil {
			return e.CosplayCompetition
		}
	case CategoryConcert:
		if e.AnisongConcert != nil {
			return e.AnisongConcert
		}
	}
	return nil
}

// Summary reduces a detail record to its catalog list form
func (e *Event) Summary() EventSummary {
	return EventSummary{
		ID:                e.ID,
		Title:             e.Title,
		Category:          e.Category,
		Status:            e.Status,
		StartDate:         e.StartDate,
		EndDate:           e.EndDate,
		Venue:             e.Venue,
		Location:          e.Location,
		Price:             e.Price,
		CurrentPrice:      e.CurrentPrice,
		IsEarlyBirdActive: e.IsEarlyBirdActive,
		FeaturedImage:     e.FeaturedImage,
		Slug:              e.Slug,
	}
}

// CategoryColor returns the badge color class for an event category.
// Unknown categories get a neutral color.
func CategoryColor(category EventCategory) string {
	colors := map[EventCategory]string{
		CategoryFestival:  "bg-blue-500",
		CategoryCosplay:   "bg-purple-500",
		CategoryConcert:   "bg-pink-500",
		CategoryWorkshop:  "bg-green-500",
		CategoryScreening: "bg-orange-500",
	}
	if c, ok := colors[category]; ok {
		return c
	}
	return "bg-gray-500"
}
