package model

// HouseRules carries per-listing stay rules. The aggregator schema has no
// pets/smoking flags, so those are always false for aggregator-sourced data.
type HouseRules struct {
	CheckIn        string `json:"checkIn,omitempty"`
	CheckOut       string `json:"checkOut,omitempty"`
	PetsAllowed    bool   `json:"petsAllowed"`
	SmokingAllowed bool   `json:"smokingAllowed"`
}

// Amenity is one listing amenity resolved to a display label. Icon keeps the
// raw amenity id so the UI can pick an icon for it.
type Amenity struct {
	Icon  string `json:"icon,omitempty"`
	Label string `json:"label"`
}

// Listing is the canonical property record all raw aggregator listings are
// normalized into, and the shape stored in the `properties` collection.
type Listing struct {
	ID                 string     `json:"id"`
	Name               string     `json:"name"`
	Summary            string     `json:"summary,omitempty"`
	Description        string     `json:"description,omitempty"`
	Category           string     `json:"category"`
	Channel            string     `json:"channel"`
	Guests             int        `json:"guests"`
	Bedrooms           int        `json:"bedrooms"`
	Bathrooms          int        `json:"bathrooms"`
	Address            string     `json:"address,omitempty"`
	City               string     `json:"city,omitempty"`
	Country            string     `json:"country,omitempty"`
	Lat                *float64   `json:"lat,omitempty"`
	Lng                *float64   `json:"lng,omitempty"`
	Price              *float64   `json:"price,omitempty"`
	Rating             *float64   `json:"rating,omitempty"`
	Amenities          []Amenity  `json:"amenities"`
	Gallery            []string   `json:"gallery"`
	HouseRules         HouseRules `json:"houseRules"`
	CancellationPolicy string     `json:"cancellationPolicy,omitempty"`
	IsActive           bool       `json:"isActive"`
	CreatedAt          string     `json:"createdAt,omitempty"`
}

// Review is the canonical guest review. ApprovalKey is the deterministic
// identity used to persist public/private decisions across aggregator
// re-fetches; IsPublic is only meaningful after the approval overlay ran.
type Review struct {
	ID          string `json:"id"`
	ApprovalKey string `json:"approvalKey"`
	ListingID   string `json:"listingId,omitempty"`
	Property    string `json:"property"`
	Guest       string `json:"guest"`
	Rating      int    `json:"rating"`
	Date        string `json:"date"`
	Comment     string `json:"comment"`
	IsPublic    bool   `json:"isPublic"`
	Category    string `json:"category"`
	Channel     string `json:"channel"`
}

// ApprovalUpdate is one public/private decision keyed by approval key.
type ApprovalUpdate struct {
	Key      string `json:"approvalKey" validate:"required"`
	IsPublic bool   `json:"isPublic"`
}

// SyncRunStats counts what a snapshot run touched.
type SyncRunStats struct {
	Listings int `json:"listings"`
	Reviews  int `json:"reviews"`
	Failed   int `json:"failed"`
}

// SyncRun tracks the lifecycle of an aggregator snapshot into the local store.
type SyncRun struct {
	RunID      string       `json:"runId"`
	Status     string       `json:"status"`
	Stats      SyncRunStats `json:"stats"`
	StartedAt  string       `json:"startedAt"`
	FinishedAt string       `json:"finishedAt,omitempty"`
	Error      string       `json:"error,omitempty"`
}
