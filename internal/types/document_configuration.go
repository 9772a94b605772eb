package types

import (
	"time"

	"github.com/google/uuid"
)

// DocumentConfigurationOptions are the export toggles of a configuration
type DocumentConfigurationOptions struct {
	ShowCoverSheet          bool `json:"show_cover_sheet"`
	ShowRequiredExperience  bool `json:"show_required_experience"`
	IncludePriceCalculation bool `json:"include_price_calculation"`
}

// DocumentConfiguration is a named, reusable export request over one offer and a subset of its
// snapshots. It only references IDs and owns nothing.
type DocumentConfiguration struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	DocumentConfigurationOptions

	OfferID                  uuid.UUID   `json:"offer_id"`
	ShownEmployeePropertyIDs []uuid.UUID `json:"shown_employee_property_ids"`
}

// NewDocumentConfiguration creates a configuration over offer and registers it on the offer.
// Only field presence is checked; references are re-checked at generation time.
func NewDocumentConfiguration(title string, offer *Offer, shownEmployeeIDs []uuid.UUID, opts DocumentConfigurationOptions) (*DocumentConfiguration, error) {
	if title == "" {
		return nil, &ValidationError{Field: "title", Message: "document configuration title is required"}
	}
	if offer == nil {
		return nil, &ValidationError{Field: "offer", Message: "document configuration requires an offer"}
	}

	cfg := &DocumentConfiguration{
		ID:                           uuid.New(),
		Title:                        title,
		CreatedAt:                    time.Now().UTC().Truncate(time.Microsecond),
		DocumentConfigurationOptions: opts,
		OfferID:                      offer.ID,
		ShownEmployeePropertyIDs:     append([]uuid.UUID(nil), shownEmployeeIDs...),
	}
	offer.RegisterDocumentConfiguration(cfg.ID)
	return cfg, nil
}

// CheckReferences verifies the configuration against the current state of its offer
func (c *DocumentConfiguration) CheckReferences(offer *Offer) error {
	current := IDSet(offer.ShownEmployeeIDs())
	var missing []uuid.UUID
	for _, id := range c.ShownEmployeePropertyIDs {
		if _, ok := current[id]; !ok {
			missing = append(missing, id)
		}
	}
	if offer.ID != c.OfferID || len(missing) > 0 {
		return &StaleReferenceError{ConfigurationID: c.ID, OfferID: offer.ID, Missing: missing}
	}
	return nil
}

// Equal compares all scalar fields and the snapshot IDs as sets
func (c *DocumentConfiguration) Equal(other *DocumentConfiguration) bool {
	if c == nil || other == nil {
		return c == other
	}
	return c.ID == other.ID &&
		c.Title == other.Title &&
		c.CreatedAt.Equal(other.CreatedAt) &&
		c.DocumentConfigurationOptions == other.DocumentConfigurationOptions &&
		c.OfferID == other.OfferID &&
		SameIDs(c.ShownEmployeePropertyIDs, other.ShownEmployeePropertyIDs)
}
