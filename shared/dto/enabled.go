package dto

// SetEnabledRequest toggles the soft-delete flag of a catalog entry.
type SetEnabledRequest struct {
	Enabled *bool `db:"enabled" json:"enabled" validate:"required"`
}
