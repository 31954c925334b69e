package dto

import (
	"time"

	"hotelbooking/shared/constant"
	"hotelbooking/shared/model"
	"hotelbooking/shared/timezone"
)

// Metadata is the audit block embedded in resource responses. Times are
// rendered in the application time zone.
type Metadata struct {
	CreatedAt  string `json:"created_at"`
	ModifiedAt string `json:"modified_at"`
	CreatedBy  string `json:"created_by,omitempty"`
	ModifiedBy string `json:"modified_by,omitempty"`
}

func (m *Metadata) FromModel(source model.Metadata) {
	*m = Metadata{
		CreatedAt:  formatAuditTime(source.CreatedAt),
		ModifiedAt: formatAuditTime(source.ModifiedAt),
		CreatedBy:  source.CreatedBy,
		ModifiedBy: source.ModifiedBy,
	}
}

func formatAuditTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}

	return timezone.Format(t, constant.DateFormat)
}
