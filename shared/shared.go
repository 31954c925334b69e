package shared

import (
	"reflect"
	"strconv"

	"hotelbooking/shared/constant"
	"hotelbooking/shared/dto"
	"hotelbooking/shared/timezone"

	"github.com/rs/zerolog/log"
)

// ConvertStringToBool parses an optional boolean query or form value.
// Empty and unparseable input both mean "not set".
func ConvertStringToBool(value string) *bool {
	if value == constant.Empty {
		return nil
	}

	parsed, err := strconv.ParseBool(value)
	if err != nil {
		log.Warn().Err(err).Str("value", value).Msg("ignoring malformed boolean")

		return nil
	}

	return &parsed
}

// CalculateTotalPage never reports fewer than one page.
func CalculateTotalPage(total, limit int) int {
	if total <= 0 || limit <= 0 {
		return 1
	}

	return (total + limit - 1) / limit
}

// TransformFields builds the SET map of a partial update from the non-zero
// db-tagged fields of data, stamped with the modifying user.
func TransformFields(data any, username string) map[string]any {
	value := reflect.ValueOf(data)
	fields := value.Type()

	updated := make(map[string]any, fields.NumField()+2)

	for i := range fields.NumField() {
		column := fields.Field(i).Tag.Get("db")
		if column == constant.Empty || value.Field(i).IsZero() {
			continue
		}

		updated[column] = value.Field(i).Interface()
	}

	updated[constant.FieldModifiedAt] = timezone.Now()
	updated[constant.FieldModifiedBy] = username

	return updated
}

func FilterByID(id, fieldID, table string) dto.FilterGroup {
	return dto.FilterGroup{
		Filters: []any{
			dto.Filter{
				Field:    fieldID,
				Value:    id,
				Operator: dto.FilterOperatorEq,
				Table:    table,
			},
		},
	}
}
