package booking

import (
	"encoding/json"
	"strconv"
	"strings"

	"cleanhaven/models"
)

// The payment gateway serializes attached booking data in one of several
// shapes depending on how the charge was initialized: a nested blob under
// a conventional key (sometimes double-encoded as a JSON string), the
// metadata object itself carrying the fields directly, or a
// "custom fields" array of {variable_name, value} pairs. Each shape gets
// its own extractor; the reconciler runs them in order and takes the
// first that yields any usable data.
type metadataExtractor struct {
	name    string
	extract func(meta map[string]interface{}) models.DraftPatch
}

var metadataExtractors = []metadataExtractor{
	{name: "nested-booking-data", extract: extractNestedBookingData},
	{name: "flat-fields", extract: extractFlatFields},
	{name: "custom-fields", extract: extractCustomFields},
}

// ExtractBookingFields decodes raw gateway metadata and returns the first
// non-empty patch any extractor produces. ok is false when no shape
// yielded usable data.
func ExtractBookingFields(raw json.RawMessage) (models.DraftPatch, bool) {
	meta := decodeMetadata(raw)
	if meta == nil {
		return models.DraftPatch{}, false
	}
	for _, ex := range metadataExtractors {
		patch := ex.extract(meta)
		if !patch.IsEmpty() {
			return patch, true
		}
	}
	return models.DraftPatch{}, false
}

// decodeMetadata tolerates both a JSON object and a JSON-encoded string
// containing an object (the gateway double-encodes for some channels).
func decodeMetadata(raw json.RawMessage) map[string]interface{} {
	if len(raw) == 0 {
		return nil
	}
	var meta map[string]interface{}
	if err := json.Unmarshal(raw, &meta); err == nil {
		return meta
	}
	var encoded string
	if err := json.Unmarshal(raw, &encoded); err == nil {
		if err := json.Unmarshal([]byte(encoded), &meta); err == nil {
			return meta
		}
	}
	return nil
}

// extractNestedBookingData reads the conventional "booking_data" key,
// which may hold either an object or a JSON string.
func extractNestedBookingData(meta map[string]interface{}) models.DraftPatch {
	nested, ok := meta["booking_data"]
	if !ok {
		return models.DraftPatch{}
	}
	switch v := nested.(type) {
	case map[string]interface{}:
		return patchFromMap(v)
	case string:
		var m map[string]interface{}
		if err := json.Unmarshal([]byte(v), &m); err == nil {
			return patchFromMap(m)
		}
	}
	return models.DraftPatch{}
}

// extractFlatFields treats the metadata object itself as the field map.
func extractFlatFields(meta map[string]interface{}) models.DraftPatch {
	return patchFromMap(meta)
}

// extractCustomFields reads the gateway's custom-fields array format:
// [{"variable_name": "suburb", "value": "Gardens"}, ...].
func extractCustomFields(meta map[string]interface{}) models.DraftPatch {
	fields, ok := meta["custom_fields"].([]interface{})
	if !ok {
		return models.DraftPatch{}
	}
	flat := make(map[string]interface{}, len(fields))
	for _, f := range fields {
		entry, ok := f.(map[string]interface{})
		if !ok {
			continue
		}
		name, _ := entry["variable_name"].(string)
		if name == "" {
			continue
		}
		flat[name] = entry["value"]
	}
	return patchFromMap(flat)
}

// patchFromMap maps loosely-named keys onto draft fields, trimming
// strings and coercing numbers. Keys it does not recognize are ignored.
func patchFromMap(m map[string]interface{}) models.DraftPatch {
	var p models.DraftPatch
	p.ServiceType = strField(m, "serviceType", "service_type", "service")
	p.Frequency = strField(m, "frequency", "service_frequency")
	p.Bedrooms = intField(m, "bedrooms", "bedroom_count")
	p.Bathrooms = intField(m, "bathrooms", "bathroom_count")
	p.OfficeSize = strField(m, "officeSize", "office_size")
	p.Extras = sliceField(m, "extras", "add_ons")
	p.ScheduledDate = strField(m, "scheduledDate", "scheduled_date", "booking_date")
	p.ScheduledTime = strField(m, "scheduledTime", "scheduled_time", "booking_time")
	p.Street = strField(m, "street", "street_address", "address")
	p.Unit = strField(m, "unit", "unit_number")
	p.Suburb = strField(m, "suburb")
	p.City = strField(m, "city")
	p.CleanerPreference = strField(m, "cleanerPreference", "cleaner_preference", "cleaner")
	p.SpecialInstructions = strField(m, "specialInstructions", "special_instructions", "notes")
	p.DiscountCode = strField(m, "discountCode", "discount_code")
	p.FirstName = strField(m, "firstName", "first_name")
	p.LastName = strField(m, "lastName", "last_name")
	p.Email = strField(m, "email", "customer_email")
	p.Phone = strField(m, "phone", "phone_number", "customer_phone")
	return p
}

// strField returns the first non-empty trimmed string among the keys.
func strField(m map[string]interface{}, keys ...string) *string {
	for _, k := range keys {
		v, ok := m[k]
		if !ok {
			continue
		}
		s, ok := v.(string)
		if !ok {
			continue
		}
		s = strings.TrimSpace(s)
		if s != "" {
			return &s
		}
	}
	return nil
}

// intField accepts JSON numbers and numeric strings.
func intField(m map[string]interface{}, keys ...string) *int {
	for _, k := range keys {
		v, ok := m[k]
		if !ok {
			continue
		}
		switch n := v.(type) {
		case float64:
			i := int(n)
			return &i
		case string:
			if i, err := strconv.Atoi(strings.TrimSpace(n)); err == nil {
				return &i
			}
		}
	}
	return nil
}

// sliceField accepts an array of strings or a comma-separated string.
func sliceField(m map[string]interface{}, keys ...string) *[]string {
	for _, k := range keys {
		v, ok := m[k]
		if !ok {
			continue
		}
		switch val := v.(type) {
		case []interface{}:
			out := make([]string, 0, len(val))
			for _, item := range val {
				if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
					out = append(out, strings.TrimSpace(s))
				}
			}
			if len(out) > 0 {
				return &out
			}
		case string:
			parts := strings.Split(val, ",")
			out := make([]string, 0, len(parts))
			for _, part := range parts {
				if p := strings.TrimSpace(part); p != "" {
					out = append(out, p)
				}
			}
			if len(out) > 0 {
				return &out
			}
		}
	}
	return nil
}

// FillMissing copies patch values into fields the base draft has no value
// for. Local data always wins: a non-empty base field is never replaced,
// and numeric fields are only filled while still at their wizard defaults.
func FillMissing(base models.BookingDraft, patch models.DraftPatch) models.BookingDraft {
	fillStr := func(dst *string, src *string) {
		if *dst == "" && src != nil {
			*dst = *src
		}
	}
	fillStr(&base.ServiceType, patch.ServiceType)
	fillStr(&base.Frequency, patch.Frequency)
	if base.Bedrooms == 0 && patch.Bedrooms != nil {
		base.Bedrooms = *patch.Bedrooms
	}
	if base.Bathrooms <= 1 && patch.Bathrooms != nil && *patch.Bathrooms > 1 {
		base.Bathrooms = *patch.Bathrooms
	}
	fillStr(&base.OfficeSize, patch.OfficeSize)
	if len(base.Extras) == 0 && patch.Extras != nil {
		base.Extras = append([]string{}, (*patch.Extras)...)
	}
	fillStr(&base.ScheduledDate, patch.ScheduledDate)
	fillStr(&base.ScheduledTime, patch.ScheduledTime)
	fillStr(&base.Street, patch.Street)
	fillStr(&base.Unit, patch.Unit)
	fillStr(&base.Suburb, patch.Suburb)
	fillStr(&base.City, patch.City)
	if (base.CleanerPreference == "" || base.CleanerPreference == models.CleanerNoPreference) && patch.CleanerPreference != nil {
		base.CleanerPreference = *patch.CleanerPreference
	}
	fillStr(&base.SpecialInstructions, patch.SpecialInstructions)
	fillStr(&base.DiscountCode, patch.DiscountCode)
	fillStr(&base.FirstName, patch.FirstName)
	fillStr(&base.LastName, patch.LastName)
	fillStr(&base.Email, patch.Email)
	fillStr(&base.Phone, patch.Phone)
	return base
}
