package validation

import "strings"

type Violations map[string]string

func (v Violations) Empty() bool { return len(v) == 0 }

// Basic validators
func Required(field, value string, v Violations) {
	if strings.TrimSpace(value) == "" {
		v[field] = "required"
	}
}

func PositiveFloat(field string, val float64, v Violations) {
	if val <= 0 {
		v[field] = "must_be_positive"
	}
}

func ISODate(field, value string, v Violations) {
	if value == "" {
		return
	}
	if len(value) != 10 || value[4] != '-' || value[7] != '-' {
		v[field] = "must_be_yyyy_mm_dd"
		return
	}
	for i, r := range value {
		if i == 4 || i == 7 {
			continue
		}
		if r < '0' || r > '9' {
			v[field] = "must_be_yyyy_mm_dd"
			return
		}
	}
}
