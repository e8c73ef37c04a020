package refcodes

// Service provides read-only lookup over the reference codes.
type Service struct {
	codes   []Code
	byField map[string]map[string]Code
}

// NewService creates a Service from a slice of codes. Later duplicates of a
// field/code pair shadow earlier ones.
func NewService(codes []Code) *Service {
	byField := make(map[string]map[string]Code)
	for _, c := range codes {
		m, ok := byField[c.Field]
		if !ok {
			m = make(map[string]Code)
			byField[c.Field] = m
		}
		m[c.Code] = c
	}
	return &Service{codes: codes, byField: byField}
}

// All returns all codes in file order.
func (s *Service) All() []Code {
	return s.codes
}

// Len returns the number of codes.
func (s *Service) Len() int {
	return len(s.codes)
}

// Decode returns the description for a field's code, or the code itself
// when it is unknown or has no description.
func (s *Service) Decode(field, code string) string {
	if c, ok := s.byField[field][code]; ok && c.Description != "" {
		return c.Description
	}
	return code
}

// Codes returns the codes defined for field, in file order.
func (s *Service) Codes(field string) []Code {
	var result []Code
	for _, c := range s.codes {
		if c.Field == field {
			result = append(result, c)
		}
	}
	return result
}
