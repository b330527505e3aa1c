package enums

import "fmt"

// Section is the top-level storefront page a session is looking at.
type Section string

const (
	SectionHome     Section = "home"
	SectionProducts Section = "products"
	SectionBlog     Section = "blog"
	SectionContact  Section = "contact"
)

var validSections = []Section{
	SectionHome,
	SectionProducts,
	SectionBlog,
	SectionContact,
}

// String implements fmt.Stringer.
func (s Section) String() string {
	return string(s)
}

// IsValid reports whether the value is a known Section.
func (s Section) IsValid() bool {
	for _, candidate := range validSections {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseSection converts raw input into a Section.
func ParseSection(value string) (Section, error) {
	for _, candidate := range validSections {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid section %q", value)
}
