package parser

// Contact field keys. A key is present in ContactInfo only when its pattern
// or the name recognizer matched; there are no null placeholders.
const (
	FieldEmail    = "email"
	FieldPhone    = "phone"
	FieldLinkedIn = "linkedin"
	FieldGitHub   = "github"
	FieldName     = "name"
)

// Section categories recognized by the segmenter
const (
	SectionEducation      = "education"
	SectionExperience     = "experience"
	SectionSkills         = "skills"
	SectionProjects       = "projects"
	SectionCertifications = "certifications"
)

// ContactInfo maps contact field keys to the first matched substring
type ContactInfo map[string]string

// SectionMap maps a section category to the raw multi-line text block that
// followed its header, up to the next recognized header. A category appears
// at most once; a later occurrence of the same header overwrites the earlier
// content at flush time.
type SectionMap map[string]string

// Resume is the aggregate record produced for one document. It is created
// per parse call, serialized, and discarded; nothing is cached or persisted.
type Resume struct {
	ContactInformation ContactInfo `json:"contact_information"`
	Sections           SectionMap  `json:"sections"`
	Skills             []string    `json:"skills"`
}
