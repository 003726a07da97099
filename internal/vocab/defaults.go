package vocab

// SectionHeaderTerms are the words that open a new resume section.
var SectionHeaderTerms = []string{
	"objective", "summary", "education", "experience", "work experience",
	"skills", "certifications", "projects", "awards", "publications",
	"languages", "interests",
}

// HardSkillTerms are technical competencies.
var HardSkillTerms = []string{
	"python", "java", "excel", "sql", "machine learning", "data analysis",
	"c++", "javascript", "accounting", "budgeting",
}

// SoftSkillTerms are interpersonal competencies.
var SoftSkillTerms = []string{
	"communication", "teamwork", "leadership", "adaptability",
	"problem-solving", "time management", "creativity",
}

// StandardATSHeaders are the headers applicant tracking systems look for.
var StandardATSHeaders = []string{
	"summary", "objective", "education", "experience", "work experience",
	"projects", "skills", "certifications", "languages", "awards", "publications",
}

// SectionHeaders returns the default section header vocabulary.
func SectionHeaders() *List { return NewList(SectionHeaderTerms...) }

// HardSkills returns the default hard skill vocabulary.
func HardSkills() *List { return NewList(HardSkillTerms...) }

// SoftSkills returns the default soft skill vocabulary.
func SoftSkills() *List { return NewList(SoftSkillTerms...) }
