package resume

// skillVocabulary is matched case-insensitively against resume text. Terms
// are lowercase; within a category earlier terms are reported first.
var skillVocabulary = map[SkillCategory][]string{
	CategoryTechnical: {
		"javascript", "typescript", "python", "java", "golang", "c++", "c#", "ruby", "php", "kotlin", "swift",
		"react", "angular", "vue", "node.js", "express", "django", "flask", "spring boot",
		"html", "css", "sql", "mysql", "postgresql", "mongodb", "redis",
		"aws", "azure", "gcp", "docker", "kubernetes", "git", "linux", "rest api", "graphql",
		"machine learning", "deep learning", "data analysis", "tensorflow", "pandas", "power bi", "tableau",
	},
	CategoryBusiness: {
		"sales", "marketing", "digital marketing", "business development", "market research",
		"financial analysis", "accounting", "budgeting", "crm", "salesforce", "excel", "strategy",
		"product management", "project management", "stakeholder management", "negotiation",
	},
	CategoryOperational: {
		"operations", "logistics", "supply chain", "inventory management", "procurement", "warehouse",
		"quality control", "six sigma", "lean", "scheduling", "vendor management", "transportation", "sap",
	},
	CategorySoft: {
		"communication", "leadership", "teamwork", "problem solving", "critical thinking",
		"time management", "adaptability", "creativity", "collaboration", "public speaking", "mentoring",
	},
	CategoryLanguage: {
		"english", "hindi", "spanish", "french", "german", "mandarin", "japanese", "arabic", "tamil", "telugu",
	},
}

// canonicalSkillNames restores proper-noun casing for known terms. Terms not
// listed are title-cased.
var canonicalSkillNames = map[string]string{
	"javascript":       "JavaScript",
	"typescript":       "TypeScript",
	"golang":           "Go",
	"c++":              "C++",
	"c#":               "C#",
	"php":              "PHP",
	"node.js":          "Node.js",
	"spring boot":      "Spring Boot",
	"html":             "HTML",
	"css":              "CSS",
	"sql":              "SQL",
	"mysql":            "MySQL",
	"postgresql":       "PostgreSQL",
	"mongodb":          "MongoDB",
	"aws":              "AWS",
	"gcp":              "GCP",
	"git":              "Git",
	"rest api":         "REST API",
	"graphql":          "GraphQL",
	"tensorflow":       "TensorFlow",
	"power bi":         "Power BI",
	"crm":              "CRM",
	"salesforce":       "Salesforce",
	"excel":            "Microsoft Excel",
	"sap":              "SAP",
	"six sigma":        "Six Sigma",
	"vue":              "Vue.js",
	"machine learning": "Machine Learning",
}

// Level cues are checked in precedence order: expert, advanced, beginner.
var levelCues = []struct {
	level SkillLevel
	words []string
}{
	{level: LevelExpert, words: []string{"expert", "advanced", "senior", "lead"}},
	{level: LevelAdvanced, words: []string{"experienced", "proficient"}},
	{level: LevelBeginner, words: []string{"basic", "beginner", "learning"}},
}

// levelWindow is the number of characters inspected on each side of a match.
const levelWindow = 50
