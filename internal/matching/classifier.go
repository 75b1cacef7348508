package matching

import "strings"

// Classifier decides whether a raw channel message is a job posting. Both
// word lists are injected data, so new trigger or spam markers need no code
// change.
type Classifier struct {
	triggers   []string
	exclusions []string
	minLength  int
}

func NewClassifier(triggers, exclusions []string) *Classifier {
	if triggers == nil {
		triggers = DefaultTriggerWords()
	}
	if exclusions == nil {
		exclusions = DefaultExclusionWords()
	}
	return &Classifier{triggers: triggers, exclusions: exclusions, minLength: 20}
}

// IsVacancy reports whether text looks like a job posting: exclusion markers
// reject immediately, two trigger hits accept, a single hit is enough only
// because the minimum-length gate already passed.
func (c *Classifier) IsVacancy(text string) bool {
	if len(text) < c.minLength {
		return false
	}

	lowered := strings.ToLower(text)

	for _, exclusion := range c.exclusions {
		if strings.Contains(lowered, exclusion) {
			return false
		}
	}

	hits := 0
	for _, trigger := range c.triggers {
		if strings.Contains(lowered, trigger) {
			hits++
			if hits >= 2 {
				return true
			}
		}
	}
	return hits >= 1
}

func DefaultTriggerWords() []string {
	return []string{
		// uzbek
		"vakansiya", "ish", "ishga", "kerak", "qidiriladi", "talab",
		"xodim", "hodim", "ishchi", "mutaxassis", "bo'sh", "o'rni",
		"maosh", "oylik", "ish haqi", "kompaniya", "firma", "tashkilot",

		// english
		"vacancy", "job", "hiring", "required", "needed", "wanted", "position",
		"developer", "engineer", "designer", "manager", "specialist", "assistant",
		"junior", "middle", "senior", "lead", "fullstack", "frontend", "backend",

		// russian
		"вакансия", "работа", "требуется", "ищем", "нужен", "нужна", "сотрудник",
		"специалист", "менеджер", "разработчик", "дизайнер", "компания", "зарплата",

		// technologies
		"python", "javascript", "java", "php", "react", "vue", "angular",
		"django", "flask", "nodejs", "laravel", "wordpress", "android", "ios",
		"flutter", "swift", "kotlin", "html", "css", "sql", "postgresql", "mongodb",
	}
}

func DefaultExclusionWords() []string {
	return []string{
		"купить", "продать", "продаю", "куплю", "sotish", "sotaman",
		"reklama", "advertisement", "акция", "скидка", "chegirma",
	}
}
