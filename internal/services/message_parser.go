package services

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/muzaffarov/vacancy-bot/internal/clients/tgpreview"
	"github.com/muzaffarov/vacancy-bot/internal/domain/models"
)

const (
	fallbackTitle   = "Vakansiya"
	unknownCompany  = "Noma'lum"
	defaultLocation = "Tashkent"
	maxTitleLen     = 150
	maxCompanyLen   = 100
	maxDescription  = 500
)

var emojiPattern = regexp.MustCompile(`[#️⃣🔴🔵⚡💼📌🔥✅❗⭕🟢🟡⚪💎🎯🚀📢🔔]`)

var companyPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:компания|company|firma|kompaniya|tashkilot)[:\s]+([^\n]{3,100})`),
	regexp.MustCompile(`(?i)(?:в компании|at company|da)[:\s]+([^\n]{3,100})`),
	regexp.MustCompile(`(?i)(?:фирма|firm)[:\s]+([^\n]{3,100})`),
}

var salaryPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(\d+)\s*[-–—]\s*(\d+)\s*(?:млн|mln|million|миллион)?`),
	regexp.MustCompile(`(?i)(?:от|dan|from)\s+(\d+)`),
	regexp.MustCompile(`(?i)(?:до|gacha|to)\s+(\d+)`),
	regexp.MustCompile(`(?i)(?:зп|maosh|salary)[:\s]+(\d+)`),
	regexp.MustCompile(`(?i)(\d+)\s*(?:млн|mln)`),
	regexp.MustCompile(`(?i)(?:зарплата|oylik)[:\s]+(\d+)`),
}

// ordered so the first hit wins regardless of map iteration order
var locationKeywords = []struct {
	keyword string
	city    string
}{
	{"ташкент", "Tashkent"}, {"tashkent", "Tashkent"}, {"toshkent", "Tashkent"},
	{"самарканд", "Samarkand"}, {"samarkand", "Samarkand"}, {"samarqand", "Samarkand"},
	{"бухара", "Bukhara"}, {"bukhara", "Bukhara"}, {"buxoro", "Bukhara"},
	{"андижан", "Andijan"}, {"andijan", "Andijan"}, {"andijon", "Andijan"},
	{"фергана", "Fergana"}, {"fergana", "Fergana"}, {"farg'ona", "Fergana"},
	{"наманган", "Namangan"}, {"namangan", "Namangan"},
}

var experienceKeywords = []struct {
	level    models.Experience
	keywords []string
}{
	{models.NoExperience, []string{"junior", "джуниор", "без опыта", "tajribasiz", "no experience", "стажер", "stajer"}},
	{models.Between1and3, []string{"middle", "мидл", "1-3", "2-3 года", "1-2 yil"}},
	{models.Between3and6, []string{"3-6", "3-5 лет", "4-6 yil"}},
	{models.MoreThan6, []string{"senior", "сеньор", "lead", "тимлид", "6+", "более 6"}},
}

// VacancyFromMessage turns a raw channel post into a normalized vacancy.
// The extraction is best effort: any field that can't be recognized falls
// back to a default rather than failing the whole message.
func VacancyFromMessage(message tgpreview.Message) models.Vacancy {

	text := message.Text
	salaryMin, salaryMax := extractSalary(text)

	return models.Vacancy{
		ExternalID:  fmt.Sprintf("tg_%s_%d", message.Channel, message.ID),
		Title:       extractTitle(text),
		Company:     extractCompany(text),
		Location:    extractLocation(text),
		SalaryMin:   salaryMin,
		SalaryMax:   salaryMax,
		Experience:  extractExperience(text),
		Description: truncateRunes(text, maxDescription),
		Url:         fmt.Sprintf("https://t.me/%s/%d", message.Channel, message.ID),
		Source:      models.SourceTelegram,
		PublishedAt: message.Date.UTC(),
	}
}

func extractTitle(text string) string {

	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return fallbackTitle
	}

	title := stripEmoji(lines[0])
	if len([]rune(title)) < 15 && len(lines) > 1 {
		title = strings.TrimSpace(title + " " + stripEmoji(lines[1]))
	}
	title = truncateRunes(title, maxTitleLen)

	if len([]rune(title)) < 5 {
		return fallbackTitle
	}
	return title
}

func extractCompany(text string) string {
	for _, pattern := range companyPatterns {
		match := pattern.FindStringSubmatch(text)
		if match == nil {
			continue
		}
		company := stripEmoji(strings.TrimSpace(match[1]))
		if company != "" {
			return truncateRunes(company, maxCompanyLen)
		}
	}
	return unknownCompany
}

// extractSalary reads figures from the first matching pattern. Small numbers
// are taken as millions of UZS, the common shorthand in channel posts.
func extractSalary(text string) (*int, *int) {
	for _, pattern := range salaryPatterns {
		match := pattern.FindStringSubmatch(text)
		if match == nil {
			continue
		}

		var nums []int
		for _, group := range match[1:] {
			if group == "" {
				continue
			}
			var n int
			if _, err := fmt.Sscanf(group, "%d", &n); err == nil {
				nums = append(nums, n)
			}
		}

		switch {
		case len(nums) >= 2:
			return scaleSalary(nums[0]), scaleSalary(nums[1])
		case len(nums) == 1:
			return scaleSalary(nums[0]), nil
		}
	}
	return nil, nil
}

func scaleSalary(n int) *int {
	if n < 100 {
		n *= 1000000
	}
	return &n
}

func extractLocation(text string) string {
	lowered := strings.ToLower(text)
	for _, entry := range locationKeywords {
		if strings.Contains(lowered, entry.keyword) {
			return entry.city
		}
	}
	return defaultLocation
}

func extractExperience(text string) models.Experience {
	lowered := strings.ToLower(text)
	for _, entry := range experienceKeywords {
		for _, keyword := range entry.keywords {
			if strings.Contains(lowered, keyword) {
				return entry.level
			}
		}
	}
	return models.AnyExperience
}

func stripEmoji(s string) string {
	return strings.TrimSpace(emojiPattern.ReplaceAllString(s, ""))
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
