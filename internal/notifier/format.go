package notifier

import (
	"fmt"
	"strings"
	"time"

	"github.com/muzaffarov/vacancy-bot/internal/domain/models"
)

var experienceLabels = map[models.Experience]string{
	models.NoExperience:  "🟢 Tajribasiz",
	models.Between1and3:  "🟡 1-3 yil",
	models.Between3and6:  "🟠 3-6 yil",
	models.MoreThan6:     "🔴 6+ yil",
	models.AnyExperience: "⚪️ Ko'rsatilmagan",
}

// FormatVacancy renders one vacancy as an HTML telegram message.
func FormatVacancy(vacancy models.Vacancy, score int) string {

	var b strings.Builder

	fmt.Fprintf(&b, "🔹 <b>%s</b>\n\n", vacancy.Title)
	fmt.Fprintf(&b, "🏢 <b>Kompaniya:</b> %s\n", vacancy.Company)
	fmt.Fprintf(&b, "💰 <b>Maosh:</b> %s\n", formatSalary(vacancy.SalaryMin, vacancy.SalaryMax))
	fmt.Fprintf(&b, "📍 <b>Joylashuv:</b> %s\n", vacancy.Location)
	fmt.Fprintf(&b, "👔 <b>Tajriba:</b> %s\n", experienceLabel(vacancy.Experience))
	fmt.Fprintf(&b, "🕐 <b>E'lon qilingan:</b> %s\n", timeAgo(vacancy.PublishedAt, time.Now()))

	emoji, label := sourceLabel(vacancy)
	fmt.Fprintf(&b, "%s <b>Manba:</b> %s\n", emoji, label)

	if score > 0 {
		fmt.Fprintf(&b, "🎯 <b>Moslik:</b> %d%%\n", score)
	}

	description := vacancy.Description
	if len([]rune(description)) > 300 {
		description = string([]rune(description)[:300]) + "..."
	}
	fmt.Fprintf(&b, "\n📝 <b>Tavsif:</b>\n%s\n", description)

	fmt.Fprintf(&b, "\n🔗 <a href=\"%s\">Batafsil ma'lumot</a>", vacancy.Url)

	return b.String()
}

func formatSalary(min, max *int) string {
	switch {
	case min != nil && max != nil:
		return fmt.Sprintf("%s - %s so'm", groupDigits(*min), groupDigits(*max))
	case min != nil:
		return fmt.Sprintf("dan %s so'm", groupDigits(*min))
	case max != nil:
		return fmt.Sprintf("gacha %s so'm", groupDigits(*max))
	default:
		return "Ko'rsatilmagan"
	}
}

func experienceLabel(experience models.Experience) string {
	if label, ok := experienceLabels[experience]; ok {
		return label
	}
	return experienceLabels[models.AnyExperience]
}

func timeAgo(publishedAt, now time.Time) string {
	if publishedAt.IsZero() {
		return "Noma'lum"
	}

	diff := now.Sub(publishedAt)
	switch {
	case diff >= 24*time.Hour:
		return fmt.Sprintf("%d kun oldin", int(diff.Hours())/24)
	case diff >= time.Hour:
		return fmt.Sprintf("%d soat oldin", int(diff.Hours()))
	case diff >= time.Minute:
		return fmt.Sprintf("%d daqiqa oldin", int(diff.Minutes()))
	default:
		return "Hozirgina"
	}
}

func sourceLabel(vacancy models.Vacancy) (emoji, label string) {
	switch vacancy.Source {
	case models.SourceTelegram:
		// external id format: tg_<channel>_<message id>
		parts := strings.Split(vacancy.ExternalID, "_")
		if len(parts) >= 3 {
			return "📱", "Telegram: " + strings.Join(parts[1:len(parts)-1], "_")
		}
		return "📱", "TELEGRAM"
	case models.SourceHH:
		return "🌐", "HH.UZ"
	case models.SourceUserPost:
		return "📢", "Bot e'loni"
	default:
		return "🔗", strings.ToUpper(strings.ReplaceAll(string(vacancy.Source), "_", " "))
	}
}

func groupDigits(n int) string {
	s := fmt.Sprintf("%d", n)
	if n < 0 {
		return "-" + groupDigits(-n)
	}

	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)
	return strings.Join(parts, ",")
}
