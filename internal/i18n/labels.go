// Package i18n supplies already-localized label tables to the projection
// layer. Projections never branch on locale; they format against whichever
// Labels value the caller resolved for the request.
package i18n

import "fmt"

// Locale is a supported language tag.
type Locale string

const (
	LocaleEnglish Locale = "en"
	LocaleHindi   Locale = "hi"
	LocaleKannada Locale = "kn"
)

// DefaultLocale is the fallback when a request carries no usable tag.
const DefaultLocale = LocaleEnglish

// ParseLocale resolves a raw language tag (query parameter or the first
// Accept-Language entry) to a supported locale, falling back to English.
// Region subtags are ignored: "hi-IN" resolves to "hi".
func ParseLocale(tag string) Locale {
	if len(tag) >= 2 {
		switch Locale(tag[:2]) {
		case LocaleHindi:
			return LocaleHindi
		case LocaleKannada:
			return LocaleKannada
		case LocaleEnglish:
			return LocaleEnglish
		}
	}
	return DefaultLocale
}

// Labels is one locale's string table. Entries ending in a format verb are
// templates: callers fill them with fmt.Sprintf.
type Labels struct {
	// Age formatting
	Months      string `json:"months"`       // "%d months"
	Years       string `json:"years"`        // "%d years"
	YearsMonths string `json:"years_months"` // "%d yrs %d mo"

	// Dashboard status
	DoctorReview string `json:"doctor_review"` // red
	TasksPending string `json:"tasks_pending"` // amber, "%d tasks pending"
	InReview     string `json:"in_review"`     // blue
	NonePending  string `json:"none_pending"`  // green

	// Timeline events
	Enrolled        string `json:"enrolled"`
	EnrolledDesc    string `json:"enrolled_desc"`
	HomeVisit       string `json:"home_visit"`
	CheckUp         string `json:"check_up"`
	ChecksPerformed string `json:"checks_performed"` // "%d checks performed"
	Achieved        string `json:"achieved"`         // "Achieved: %s"
	AchievedDesc    string `json:"achieved_desc"`    // "Milestone completed at %d months"
	NeedsRetry      string `json:"needs_retry"`      // "Needs Retry: %s"
	NeedsRetryDesc  string `json:"needs_retry_desc"`
	InReviewTitle   string `json:"in_review_title"` // "In Review: %s"
	AIAnalyzing     string `json:"ai_analyzing"`
	DoctorReviewing string `json:"doctor_reviewing"`
	ReviewStatus    string `json:"review_status"` // "Status: %s"

	// Pending actions
	VerifyTitle     string `json:"verify_title"` // "Verify '%s'"
	VerifyDesc      string `json:"verify_desc"`  // "Is %s %s? Record a video for AI analysis."
	StartRecording  string `json:"start_recording"`
	AllCaughtUp     string `json:"all_caught_up"`
	AllCaughtUpDesc string `json:"all_caught_up_desc"` // "%s is doing great. No pending actions."
	ViewHistory     string `json:"view_history"`
}

// FormatCount is a small helper for count templates such as TasksPending and
// ChecksPerformed.
func FormatCount(template string, n int) string {
	return fmt.Sprintf(template, n)
}

// Text is a per-locale string, used for catalog titles and descriptions that
// are authored in multiple languages.
type Text map[Locale]string

// Resolve returns the string for the requested locale, falling back to the
// default locale, then to any populated entry.
func (t Text) Resolve(locale Locale) string {
	if s, ok := t[locale]; ok && s != "" {
		return s
	}
	if s, ok := t[DefaultLocale]; ok && s != "" {
		return s
	}
	for _, s := range t {
		if s != "" {
			return s
		}
	}
	return ""
}
